package utils

import (
	"fmt"
	"net/smtp"
	"os"
)

func SendEmail(to, subject, body string) error {
	from := os.Getenv("SMTP_EMAIL")
	pass := os.Getenv("SMTP_PASSWORD")
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}

	// Headers: UTF-8 & HTML
	msg := ""
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	msg += fmt.Sprintf("From: %s\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "\r\n" + body

	err := smtp.SendMail(
		host+":587",
		smtp.PlainAuth("", from, pass, host),
		from,
		[]string{to},
		[]byte(msg),
	)
	if err != nil {
		return fmt.Errorf("sending email failed: %v", err)
	}
	return nil
}

// SendVolunteerThankYou mails a newly registered volunteer. Failures are the
// caller's problem to log; registration never depends on the send.
func SendVolunteerThankYou(to, name, confirmURL string) error {
	subject := "Thank you for joining the Know Your Country initiative"
	body := `
	<h3>Hello ` + name + `,</h3>
	<p>Thank you for registering as a volunteer with <b>Know Your Country</b>.</p>
	<p>Please confirm your email address by opening the link below:</p>
	<p><a href="` + confirmURL + `">` + confirmURL + `</a></p>
	<hr>
	<p><i>This is an automated email, please do not reply.</i></p>
	`
	return SendEmail(to, subject, body)
}

func SendPasswordResetEmail(to, name, resetURL string) error {
	subject := "Reset your Know Your Country password"
	body := `
	<h3>Hello ` + name + `,</h3>
	<p>We received a request to reset your password. Open the link below to choose a new one:</p>
	<p><a href="` + resetURL + `">` + resetURL + `</a></p>
	<p>The link expires in one hour. If you did not ask for this, you can ignore this email.</p>
	`
	return SendEmail(to, subject, body)
}
