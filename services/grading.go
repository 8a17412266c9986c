package services

import (
	"strings"

	"github.com/google/uuid"

	"github.com/knowyourcountry/community-backend/models"
)

// SubmittedAnswer is one entry of a quiz submission: the raw value the user
// selected or typed for a question. For multiple choice the value is a choice
// id, for true/false the literal "true"/"false", for short answer free text.
type SubmittedAnswer struct {
	QuestionID uuid.UUID `json:"question_id" binding:"required"`
	Value      string    `json:"value"`
}

// Evaluation is the outcome of grading one submitted answer. The verdict is
// computed once, at submission time, and never re-evaluated.
type Evaluation struct {
	Verdict          models.AnswerVerdict
	SelectedChoiceID *uuid.UUID
	TextAnswer       *string
	Points           int
}

// CorrectChoice returns the single choice flagged correct for a multiple
// choice or true/false question, or nil when the question is misconfigured.
// Misconfiguration is not an error here; write-time validation is a separate
// concern and historical questions may predate it.
func CorrectChoice(q *models.QuizQuestion) *models.QuizChoice {
	if q.Type == models.ShortAnswer {
		return nil
	}
	for i := range q.Choices {
		if q.Choices[i].IsCorrect {
			return &q.Choices[i]
		}
	}
	return nil
}

// EvaluateAnswer grades one submission against its question. A value that
// cannot be verified (unknown choice id, question without a correct choice)
// degrades to an unverifiable verdict worth zero points, never an error.
func EvaluateAnswer(q *models.QuizQuestion, value string) Evaluation {
	switch q.Type {
	case models.MultipleChoice:
		choiceID, err := uuid.Parse(value)
		if err != nil {
			v := value
			return Evaluation{Verdict: models.VerdictUnverifiable, TextAnswer: &v}
		}
		for i := range q.Choices {
			if q.Choices[i].ID == choiceID {
				ev := Evaluation{SelectedChoiceID: &choiceID, Verdict: models.VerdictIncorrect}
				if q.Choices[i].IsCorrect {
					ev.Verdict = models.VerdictCorrect
					ev.Points = q.Points
				}
				return ev
			}
		}
		// Dangling choice reference; keep it for the record.
		return Evaluation{Verdict: models.VerdictUnverifiable, SelectedChoiceID: &choiceID}

	case models.TrueFalse:
		v := value
		correct := CorrectChoice(q)
		if correct == nil {
			return Evaluation{Verdict: models.VerdictUnverifiable, TextAnswer: &v}
		}
		if strings.EqualFold(strings.TrimSpace(value), correct.Text) {
			return Evaluation{Verdict: models.VerdictCorrect, TextAnswer: &v, Points: q.Points}
		}
		return Evaluation{Verdict: models.VerdictIncorrect, TextAnswer: &v}

	case models.ShortAnswer:
		// Stored verbatim; scoring waits for manual review.
		v := value
		return Evaluation{Verdict: models.VerdictPendingReview, TextAnswer: &v}
	}

	v := value
	return Evaluation{Verdict: models.VerdictUnverifiable, TextAnswer: &v}
}

// MaxScore sums the point values of all questions. Attempts freeze this at
// start time.
func MaxScore(questions []models.QuizQuestion) int {
	total := 0
	for i := range questions {
		total += questions[i].Points
	}
	return total
}
