package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/knowyourcountry/community-backend/models"
)

func multipleChoiceQuestion(points int, correctIdx int, texts ...string) models.QuizQuestion {
	q := models.QuizQuestion{
		ID:     uuid.New(),
		Text:   "question",
		Type:   models.MultipleChoice,
		Points: points,
	}
	for i, text := range texts {
		q.Choices = append(q.Choices, models.QuizChoice{
			ID:         uuid.New(),
			QuestionID: q.ID,
			Text:       text,
			IsCorrect:  i == correctIdx,
			Order:      i,
		})
	}
	return q
}

func trueFalseQuestion(points int, correct string) models.QuizQuestion {
	q := models.QuizQuestion{
		ID:     uuid.New(),
		Text:   "question",
		Type:   models.TrueFalse,
		Points: points,
	}
	for i, text := range []string{"True", "False"} {
		q.Choices = append(q.Choices, models.QuizChoice{
			ID:         uuid.New(),
			QuestionID: q.ID,
			Text:       text,
			IsCorrect:  text == correct,
			Order:      i,
		})
	}
	return q
}

func TestEvaluateMultipleChoiceCorrect(t *testing.T) {
	q := multipleChoiceQuestion(1, 1, "London", "Paris", "Berlin")
	correct := q.Choices[1]

	ev := EvaluateAnswer(&q, correct.ID.String())
	if ev.Verdict != models.VerdictCorrect {
		t.Fatalf("verdict = %s, want correct", ev.Verdict)
	}
	if ev.Points != 1 {
		t.Errorf("points = %d, want 1", ev.Points)
	}
	if ev.SelectedChoiceID == nil || *ev.SelectedChoiceID != correct.ID {
		t.Errorf("selected choice not recorded")
	}
}

func TestEvaluateMultipleChoiceWrong(t *testing.T) {
	q := multipleChoiceQuestion(2, 1, "London", "Paris", "Berlin")

	ev := EvaluateAnswer(&q, q.Choices[0].ID.String())
	if ev.Verdict != models.VerdictIncorrect {
		t.Fatalf("verdict = %s, want incorrect", ev.Verdict)
	}
	if ev.Points != 0 {
		t.Errorf("points = %d, want 0", ev.Points)
	}
}

func TestEvaluateMultipleChoiceUnknownChoice(t *testing.T) {
	q := multipleChoiceQuestion(1, 0, "Yes", "No")
	stray := uuid.New()

	ev := EvaluateAnswer(&q, stray.String())
	if ev.Verdict != models.VerdictUnverifiable {
		t.Fatalf("verdict = %s, want unverifiable", ev.Verdict)
	}
	if ev.Points != 0 {
		t.Errorf("points = %d, want 0", ev.Points)
	}
	if ev.SelectedChoiceID == nil || *ev.SelectedChoiceID != stray {
		t.Errorf("dangling choice id should be kept for the record")
	}
}

func TestEvaluateMultipleChoiceGarbageValue(t *testing.T) {
	q := multipleChoiceQuestion(1, 0, "Yes", "No")

	ev := EvaluateAnswer(&q, "not-a-uuid")
	if ev.Verdict != models.VerdictUnverifiable {
		t.Fatalf("verdict = %s, want unverifiable", ev.Verdict)
	}
	if ev.TextAnswer == nil || *ev.TextAnswer != "not-a-uuid" {
		t.Errorf("raw value should be stored verbatim")
	}
}

func TestEvaluateTrueFalseCaseInsensitive(t *testing.T) {
	q := trueFalseQuestion(1, "True")

	for _, value := range []string{"True", "true", "TRUE", " true "} {
		ev := EvaluateAnswer(&q, value)
		if ev.Verdict != models.VerdictCorrect {
			t.Errorf("value %q: verdict = %s, want correct", value, ev.Verdict)
		}
		if ev.Points != 1 {
			t.Errorf("value %q: points = %d, want 1", value, ev.Points)
		}
	}

	ev := EvaluateAnswer(&q, "false")
	if ev.Verdict != models.VerdictIncorrect {
		t.Errorf("verdict = %s, want incorrect", ev.Verdict)
	}
}

func TestEvaluateTrueFalseNoCorrectChoice(t *testing.T) {
	q := models.QuizQuestion{
		ID:     uuid.New(),
		Type:   models.TrueFalse,
		Points: 1,
		Choices: []models.QuizChoice{
			{ID: uuid.New(), Text: "True"},
			{ID: uuid.New(), Text: "False"},
		},
	}

	ev := EvaluateAnswer(&q, "true")
	if ev.Verdict != models.VerdictUnverifiable {
		t.Fatalf("verdict = %s, want unverifiable", ev.Verdict)
	}
	if ev.Points != 0 {
		t.Errorf("points = %d, want 0", ev.Points)
	}
}

func TestEvaluateShortAnswerPendingReview(t *testing.T) {
	q := models.QuizQuestion{
		ID:     uuid.New(),
		Type:   models.ShortAnswer,
		Points: 5,
	}

	ev := EvaluateAnswer(&q, "The constitution was adopted in 2014.")
	if ev.Verdict != models.VerdictPendingReview {
		t.Fatalf("verdict = %s, want pending_review", ev.Verdict)
	}
	if ev.Points != 0 {
		t.Errorf("short answers are never auto-scored, points = %d", ev.Points)
	}
	if ev.TextAnswer == nil || *ev.TextAnswer != "The constitution was adopted in 2014." {
		t.Errorf("text answer should be stored verbatim")
	}
}

func TestCorrectChoice(t *testing.T) {
	q := multipleChoiceQuestion(1, 2, "a", "b", "c")
	correct := CorrectChoice(&q)
	if correct == nil || correct.Text != "c" {
		t.Fatalf("correct choice not found")
	}

	short := models.QuizQuestion{Type: models.ShortAnswer}
	if CorrectChoice(&short) != nil {
		t.Errorf("short answer questions have no correct choice")
	}
}

func TestMaxScore(t *testing.T) {
	questions := []models.QuizQuestion{
		{Points: 1},
		{Points: 3},
		{Points: 2},
	}
	if got := MaxScore(questions); got != 6 {
		t.Errorf("MaxScore = %d, want 6", got)
	}

	if got := MaxScore(nil); got != 0 {
		t.Errorf("MaxScore of empty quiz = %d, want 0", got)
	}
}
