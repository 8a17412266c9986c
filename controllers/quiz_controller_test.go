package controllers

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/knowyourcountry/community-backend/models"
)

func TestPublicQuestionsHideAnswerKey(t *testing.T) {
	questions := []models.QuizQuestion{
		{
			ID:     uuid.New(),
			Text:   "What is the capital?",
			Type:   models.MultipleChoice,
			Points: 2,
			Choices: []models.QuizChoice{
				{ID: uuid.New(), Text: "Hanoi", IsCorrect: true, Order: 1},
				{ID: uuid.New(), Text: "Hue", IsCorrect: false, Order: 2},
			},
		},
		{
			ID:     uuid.New(),
			Text:   "Describe the flag.",
			Type:   models.ShortAnswer,
			Points: 1,
		},
	}

	public := toPublicQuestions(questions)
	if len(public) != 2 {
		t.Fatalf("got %d questions, want 2", len(public))
	}
	if len(public[0].Choices) != 2 {
		t.Fatalf("got %d choices, want 2", len(public[0].Choices))
	}
	if public[0].Choices[0].ID != questions[0].Choices[0].ID {
		t.Errorf("choice ids must survive so answers can reference them")
	}

	raw, err := json.Marshal(public)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "is_correct") {
		t.Errorf("payload leaks choice correctness: %s", raw)
	}
}
