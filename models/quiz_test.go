package models

import "testing"

func TestAttemptPercentage(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		maxScore int
		want     float64
	}{
		{"full marks", 5, 5, 100},
		{"half", 2, 4, 50},
		{"zero score", 0, 10, 0},
		{"empty quiz", 0, 0, 0},
		{"negative max", 3, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := QuizAttempt{Score: tt.score, MaxScore: tt.maxScore}
			if got := a.Percentage(); got != tt.want {
				t.Errorf("Percentage() = %v, want %v", got, tt.want)
			}
		})
	}
}
