package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"github.com/knowyourcountry/community-backend/models"
)

func TestCompleteAttemptIsOneShot(t *testing.T) {
	s := NewQuizService(nil)

	done := time.Now()
	attempt := models.QuizAttempt{
		Score:       3,
		MaxScore:    5,
		IsCompleted: true,
		CompletedAt: &done,
	}

	err := s.CompleteAttempt(&attempt, 5)
	if !errors.Is(err, ErrAttemptCompleted) {
		t.Fatalf("second completion: err = %v, want ErrAttemptCompleted", err)
	}
	if attempt.Score != 3 {
		t.Errorf("score changed to %d, completed attempts stay as scored", attempt.Score)
	}
	if !attempt.CompletedAt.Equal(done) {
		t.Errorf("completion time was overwritten")
	}
}

// A loaded attempt can be stale: it still says in progress while the row was
// completed by another request. The guarded UPDATE then matches nothing, and
// that must surface as ErrAttemptCompleted, not as a silent success.
func TestCompleteAttemptStaleCopyRejected(t *testing.T) {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	s := NewQuizService(db)

	attempt := models.QuizAttempt{
		ID:       uuid.New(),
		QuizID:   uuid.New(),
		UserID:   uuid.New(),
		MaxScore: 5,
	}

	err = s.CompleteAttempt(&attempt, 4)
	if !errors.Is(err, ErrAttemptCompleted) {
		t.Fatalf("completion with zero rows updated: err = %v, want ErrAttemptCompleted", err)
	}
	if attempt.IsCompleted {
		t.Errorf("attempt marked completed although nothing was persisted")
	}
	if attempt.CompletedAt != nil {
		t.Errorf("completion time set although nothing was persisted")
	}
	if attempt.Score != 0 {
		t.Errorf("score = %d, want untouched 0", attempt.Score)
	}
}
