package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knowyourcountry/community-backend/models"
)

var (
	// ErrAttemptCompleted guards the completed state: completion happens
	// exactly once, a second call is rejected instead of overwriting the
	// recorded score.
	ErrAttemptCompleted = errors.New("attempt is already completed")
)

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

// ListQuestions returns a quiz's questions ordered by display order
// ascending, ties broken by insertion time, with choices ordered the same
// way. A fresh read is required for up-to-date results.
func (s *QuizService) ListQuestions(quizID uuid.UUID) ([]models.QuizQuestion, error) {
	var questions []models.QuizQuestion
	err := s.db.
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Where("quiz_id = ?", quizID).
		Order("display_order ASC, created_at ASC").
		Find(&questions).Error
	return questions, err
}

// StartAttempt creates an in-progress attempt with max_score frozen as the
// sum of question points at this moment.
func (s *QuizService) StartAttempt(quizID, userID uuid.UUID) (*models.QuizAttempt, error) {
	questions, err := s.ListQuestions(quizID)
	if err != nil {
		return nil, err
	}
	return s.startAttempt(quizID, userID, questions)
}

func (s *QuizService) startAttempt(quizID, userID uuid.UUID, questions []models.QuizQuestion) (*models.QuizAttempt, error) {
	attempt := models.QuizAttempt{
		QuizID:   quizID,
		UserID:   userID,
		MaxScore: MaxScore(questions),
	}
	if err := s.db.Create(&attempt).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

// CompleteAttempt records the final score and stamps the completion time.
// The transition is guarded both in memory and in the store: when the row
// was already completed by someone else the UPDATE matches nothing and the
// caller gets ErrAttemptCompleted instead of a silent discard.
func (s *QuizService) CompleteAttempt(attempt *models.QuizAttempt, score int) error {
	if attempt.IsCompleted {
		return ErrAttemptCompleted
	}
	if score > attempt.MaxScore {
		score = attempt.MaxScore
	}
	now := time.Now()

	result := s.db.Model(&models.QuizAttempt{}).
		Where("id = ? AND is_completed = ?", attempt.ID, false).
		Updates(map[string]interface{}{
			"score":        score,
			"completed_at": &now,
			"is_completed": true,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAttemptCompleted
	}

	attempt.Score = score
	attempt.CompletedAt = &now
	attempt.IsCompleted = true
	return nil
}

// SubmitAttempt runs a full submission as one unit of work: start an attempt,
// grade every answer, persist them and complete the attempt, all inside one
// transaction. Duplicate submissions for the same question collapse to the
// last value; the unique index on (attempt_id, question_id) backs that up in
// the schema.
func (s *QuizService) SubmitAttempt(quizID, userID uuid.UUID, submitted []SubmittedAnswer) (*models.QuizAttempt, error) {
	questions, err := s.ListQuestions(quizID)
	if err != nil {
		return nil, err
	}

	byQuestion := make(map[uuid.UUID]*models.QuizQuestion, len(questions))
	for i := range questions {
		byQuestion[questions[i].ID] = &questions[i]
	}

	// Last submitted value per question wins.
	values := make(map[uuid.UUID]string, len(submitted))
	for _, sub := range submitted {
		if _, ok := byQuestion[sub.QuestionID]; ok {
			values[sub.QuestionID] = sub.Value
		}
	}

	var attempt *models.QuizAttempt
	err = s.db.Transaction(func(tx *gorm.DB) error {
		txSvc := &QuizService{db: tx}

		var err error
		attempt, err = txSvc.startAttempt(quizID, userID, questions)
		if err != nil {
			return err
		}

		score := 0
		for i := range questions {
			q := &questions[i]
			value, answered := values[q.ID]
			if !answered {
				continue
			}

			ev := EvaluateAnswer(q, value)
			score += ev.Points

			answer := models.QuizAnswer{
				AttemptID:        attempt.ID,
				QuestionID:       q.ID,
				SelectedChoiceID: ev.SelectedChoiceID,
				TextAnswer:       ev.TextAnswer,
				IsCorrect:        ev.Verdict == models.VerdictCorrect,
				Verdict:          ev.Verdict,
			}
			if err := tx.Create(&answer).Error; err != nil {
				return err
			}
		}

		return txSvc.CompleteAttempt(attempt, score)
	})
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

// GetAttempt loads an attempt with its answers for the results view.
func (s *QuizService) GetAttempt(attemptID uuid.UUID) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	err := s.db.
		Preload("Answers").
		First(&attempt, "id = ?", attemptID).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}
