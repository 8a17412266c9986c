package models

import (
	"time"

	"github.com/google/uuid"
)

type Quiz struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:50;not null" json:"category"`
	TimeLimit   *int      `json:"time_limit,omitempty"` // minutes

	// Optional article the quiz was written for.
	ArticleID *uuid.UUID `gorm:"type:uuid" json:"article_id,omitempty"`

	AuthorID uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Author   User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	IsPublished bool      `gorm:"default:false" json:"is_published"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE;" json:"questions,omitempty"`
	Attempts  []QuizAttempt  `gorm:"foreignKey:QuizID" json:"attempts,omitempty"`
}

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortAnswer    QuestionType = "short_answer"
)

type QuizQuestion struct {
	ID     uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	QuizID uuid.UUID    `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Text   string       `gorm:"type:text;not null" json:"text"`
	Type   QuestionType `gorm:"type:varchar(20);not null;default:'multiple_choice'" json:"type"`
	Points int          `gorm:"default:1" json:"points"`
	Order  int          `gorm:"column:display_order;default:0" json:"order"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Quiz    Quiz         `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Choices []QuizChoice `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE;" json:"choices,omitempty"`
}

type QuizChoice struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool      `gorm:"default:false" json:"is_correct"`
	Order      int       `gorm:"column:display_order;default:0" json:"order"`

	Question QuizQuestion `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

type QuizAttempt struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	QuizID uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	// MaxScore is frozen at start time; later edits to question points do
	// not change it for attempts already underway.
	Score    int `gorm:"default:0" json:"score"`
	MaxScore int `gorm:"default:0" json:"max_score"`

	StartedAt   time.Time  `gorm:"autoCreateTime" json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	IsCompleted bool       `gorm:"default:false" json:"is_completed"`

	Quiz    Quiz         `gorm:"constraint:OnDelete:CASCADE;" json:"quiz,omitempty"`
	User    User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Answers []QuizAnswer `gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE;" json:"answers,omitempty"`
}

// Percentage derives the score as a value in [0,100]. A quiz with no
// questions has max score 0 and always reads as 0, never a division error.
func (a *QuizAttempt) Percentage() float64 {
	if a.MaxScore <= 0 {
		return 0
	}
	return float64(a.Score) / float64(a.MaxScore) * 100
}

type QuizAnswer struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	// One answer per question within an attempt.
	AttemptID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attempt_question" json:"attempt_id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attempt_question" json:"question_id"`

	SelectedChoiceID *uuid.UUID `gorm:"type:uuid" json:"selected_choice_id,omitempty"` // multiple choice
	TextAnswer       *string    `gorm:"type:text" json:"text_answer,omitempty"`        // true/false, short answer

	// Verdict is fixed at submission time and never re-evaluated.
	IsCorrect bool          `gorm:"default:false" json:"is_correct"`
	Verdict   AnswerVerdict `gorm:"type:varchar(20);not null;default:'incorrect'" json:"verdict"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Attempt QuizAttempt `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

// AnswerVerdict makes the grading outcome structurally visible instead of an
// accidental fall-through: an answer that references a missing choice is
// unverifiable, a short answer is pending manual review. Only "correct"
// contributes points.
type AnswerVerdict string

const (
	VerdictCorrect       AnswerVerdict = "correct"
	VerdictIncorrect     AnswerVerdict = "incorrect"
	VerdictUnverifiable  AnswerVerdict = "unverifiable"
	VerdictPendingReview AnswerVerdict = "pending_review"
)
