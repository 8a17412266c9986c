package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knowyourcountry/community-backend/models"
	"github.com/knowyourcountry/community-backend/services"
)

func GetQuizzes(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Model(&models.Quiz{}).Where("is_published = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if articleID := c.Query("article_id"); articleID != "" {
		query = query.Where("article_id = ?", articleID)
	}

	var quizzes []models.Quiz
	err := query.
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Order("created_at DESC").
		Find(&quizzes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load quizzes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"quizzes": quizzes, "total": len(quizzes)})
}

// publicQuestion is a question as shown to someone taking the quiz: choice
// correctness flags never leave the server.
type publicQuestion struct {
	ID      uuid.UUID           `json:"id"`
	Text    string              `json:"text"`
	Type    models.QuestionType `json:"type"`
	Points  int                 `json:"points"`
	Order   int                 `json:"order"`
	Choices []publicChoice      `json:"choices,omitempty"`
}

type publicChoice struct {
	ID    uuid.UUID `json:"id"`
	Text  string    `json:"text"`
	Order int       `json:"order"`
}

func toPublicQuestions(questions []models.QuizQuestion) []publicQuestion {
	out := make([]publicQuestion, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		pq := publicQuestion{
			ID:     q.ID,
			Text:   q.Text,
			Type:   q.Type,
			Points: q.Points,
			Order:  q.Order,
		}
		for _, ch := range q.Choices {
			pq.Choices = append(pq.Choices, publicChoice{ID: ch.ID, Text: ch.Text, Order: ch.Order})
		}
		out = append(out, pq)
	}
	return out
}

// GetQuizDetail is the public preview: quiz metadata only, never the
// questions. Taking the quiz goes through GetQuizTakePage.
func GetQuizDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	quizID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var quiz models.Quiz
	err := db.
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		First(&quiz, "id = ?", quizID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "quiz not found"})
		return
	}

	if !quiz.IsPublished {
		userID := c.GetString("user_id")
		role := c.GetString("role")
		if role != string(models.RoleAdmin) && userID != quiz.AuthorID.String() {
			c.JSON(http.StatusNotFound, gin.H{"error": "quiz not found"})
			return
		}
	}

	var questionCount int64
	db.Model(&models.QuizQuestion{}).Where("quiz_id = ?", quiz.ID).Count(&questionCount)

	c.JSON(http.StatusOK, gin.H{
		"quiz":           quiz,
		"question_count": questionCount,
	})
}

// GetQuizTakePage serves the questions for a signed-in user about to take
// the quiz: display order preserved, answer keys stripped.
func GetQuizTakePage(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	quizID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var quiz models.Quiz
	if err := db.First(&quiz, "id = ?", quizID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "quiz not found"})
		return
	}

	if !quiz.IsPublished {
		userID := c.GetString("user_id")
		role := c.GetString("role")
		if role != string(models.RoleAdmin) && userID != quiz.AuthorID.String() {
			c.JSON(http.StatusNotFound, gin.H{"error": "quiz not found"})
			return
		}
	}

	questions, err := services.NewQuizService(db).ListQuestions(quiz.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load questions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quiz":      quiz,
		"questions": toPublicQuestions(questions),
		"max_score": services.MaxScore(questions),
	})
}

type QuizInput struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Category    string     `json:"category" binding:"required"`
	TimeLimit   *int       `json:"time_limit"`
	ArticleID   *uuid.UUID `json:"article_id"`
}

func CreateQuiz(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	authorID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var input QuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.ArticleID != nil {
		var article models.Article
		if err := db.First(&article, "id = ?", *input.ArticleID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "article not found"})
			return
		}
	}

	quiz := models.Quiz{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		TimeLimit:   input.TimeLimit,
		ArticleID:   input.ArticleID,
		AuthorID:    authorID,
	}
	if err := db.Create(&quiz).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create quiz"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "quiz created", "quiz": quiz})
}

// quizEditable loads a quiz and checks the caller may change it.
func quizEditable(c *gin.Context, db *gorm.DB) (*models.Quiz, bool) {
	quizID, ok := paramUUID(c, "id")
	if !ok {
		return nil, false
	}

	var quiz models.Quiz
	if err := db.First(&quiz, "id = ?", quizID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "quiz not found"})
		return nil, false
	}

	userID := c.GetString("user_id")
	role := c.GetString("role")
	if role != string(models.RoleAdmin) && userID != quiz.AuthorID.String() {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only edit your own quizzes"})
		return nil, false
	}
	return &quiz, true
}

func UpdateQuiz(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	quiz, ok := quizEditable(c, db)
	if !ok {
		return
	}

	var input QuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz.Title = input.Title
	quiz.Description = input.Description
	quiz.Category = input.Category
	quiz.TimeLimit = input.TimeLimit

	if err := db.Save(quiz).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update quiz"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "quiz updated", "quiz": quiz})
}

func PublishQuiz(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	quiz, ok := quizEditable(c, db)
	if !ok {
		return
	}

	if err := db.Model(quiz).Update("is_published", !quiz.IsPublished).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update quiz"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "publication state updated", "is_published": !quiz.IsPublished})
}

type ChoiceInput struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
	Order     int    `json:"order"`
}

type QuestionInput struct {
	Text    string              `json:"text" binding:"required"`
	Type    models.QuestionType `json:"type" binding:"required"`
	Points  int                 `json:"points"`
	Order   int                 `json:"order"`
	Choices []ChoiceInput       `json:"choices"`
}

// AddQuestion appends a question with its choices. Choice-backed question
// types need exactly one correct choice; short answers take none.
func AddQuestion(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	quiz, ok := quizEditable(c, db)
	if !ok {
		return
	}

	var input QuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch input.Type {
	case models.MultipleChoice, models.TrueFalse:
		correct := 0
		for _, ch := range input.Choices {
			if ch.IsCorrect {
				correct++
			}
		}
		if len(input.Choices) < 2 || correct != 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "question needs at least two choices with exactly one correct"})
			return
		}
	case models.ShortAnswer:
		if len(input.Choices) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "short answer questions take no choices"})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid question type"})
		return
	}

	points := input.Points
	if points <= 0 {
		points = 1
	}

	question := models.QuizQuestion{
		QuizID: quiz.ID,
		Text:   input.Text,
		Type:   input.Type,
		Points: points,
		Order:  input.Order,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&question).Error; err != nil {
			return err
		}
		for _, ch := range input.Choices {
			choice := models.QuizChoice{
				QuestionID: question.ID,
				Text:       ch.Text,
				IsCorrect:  ch.IsCorrect,
				Order:      ch.Order,
			}
			if err := tx.Create(&choice).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot add question"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "question added", "question": question})
}

func DeleteQuestion(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	quiz, ok := quizEditable(c, db)
	if !ok {
		return
	}

	questionID, err := uuid.Parse(c.Param("question_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid question_id"})
		return
	}

	result := db.Where("id = ? AND quiz_id = ?", questionID, quiz.ID).Delete(&models.QuizQuestion{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot delete question"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "question deleted"})
}

type SubmitQuizInput struct {
	Answers []services.SubmittedAnswer `json:"answers" binding:"required"`
}

// SubmitQuiz grades a full submission in one shot and returns the scored
// attempt. Unanswered questions simply earn nothing.
func SubmitQuiz(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	quizID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var quiz models.Quiz
	if err := db.First(&quiz, "id = ? AND is_published = ?", quizID, true).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "quiz not found"})
		return
	}

	var input SubmitQuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attempt, err := services.NewQuizService(db).SubmitAttempt(quiz.ID, userID, input.Answers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot submit quiz"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "quiz submitted",
		"attempt_id": attempt.ID,
		"score":      attempt.Score,
		"max_score":  attempt.MaxScore,
		"percentage": attempt.Percentage(),
	})
}

// GetAttemptResult shows a scored attempt to its owner or an admin.
func GetAttemptResult(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	attemptID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	attempt, err := services.NewQuizService(db).GetAttempt(attemptID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "attempt not found"})
		return
	}

	userID := c.GetString("user_id")
	role := c.GetString("role")
	if role != string(models.RoleAdmin) && userID != attempt.UserID.String() {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only view your own attempts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attempt":    attempt,
		"percentage": attempt.Percentage(),
	})
}

// GetMyAttempts lists the caller's attempt history, newest first.
func GetMyAttempts(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.GetString("user_id")

	var attempts []models.QuizAttempt
	err := db.
		Preload("Quiz", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "category")
		}).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&attempts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load attempts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"attempts": attempts, "total": len(attempts)})
}
