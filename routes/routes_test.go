package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Taking a quiz and submitting answers both require a signed-in user; an
// anonymous request must be turned away before any content is served.
func TestQuizTakingRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRouter(r, nil)

	quizID := uuid.New().String()
	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/quizzes/" + quizID + "/take"},
		{http.MethodPost, "/api/quizzes/" + quizID + "/submit"},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without a token: status = %d, want %d",
				tc.method, tc.path, w.Code, http.StatusUnauthorized)
		}
	}
}
