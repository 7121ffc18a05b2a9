package webserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/verity-app/verity-backend/src/api/components/llm"
	"github.com/verity-app/verity-backend/src/api/components/news"
	"github.com/verity-app/verity-backend/src/api/components/verify"
)

type fakeVerifier struct {
	verdict verify.Verdict
	calls   int
	text    string
}

func (f *fakeVerifier) Verify(ctx context.Context, text string) verify.Verdict {
	f.calls++
	f.text = text
	return f.verdict
}

func newChatRouter(verifier Verifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewChat(verifier)
	r.POST("/chat/verify", h.Verify)
	return r
}

func TestChatVerify(t *testing.T) {
	verifier := &fakeVerifier{verdict: verify.Verdict{
		Verdict:  llm.VerdictFalse,
		Score:    82,
		Bullets:  []string{"contradicted by coverage"},
		Articles: []news.Article{{Title: "Original report"}},
	}}
	r := newChatRouter(verifier)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/chat/verify", strings.NewReader(`{"text":"The moon is made of cheese"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, verifier.calls)
	assert.Equal(t, "The moon is made of cheese", verifier.text)

	var res verify.Verdict
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, llm.VerdictFalse, res.Verdict)
	assert.Equal(t, 82, res.Score)
	assert.Equal(t, []string{"contradicted by coverage"}, res.Bullets)
	assert.Equal(t, 1, len(res.Articles))
}

func TestChatVerifyEmptyText(t *testing.T) {
	verifier := &fakeVerifier{}
	r := newChatRouter(verifier)

	for _, body := range []string{`{"text":"   "}`, `{}`, `not json`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/chat/verify", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	assert.Equal(t, 0, verifier.calls)
}
