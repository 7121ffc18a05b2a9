package webserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/verity-app/verity-backend/src/api/components/verify"
)

// Verifier is the claim verification pipeline consumed by the chat and
// upload endpoints.
type Verifier interface {
	Verify(ctx context.Context, text string) verify.Verdict
}

type Chat struct {
	verifier Verifier
}

func NewChat(verifier Verifier) Chat {
	return Chat{verifier: verifier}
}

// Verify handles POST /chat/verify: adjudicate a claim from plain text.
func (h Chat) Verify(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "text cannot be empty"})
		return
	}

	c.JSON(http.StatusOK, h.verifier.Verify(c.Request.Context(), req.Text))
}
