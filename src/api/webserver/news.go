package webserver

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/verity-app/verity-backend/src/api/components/llm"
	"github.com/verity-app/verity-backend/src/api/types"
)

// Minimum genuineness score an upload must reach to be published.
const verificationThreshold = 60

// NewsStore is the persistence surface the news handlers need.
type NewsStore interface {
	Create(item *types.NewsItem) error
	Verified() ([]types.NewsItem, error)
}

type News struct {
	store     NewsStore
	verifier  Verifier
	sanitizer *bluemonday.Policy
}

func NewNews(store NewsStore, verifier Verifier) News {
	return News{store: store, verifier: verifier, sanitizer: bluemonday.StrictPolicy()}
}

// Feed handles GET /news/feed: all verified items, newest first.
func (h News) Feed(c *gin.Context) {
	items, err := h.store.Verified()
	if err != nil {
		log.Printf("Failed to load news feed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "database error"})
		return
	}

	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		out = append(out, gin.H{
			"id":                item.ID,
			"title":             item.Title,
			"description":       item.Description,
			"status":            item.Status,
			"genuineness_score": item.GenuinenessScore,
			"verdict_summary":   item.VerdictSummary,
			"created_at":        item.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, out)
}

// Upload handles POST /news/upload: verify an uploaded item and publish it
// only when the verdict is positive enough. Rejected items are not stored;
// the verdict is returned as feedback either way.
func (h News) Upload(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	title := h.sanitizer.Sanitize(req.Title)
	description := h.sanitizer.Sanitize(req.Description)

	verdict := h.verifier.Verify(c.Request.Context(), title+"\n\n"+description)

	accepted := verdict.Score >= verificationThreshold &&
		(verdict.Verdict == llm.VerdictTrue || verdict.Verdict == llm.VerdictMixed)
	if !accepted {
		c.JSON(http.StatusOK, gin.H{
			"status":  "rejected",
			"verdict": verdict.Verdict,
			"score":   verdict.Score,
			"bullets": verdict.Bullets,
		})
		return
	}

	item := types.NewsItem{
		Title:            title,
		Description:      description,
		Status:           types.StatusVerified,
		GenuinenessScore: verdict.Score,
		VerdictSummary:   strings.Join(verdict.Bullets, "\n"),
	}
	if user := currentUser(c); user.ID != 0 {
		item.CreatorID = &user.ID
	}

	if err := h.store.Create(&item); err != nil {
		log.Printf("Failed to store news item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "approved",
		"news_id": item.ID,
		"verdict": verdict.Verdict,
		"score":   verdict.Score,
		"bullets": verdict.Bullets,
	})
}
