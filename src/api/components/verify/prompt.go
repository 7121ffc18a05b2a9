package verify

import (
	"fmt"
	"strings"

	"github.com/verity-app/verity-backend/src/api/components/news"
)

const maxPromptArticles = 5

// buildPrompt renders the claim and up to five retrieved articles into the
// instruction text sent to the model. Pure and deterministic: identical
// inputs always produce byte-identical output.
func buildPrompt(claim string, articles []news.Article) string {
	var b strings.Builder

	b.WriteString("You are a news verification AI agent.\n")
	b.WriteString("Task: Decide if the given claim is True, False, Mixed, or Uncertain.\n")
	b.WriteString("\nClaim to check:\n")
	b.WriteString(strings.TrimSpace(claim))
	b.WriteString("\n\nRelated news articles (from GNews):\n")

	if len(articles) == 0 {
		b.WriteString("- (No related news articles found.)\n")
	} else {
		if len(articles) > maxPromptArticles {
			articles = articles[:maxPromptArticles]
		}
		for i, a := range articles {
			fmt.Fprintf(&b, "- [%d] %s (source=%s, published_at=%s)\n", i+1, a.Title, a.Source, a.PublishedAt)
		}
	}

	b.WriteString("\nUse ONLY this information and your general world knowledge up to now. ")
	b.WriteString("Output STRICTLY a JSON object with keys: verdict (True/False/Mixed/Uncertain), ")
	b.WriteString("score (0-100 integer, higher=more confident), and bullets (array of short explanation strings).")

	return b.String()
}
