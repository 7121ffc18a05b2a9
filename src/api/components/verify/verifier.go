package verify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/verity-app/verity-backend/src/api/components/llm"
	"github.com/verity-app/verity-backend/src/api/components/news"
)

const maxArticles = 5

// Verdict is the always-populated outcome of a verification call. Articles
// carries the retrieved grounding context for the caller to display.
type Verdict struct {
	Verdict  string         `json:"verdict"`
	Score    int            `json:"score"`
	Bullets  []string       `json:"bullets"`
	Articles []news.Article `json:"articles"`
}

// Searcher retrieves grounding articles for a claim. Implementations must
// absorb provider failures and return an empty slice instead.
type Searcher interface {
	Search(ctx context.Context, query string, max int) []news.Article
}

// Analyzer adjudicates a composed prompt. Implementations must absorb
// provider failures into a degraded Result instead of failing.
type Analyzer interface {
	Analyze(ctx context.Context, prompt string) llm.Result
}

// Verifier runs the retrieve -> compose -> infer -> normalize pipeline.
// It holds no mutable state and is safe for concurrent use.
type Verifier struct {
	news Searcher
	llm  Analyzer
}

func New(searcher Searcher, analyzer Analyzer) *Verifier {
	return &Verifier{news: searcher, llm: analyzer}
}

// Verify adjudicates a text claim. It never fails: an empty claim, a
// degraded provider, or a panic escaping a stage all map to a conservative
// Uncertain verdict with explanatory bullets.
func (v *Verifier) Verify(ctx context.Context, text string) (verdict Verdict) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("verification pipeline panic: %v", r)
			verdict = Verdict{
				Verdict: llm.VerdictUncertain,
				Score:   0,
				Bullets: []string{
					"Verification service temporarily unavailable.",
					fmt.Sprintf("internal error: %v", r),
				},
				Articles: []news.Article{},
			}
		}
	}()

	claim := strings.TrimSpace(text)
	if claim == "" {
		return Verdict{
			Verdict:  llm.VerdictUncertain,
			Score:    0,
			Bullets:  []string{"Empty claim provided."},
			Articles: []news.Article{},
		}
	}

	articles := v.news.Search(ctx, claim, maxArticles)
	prompt := buildPrompt(claim, articles)
	result := v.llm.Analyze(ctx, prompt)

	if articles == nil {
		articles = []news.Article{}
	}

	return Verdict{
		Verdict:  result.Verdict,
		Score:    result.Score,
		Bullets:  result.Bullets,
		Articles: articles,
	}
}
