package llm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Allowed verdict labels. Anything else the model emits normalizes to
// Uncertain.
const (
	VerdictTrue      = "True"
	VerdictFalse     = "False"
	VerdictMixed     = "Mixed"
	VerdictUncertain = "Uncertain"
)

var verdictLabels = []string{VerdictTrue, VerdictFalse, VerdictMixed, VerdictUncertain}

// ParseResult normalizes raw model output into a Result. Each field is
// coerced independently: verdict must be one of the allowed labels, score
// must be an integer in [0,100], bullets must be a list of strings. When
// the text is not a JSON object at all, the raw text is preserved as the
// sole bullet so operators can inspect what the model actually said.
func ParseResult(raw string) Result {
	payload, ok := decodeObject(raw)
	if !ok {
		return Result{Verdict: VerdictUncertain, Score: 50, Bullets: []string{raw}}
	}

	return Result{
		Verdict: coerceVerdict(payload["verdict"]),
		Score:   coerceScore(payload["score"]),
		Bullets: coerceBullets(payload["bullets"]),
	}
}

func decodeObject(raw string) (map[string]interface{}, bool) {
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &payload); err == nil {
		return payload, true
	}

	// Models sometimes wrap the object in prose; try the outermost braces.
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err == nil {
			return payload, true
		}
	}

	return nil, false
}

func coerceVerdict(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return VerdictUncertain
	}
	for _, label := range verdictLabels {
		if strings.EqualFold(strings.TrimSpace(s), label) {
			return label
		}
	}
	return VerdictUncertain
}

func coerceScore(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return clampScore(int(n))
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return clampScore(int(f))
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return clampScore(i)
		}
	}
	return 50
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func coerceBullets(v interface{}) []string {
	switch b := v.(type) {
	case nil:
		return []string{}
	case []interface{}:
		bullets := make([]string, 0, len(b))
		for _, item := range b {
			if s, ok := item.(string); ok {
				bullets = append(bullets, s)
			} else {
				bullets = append(bullets, fmt.Sprint(item))
			}
		}
		return bullets
	default:
		return []string{fmt.Sprint(b)}
	}
}
