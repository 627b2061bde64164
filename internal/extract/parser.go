package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Table is one table reported by the model for a page, before normalization.
type Table struct {
	Title      string `json:"title"`
	PageNumber int    `json:"page_number"`
	Confidence string `json:"confidence"`
}

// ErrUnrecognized indicates the model response contained no parseable
// table report. Callers substitute the page placeholder explicitly.
var ErrUnrecognized = errors.New("no recognizable table report in response")

// ParseResponse extracts table reports from the raw model answer.
// The model is instructed to return a bare JSON array, but answers wrapped
// in markdown fences or surrounding prose are recovered. A single JSON
// object is tolerated as a one-element array.
func ParseResponse(text string) ([]Table, error) {
	raw, err := parseJSONCandidates(text)
	if err != nil {
		return nil, err
	}

	var tables []Table
	if err := json.Unmarshal(raw, &tables); err != nil {
		// Some models answer with a bare object instead of an array.
		var single Table
		if err2 := json.Unmarshal(raw, &single); err2 != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnrecognized, err)
		}
		tables = []Table{single}
	}

	for i := range tables {
		if strings.TrimSpace(tables[i].Title) == "" {
			tables[i].Title = UnknownTitle
		}
	}
	return tables, nil
}

// ResultsForPage converts parsed tables into results for one page. The page
// number always comes from the pipeline, never from the model. Zero tables
// (or a failed parse upstream) yields the single Unknown placeholder.
func ResultsForPage(tables []Table, page int) []Result {
	if len(tables) == 0 {
		return []Result{Placeholder(page)}
	}
	out := make([]Result, 0, len(tables))
	for _, t := range tables {
		out = append(out, Result{
			Title:      t.Title,
			PageNumber: page,
			Confidence: ParseConfidence(t.Confidence),
		})
	}
	return out
}

// parseJSONCandidates tries the raw text, a fence-stripped variant and a
// bracket-delimited candidate, returning the first that is valid JSON.
func parseJSONCandidates(text string) (json.RawMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", ErrUnrecognized)
	}

	candidates := []string{text}
	if stripped := stripCodeFences(text); stripped != "" && stripped != text {
		candidates = append(candidates, stripped)
	}
	if extracted := extractJSONCandidate(text); extracted != "" && extracted != text {
		candidates = append(candidates, extracted)
	}

	for _, candidate := range candidates {
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}
	return nil, ErrUnrecognized
}

func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return ""
	}

	// Drop first fence line.
	lines = lines[1:]
	// Drop trailing fence if present.
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func extractJSONCandidate(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ""
	}

	objectStart := strings.Index(trimmed, "{")
	arrayStart := strings.Index(trimmed, "[")

	start := -1
	closeChar := ""
	switch {
	case objectStart >= 0 && arrayStart >= 0:
		if objectStart < arrayStart {
			start = objectStart
			closeChar = "}"
		} else {
			start = arrayStart
			closeChar = "]"
		}
	case objectStart >= 0:
		start = objectStart
		closeChar = "}"
	case arrayStart >= 0:
		start = arrayStart
		closeChar = "]"
	default:
		return ""
	}

	end := strings.LastIndex(trimmed, closeChar)
	if end < start {
		return ""
	}
	return strings.TrimSpace(trimmed[start : end+1])
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
