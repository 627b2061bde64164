package extract

// Confidence is the model's coarse certainty about an extracted title.
type Confidence string

const (
	ConfidenceHigh    Confidence = "high"
	ConfidenceMedium  Confidence = "medium"
	ConfidenceLow     Confidence = "low"
	ConfidenceUnknown Confidence = "unknown"
)

// UnknownTitle is the placeholder used when no title could be determined.
const UnknownTitle = "Unknown"

// ParseConfidence normalizes a model-reported confidence string.
// Anything outside the known levels maps to ConfidenceUnknown.
func ParseConfidence(s string) Confidence {
	switch normalize(s) {
	case "high":
		return ConfidenceHigh
	case "medium", "med":
		return ConfidenceMedium
	case "low":
		return ConfidenceLow
	default:
		return ConfidenceUnknown
	}
}

// Result is one extracted table title for one page.
type Result struct {
	Title      string     `json:"title"`
	PageNumber int        `json:"page_number"`
	Confidence Confidence `json:"confidence"`
}

// ResultSet is the ordered collection of results for a run.
// Order is insertion order: file enumeration order, then page order.
type ResultSet []Result

// Append returns the set with results added; the accumulator is passed
// through the pipeline as a value rather than living in package state.
func (rs ResultSet) Append(results ...Result) ResultSet {
	return append(rs, results...)
}

// Placeholder is the result recorded for a page where no table was
// recognized, so no rendered page is ever dropped from the output.
func Placeholder(page int) Result {
	return Result{Title: UnknownTitle, PageNumber: page, Confidence: ConfidenceUnknown}
}
