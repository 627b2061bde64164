package ai

import (
    "context"
    "errors"
    "fmt"
)

// Request carries one rendered page image for title extraction.
type Request struct {
    PageNumber  int
    Model       string
    ImageBase64 string
    ImageMIME   string // image/jpeg
}

type Response struct {
    Text      string
    TokensIn  int
    TokensOut int
}

// Client interface for providers like Gemini, OpenAI, Anthropic.
type Client interface {
    Name() string
    ExtractTables(ctx context.Context, req Request) (Response, error)
}

var ErrRateLimited = errors.New("rate_limited")

func IsRateLimited(err error) bool { return errors.Is(err, ErrRateLimited) }

// Error wraps a transport or API failure for one page. There is no retry
// policy: the failure propagates and aborts the run.
type Error struct {
    Provider string
    Page     int
    Err      error
}

func (e *Error) Error() string {
    return fmt.Sprintf("extraction failed (provider=%s page=%d): %v", e.Provider, e.Page, e.Err)
}
func (e *Error) Unwrap() error { return e.Err }

// titlePrompt is the fixed instruction sent with every page image.
const titlePrompt = `You are a JSON-only response system. Your task is to analyze this PDF page image and identify tables.

INSTRUCTIONS:
1. Look for any tables in the image
2. For each table found, identify its title (text above or near the table)
3. If no clear title is found, use 'Unknown' as the title
4. Report how confident you are in each title: high, medium or low

RESPONSE FORMAT:
You must respond with ONLY a JSON array. No other text or explanation.
Example response format:
[
  {
    "title": "Table Title or Unknown",
    "page_number": 1,
    "confidence": "high"
  }
]

IMPORTANT:
- Respond with ONLY the JSON array
- Do not include any other text or explanation
- Ensure the JSON is properly formatted
- If no tables are found, return an empty array []`
