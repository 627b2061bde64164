package ai

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "net/http"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com"

type GeminiClient struct {
    http    *http.Client
    apiKey  string
    baseURL string
}

func NewGeminiClient(apiKey string) *GeminiClient {
    return &GeminiClient{http: &http.Client{}, apiKey: apiKey, baseURL: geminiBaseURL}
}
func (c *GeminiClient) Name() string { return "gemini" }

type geminiPart struct {
    Text       string            `json:"text,omitempty"`
    InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
    MIMEType string `json:"mime_type"`
    Data     string `json:"data"`
}

type geminiContent struct {
    Parts []geminiPart `json:"parts"`
}

type geminiGenReq struct {
    Contents         []geminiContent `json:"contents"`
    GenerationConfig struct {
        Temperature float64 `json:"temperature"`
    } `json:"generationConfig"`
}

type geminiGenResp struct {
    Candidates []struct {
        Content struct {
            Parts []struct {
                Text string `json:"text"`
            } `json:"parts"`
        } `json:"content"`
    } `json:"candidates"`
    UsageMetadata struct {
        PromptTokenCount     int `json:"promptTokenCount"`
        CandidatesTokenCount int `json:"candidatesTokenCount"`
    } `json:"usageMetadata"`
}

func (c *GeminiClient) ExtractTables(ctx context.Context, req Request) (Response, error) {
    if c.apiKey == "" {
        return Response{}, errors.New("missing GEMINI_API_KEY")
    }

    payload := geminiGenReq{
        Contents: []geminiContent{{
            Parts: []geminiPart{
                {Text: titlePrompt},
                {InlineData: &geminiInlineData{MIMEType: req.ImageMIME, Data: req.ImageBase64}},
            },
        }},
    }

    body, _ := json.Marshal(payload)
    url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, req.Model)
    httpReq, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
    httpReq.Header.Set("x-goog-api-key", c.apiKey)
    httpReq.Header.Set("Content-Type", "application/json")

    resp, err := c.http.Do(httpReq)
    if err != nil {
        return Response{}, err
    }
    defer resp.Body.Close()

    if resp.StatusCode == 429 {
        return Response{}, ErrRateLimited
    }
    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        return Response{}, fmt.Errorf("gemini status %d", resp.StatusCode)
    }

    var r geminiGenResp
    if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
        return Response{}, err
    }
    if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
        return Response{}, errors.New("no candidates")
    }

    return Response{
        Text:      r.Candidates[0].Content.Parts[0].Text,
        TokensIn:  r.UsageMetadata.PromptTokenCount,
        TokensOut: r.UsageMetadata.CandidatesTokenCount,
    }, nil
}
