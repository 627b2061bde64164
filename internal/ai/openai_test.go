package ai

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
)

func TestOpenAIExtractTables(t *testing.T) {
    var gotAuth string
    var gotBody openAIChatReq

    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        gotAuth = r.Header.Get("Authorization")
        _ = json.NewDecoder(r.Body).Decode(&gotBody)
        _, _ = w.Write([]byte(`{
            "choices":[{"message":{"content":"[{\"title\":\"Budget\",\"confidence\":\"medium\"}]"}}],
            "usage":{"prompt_tokens":200,"completion_tokens":40}
        }`))
    }))
    defer srv.Close()

    c := &OpenAIClient{http: &http.Client{}, apiKey: "sk-test", baseURL: srv.URL}

    req := Request{PageNumber: 2, Model: "gpt-4o", ImageBase64: "YWJj", ImageMIME: "image/jpeg"}
    resp, err := c.ExtractTables(context.Background(), req)
    if err != nil {
        t.Fatalf("ExtractTables failed: %v", err)
    }

    if gotAuth != "Bearer sk-test" {
        t.Errorf("auth header: got %q", gotAuth)
    }
    if gotBody.Model != "gpt-4o" || len(gotBody.Messages) != 1 {
        t.Errorf("unexpected request body: %+v", gotBody)
    }
    content := gotBody.Messages[0].Content
    if len(content) != 2 {
        t.Fatalf("expected image part and text part, got %d", len(content))
    }
    imageURL, _ := content[0]["image_url"].(map[string]any)
    url, _ := imageURL["url"].(string)
    if !strings.HasPrefix(url, "data:image/jpeg;base64,YWJj") {
        t.Errorf("image data url wrong: %q", url)
    }
    if !strings.Contains(resp.Text, "Budget") || resp.TokensIn != 200 || resp.TokensOut != 40 {
        t.Errorf("unexpected response: %+v", resp)
    }
}

func TestOpenAIRateLimited(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(429)
    }))
    defer srv.Close()

    c := &OpenAIClient{http: &http.Client{}, apiKey: "sk-test", baseURL: srv.URL}
    _, err := c.ExtractTables(context.Background(), Request{Model: "gpt-4o"})
    if !IsRateLimited(err) {
        t.Errorf("expected ErrRateLimited, got %v", err)
    }
}
