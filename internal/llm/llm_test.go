package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func validArticle() Article {
	return Article{
		Title:         "Smooth Ceilings in Leslieville",
		Excerpt:       "What texture removal really takes in an east-end semi.",
		City:          "Toronto",
		Neighborhood:  "Leslieville",
		LocalKeywords: []string{"popcorn ceiling removal toronto", "leslieville renovation", "ceiling refinishing"},
		InternalLinks: []string{"popcornService", "contact"},
		PhotoIdeas: []PhotoIdea{
			{Description: "Scraping texture under plastic sheeting", Alt: "Contractor scraping popcorn ceiling"},
			{Description: "Finished smooth ceiling with pot lights", Alt: "Smooth white ceiling"},
		},
		Sections: []Section{
			{Heading: "Why now", Body: "Texture traps dust."},
			{Heading: "The prep", Body: "Floors and furniture get sealed off."},
			{Heading: "The cost", Body: "Height and repairs drive price."},
		},
	}
}

// completionResponse wraps content into a chat-completions body the
// way the service returns it.
func completionResponse(t *testing.T, content string) []byte {
	t.Helper()
	body := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal response: %v", err)
	}
	return data
}

func testClient(baseURL string) *Client {
	return &Client{
		Model:       "gpt-4.1-mini",
		BaseURL:     baseURL,
		APIKey:      "test-key",
		Temperature: 0.7,
		SiteURL:     "https://example.test",
		client:      &http.Client{Timeout: 5 * time.Second},
	}
}

func TestGenerateSuccess(t *testing.T) {
	article := validArticle()
	content, _ := json.Marshal(article)

	var gotAuth string
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotAuth = r.Header.Get("Authorization")
		w.Write(completionResponse(t, string(content)))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Generate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != article.Title {
		t.Errorf("expected title %q, got %q", article.Title, got.Title)
	}
	if len(got.Sections) != 3 {
		t.Errorf("expected 3 sections, got %d", len(got.Sections))
	}
	if calls != 1 {
		t.Errorf("expected exactly one outbound call, got %d", calls)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
}

func TestGenerateNotConfigured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made without an API key")
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.APIKey = ""
	_, err := c.Generate(context.Background())
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestGenerateServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Generate(context.Background())
	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected *ServiceError, got %v", err)
	}
	if se.Status != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", se.Status)
	}
}

func TestGenerateMalformedContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(completionResponse(t, "not json at all"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Generate(context.Background())
	var me *MalformedOutputError
	if !errors.As(err, &me) {
		t.Errorf("expected *MalformedOutputError, got %v", err)
	}
}

func TestGenerateSchemaViolation(t *testing.T) {
	article := validArticle()
	article.Sections = article.Sections[:2] // below the 3-section minimum
	content, _ := json.Marshal(article)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(completionResponse(t, string(content)))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Generate(context.Background())
	var me *MalformedOutputError
	if !errors.As(err, &me) {
		t.Errorf("expected *MalformedOutputError, got %v", err)
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Generate(context.Background())
	var me *MalformedOutputError
	if !errors.As(err, &me) {
		t.Errorf("expected *MalformedOutputError, got %v", err)
	}
}
