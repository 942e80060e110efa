package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/epf-2025/blogpress/internal/llm"
	"github.com/epf-2025/blogpress/internal/store"
)

// generatorFunc adapts a function to llm.Generator.
type generatorFunc func(ctx context.Context) (*llm.Article, error)

func (f generatorFunc) Generate(ctx context.Context) (*llm.Article, error) {
	return f(ctx)
}

func testArticle() *llm.Article {
	return &llm.Article{
		Title:         "Smooth Ceilings in Leslieville",
		Excerpt:       "What texture removal really takes.",
		City:          "Toronto",
		Neighborhood:  "Leslieville",
		LocalKeywords: []string{"k1", "k2", "k3"},
		InternalLinks: []string{"contact", "blog"},
		PhotoIdeas: []llm.PhotoIdea{
			{Description: "d1", Alt: "a1"},
			{Description: "d2", Alt: "a2"},
		},
		Sections: []llm.Section{
			{Heading: "Why now", Body: "Texture traps dust."},
			{Heading: "The prep", Body: "Everything gets sealed off."},
			{Heading: "The cost", Body: "Height drives price."},
		},
	}
}

func TestRefreshSuccess(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemory())
	gen := generatorFunc(func(ctx context.Context) (*llm.Article, error) {
		return testArticle(), nil
	})

	p := New(gen, s, 30)
	created, err := p.Refresh(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Title != "Smooth Ceilings in Leslieville" {
		t.Errorf("unexpected title %q", created.Title)
	}

	cached := s.Load(ctx)
	if len(cached) != 1 {
		t.Fatalf("expected 1 cached post, got %d", len(cached))
	}
	if cached[0].Slug != created.Slug {
		t.Errorf("cache head %q does not match created post %q", cached[0].Slug, created.Slug)
	}
}

func TestRefreshGenerationFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemory())
	gen := generatorFunc(func(ctx context.Context) (*llm.Article, error) {
		return nil, &llm.ServiceError{Status: 503, Body: "unavailable"}
	})

	p := New(gen, s, 30)
	if _, err := p.Refresh(ctx); err == nil {
		t.Fatal("expected error from failed generation")
	}
	if cached := s.Load(ctx); len(cached) != 0 {
		t.Errorf("expected no cache write on failure, got %d posts", len(cached))
	}
}

func TestRefreshUnconfiguredStore(t *testing.T) {
	called := false
	gen := generatorFunc(func(ctx context.Context) (*llm.Article, error) {
		called = true
		return testArticle(), nil
	})

	p := New(gen, nil, 30)
	_, err := p.Refresh(context.Background())
	if !errors.Is(err, store.ErrUnconfigured) {
		t.Errorf("expected ErrUnconfigured, got %v", err)
	}
	if called {
		t.Error("generation should not run without a persistence binding")
	}
}

func TestSchedulerFiresWithoutBlocking(t *testing.T) {
	s := store.New(store.NewMemory())
	fired := make(chan struct{}, 4)
	gen := generatorFunc(func(ctx context.Context) (*llm.Article, error) {
		select {
		case fired <- struct{}{}:
		default:
		}
		return testArticle(), nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := New(gen, s, 30)
	p.RunScheduler(ctx, 10*time.Millisecond)

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler never fired")
	}
}
