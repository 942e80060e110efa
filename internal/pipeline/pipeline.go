// Package pipeline runs the generate -> assemble -> persist cycle
// shared by the refresh endpoint, the scheduler, and the CLI.
package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/epf-2025/blogpress/internal/llm"
	"github.com/epf-2025/blogpress/internal/post"
	"github.com/epf-2025/blogpress/internal/store"
)

// Pipeline produces one new post per refresh and maintains the
// bounded cache.
type Pipeline struct {
	generator llm.Generator
	store     *store.Store
	limit     int
}

// New creates a pipeline. A nil store means the persistence binding
// is not configured; Refresh reports that before generating.
func New(generator llm.Generator, s *store.Store, limit int) *Pipeline {
	return &Pipeline{generator: generator, store: s, limit: limit}
}

// Refresh runs one full cycle and returns the newly created post. A
// failed generation writes nothing; a concurrent reader sees either
// the old cache or the fully updated one.
func (p *Pipeline) Refresh(ctx context.Context) (*post.Post, error) {
	if p.store == nil {
		return nil, store.ErrUnconfigured
	}

	article, err := p.generator.Generate(ctx)
	if err != nil {
		return nil, err
	}

	entry := post.Assemble(article, time.Now())
	if _, err := p.store.Append(ctx, entry, p.limit); err != nil {
		return nil, err
	}

	log.Printf("Created blog post: %s (%s)", entry.Title, entry.Slug)
	return &entry, nil
}

// RunScheduler refreshes on a fixed interval until ctx is cancelled.
// Each tick fires the refresh in a detached goroutine; the ticker
// never waits on a run, and failures are logged only. The next tick
// is the retry.
func (p *Pipeline) RunScheduler(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				go func() {
					if _, err := p.Refresh(context.WithoutCancel(ctx)); err != nil {
						log.Printf("Scheduled refresh failed: %v", err)
					}
				}()
			}
		}
	}()
	log.Printf("Scheduler running every %s", interval)
}
