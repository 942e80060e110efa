// Package post assembles validated generation output into the records
// the cache persists and the site serves.
package post

import (
	"time"

	"github.com/epf-2025/blogpress/internal/links"
	"github.com/epf-2025/blogpress/internal/llm"
	"github.com/epf-2025/blogpress/internal/slug"
)

// Post is one persisted blog entry. Immutable once assembled; it only
// leaves the cache by falling off the end of the rolling window.
type Post struct {
	Title    string          `json:"title"`
	Slug     string          `json:"slug"`
	Date     string          `json:"date"`
	Excerpt  string          `json:"excerpt"`
	Content  []string        `json:"content"`
	Keywords []string        `json:"keywords,omitempty"`
	Photos   []llm.PhotoIdea `json:"photos,omitempty"`
	Links    []links.Option  `json:"links,omitempty"`
}

// Assemble builds a Post from a validated article. The slug combines
// city, neighborhood and title with the generation timestamp; each
// section flattens into a single "<heading>. <body>" string. No I/O.
func Assemble(article *llm.Article, now time.Time) Post {
	base := slug.Slugify(article.City + "-" + article.Neighborhood + "-" + article.Title)

	content := make([]string, len(article.Sections))
	for i, s := range article.Sections {
		content[i] = s.Heading + ". " + s.Body
	}

	return Post{
		Title:    article.Title,
		Slug:     slug.Dated(base, now),
		Date:     now.Format("2006-01-02"),
		Excerpt:  article.Excerpt,
		Content:  content,
		Keywords: article.LocalKeywords,
		Photos:   article.PhotoIdeas,
		Links:    links.Resolve(article.InternalLinks),
	}
}
