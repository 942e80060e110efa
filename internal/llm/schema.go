package llm

import "fmt"

// PhotoIdea is a suggested shot with its alt text.
type PhotoIdea struct {
	Description string `json:"description"`
	Alt         string `json:"alt"`
}

// Section is one heading+body block of a generated article.
type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Article is the generation service's raw structured output. It is
// transient: a validated Article is assembled into a post and never
// persisted as-is.
type Article struct {
	Title         string      `json:"title"`
	Excerpt       string      `json:"excerpt"`
	City          string      `json:"city"`
	Neighborhood  string      `json:"neighborhood"`
	LocalKeywords []string    `json:"localKeywords"`
	InternalLinks []string    `json:"internalLinks"`
	PhotoIdeas    []PhotoIdea `json:"photoIdeas"`
	Sections      []Section   `json:"sections"`
}

// Validate checks the article against the response schema's required
// fields and cardinality bounds. Any deviation means the whole
// generation is discarded; there is no partial recovery.
func (a *Article) Validate() error {
	if a.Title == "" {
		return fmt.Errorf("missing title")
	}
	if a.Excerpt == "" {
		return fmt.Errorf("missing excerpt")
	}
	if a.City == "" {
		return fmt.Errorf("missing city")
	}
	if a.Neighborhood == "" {
		return fmt.Errorf("missing neighborhood")
	}
	if n := len(a.LocalKeywords); n < 3 || n > 6 {
		return fmt.Errorf("localKeywords must have 3-6 entries, got %d", n)
	}
	if n := len(a.InternalLinks); n < 2 || n > 3 {
		return fmt.Errorf("internalLinks must have 2-3 entries, got %d", n)
	}
	if n := len(a.PhotoIdeas); n < 2 || n > 4 {
		return fmt.Errorf("photoIdeas must have 2-4 entries, got %d", n)
	}
	for i, p := range a.PhotoIdeas {
		if p.Description == "" || p.Alt == "" {
			return fmt.Errorf("photoIdeas[%d] missing description or alt", i)
		}
	}
	if n := len(a.Sections); n < 3 || n > 5 {
		return fmt.Errorf("sections must have 3-5 entries, got %d", n)
	}
	for i, s := range a.Sections {
		if s.Heading == "" || s.Body == "" {
			return fmt.Errorf("sections[%d] missing heading or body", i)
		}
	}
	return nil
}

// ResponseSchema builds the json_schema response_format document sent
// to the generation service. linkIDs enumerates the allowed internal
// link targets, which is exactly the link registry's id set.
func ResponseSchema(linkIDs []string) map[string]any {
	return map[string]any{
		"name": "popcorn_blog_post",
		"schema": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required": []string{
				"title", "excerpt", "sections", "city", "neighborhood",
				"localKeywords", "internalLinks", "photoIdeas",
			},
			"properties": map[string]any{
				"title":        map[string]any{"type": "string"},
				"excerpt":      map[string]any{"type": "string"},
				"city":         map[string]any{"type": "string"},
				"neighborhood": map[string]any{"type": "string"},
				"localKeywords": map[string]any{
					"type":     "array",
					"minItems": 3,
					"maxItems": 6,
					"items":    map[string]any{"type": "string"},
				},
				"internalLinks": map[string]any{
					"type":     "array",
					"minItems": 2,
					"maxItems": 3,
					"items":    map[string]any{"type": "string", "enum": linkIDs},
				},
				"photoIdeas": map[string]any{
					"type":     "array",
					"minItems": 2,
					"maxItems": 4,
					"items": map[string]any{
						"type":     "object",
						"required": []string{"description", "alt"},
						"properties": map[string]any{
							"description": map[string]any{"type": "string"},
							"alt":         map[string]any{"type": "string"},
						},
					},
				},
				"sections": map[string]any{
					"type":     "array",
					"minItems": 3,
					"maxItems": 5,
					"items": map[string]any{
						"type":     "object",
						"required": []string{"heading", "body"},
						"properties": map[string]any{
							"heading": map[string]any{"type": "string"},
							"body":    map[string]any{"type": "string"},
						},
					},
				},
			},
		},
	}
}
