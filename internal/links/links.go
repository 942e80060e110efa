package links

// Option is one allowed internal cross-reference target.
type Option struct {
	ID          string `json:"id"`
	Href        string `json:"href"`
	AnchorText  string `json:"anchor"`
	Description string `json:"description"`
}

// registry is the fixed catalog of internal link targets. IDs must be
// unique; the LLM response schema enumerates exactly this set.
var registry = []Option{
	{
		ID:          "popcornService",
		Href:        "/services/popcorn-ceiling-removal",
		AnchorText:  "Popcorn Ceiling Removal Service",
		Description: "Step-by-step removal process and pricing info.",
	},
	{
		ID:          "localAreas",
		Href:        "/service-areas/popcorn/toronto",
		AnchorText:  "Toronto Popcorn Removal Areas",
		Description: "Neighborhood-by-neighborhood coverage map.",
	},
	{
		ID:          "ourWork",
		Href:        "/our-work",
		AnchorText:  "Before & After Projects",
		Description: "Project photos that showcase smooth ceilings.",
	},
	{
		ID:          "contact",
		Href:        "/contact",
		AnchorText:  "Request an Estimate",
		Description: "Contact form for popcorn ceiling removal quotes.",
	},
	{
		ID:          "blog",
		Href:        "/blog",
		AnchorText:  "More Popcorn Ceiling Guides",
		Description: "Resource library for homeowners planning texture removal.",
	},
}

// All returns the full registry in declaration order.
func All() []Option {
	out := make([]Option, len(registry))
	copy(out, registry)
	return out
}

// IDs returns the registry's id set in declaration order.
func IDs() []string {
	ids := make([]string, len(registry))
	for i, opt := range registry {
		ids[i] = opt.ID
	}
	return ids
}

// Resolve maps ids to registry options, preserving input order. Unknown
// ids and repeated ids are dropped; link rendering is best-effort.
func Resolve(ids []string) []Option {
	byID := make(map[string]Option, len(registry))
	for _, opt := range registry {
		byID[opt.ID] = opt
	}

	seen := make(map[string]bool, len(ids))
	var out []Option
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if opt, ok := byID[id]; ok {
			out = append(out, opt)
		}
	}
	return out
}
