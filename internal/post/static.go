package post

import "sort"

// staticPosts are the hand-written evergreen guides that ship with the
// site. They back the blog when the generated cache is cold and pad it
// out afterwards.
var staticPosts = []Post{
	{
		Title:   "Wallpaper Removal in Toronto: Cost, Timeline & Process",
		Slug:    "wallpaper-removal-toronto-guide",
		Date:    "2025-10-01",
		Excerpt: "Exactly how we remove wallpaper in GTA homes—prep, removal, repairs, skim and paint.",
		Content: []string{
			"We start with floor and furniture protection, outlet covers off and dust containment.",
			"Depending on material we score, soak or steam, then remove the paper in sections.",
			"Adhesive residue is washed off so primer bonds. Any torn drywall is repaired.",
			"We skim-coat for flatness, sand with HEPA extraction, prime and apply finish coats.",
			"Most rooms take 1–2 days depending on layers, adhesive and repairs.",
		},
	},
	{
		Title:   "Popcorn Ceiling Removal: What Affects Cost?",
		Slug:    "popcorn-ceiling-removal-cost-timeline",
		Date:    "2025-10-01",
		Excerpt: "Square footage, height, access and repairs drive price. Here's how to plan your project.",
		Content: []string{
			"We isolate the room, protect surfaces and scrape texture clean.",
			"Where needed we skim coat, sand with extraction, then prime and paint for a bright finish.",
			"Apartments and condos often require extra protection and scheduling with management.",
			"Typical living rooms finish in 1–2 days; whole homes vary by size and repairs.",
		},
	},
	{
		Title:   "Drywall Installation: Studs to Paint-Ready",
		Slug:    "drywall-installation-steps",
		Date:    "2025-10-01",
		Excerpt: "From layout checks to taped seams and sanding—our complete drywall workflow.",
		Content: []string{
			"We verify framing, moisture zones and blocking for fixtures.",
			"We install the right board type, fasten properly, and tape with paper or Fibatape as appropriate.",
			"Multiple compound coats are sanded with HEPA extraction to a smooth finish.",
			"We prime to reveal imperfections and spot-fix before paint.",
		},
	},
	{
		Title:   "Interior Painting Sheens & Where to Use Them",
		Slug:    "interior-painting-sheen-guide",
		Date:    "2025-10-01",
		Excerpt: "Matte vs. eggshell vs. satin—what lasts and looks best.",
		Content: []string{
			"Washable matte/eggshell on walls for easy touch-ups; satin/semi-gloss on trim and doors.",
			"Good paint + good prep beats more coats of cheap paint every time.",
		},
	},
	{
		Title:   "How We Keep Jobsites Clean: Dust Control",
		Slug:    "dust-control-renovation-gta",
		Date:    "2025-10-01",
		Excerpt: "HEPA extraction, smart containment and tidy cleanup for live-in projects.",
		Content: []string{
			"We combine surface protection, negative air and extraction sanding to keep dust down.",
			"Daily cleanup and clear communication make projects smoother for families and pets.",
		},
	},
}

// Static returns the built-in posts in declaration order.
func Static() []Post {
	out := make([]Post, len(staticPosts))
	copy(out, staticPosts)
	return out
}

// Merged combines generated posts with the static catalog, newest
// first. Generated posts sort ahead of static ones on equal dates.
func Merged(generated []Post) []Post {
	all := make([]Post, 0, len(generated)+len(staticPosts))
	all = append(all, generated...)
	all = append(all, staticPosts...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date > all[j].Date
	})
	return all
}

// BySlug finds a post by slug across generated and static posts.
func BySlug(generated []Post, slug string) (Post, bool) {
	for _, p := range Merged(generated) {
		if p.Slug == slug {
			return p, true
		}
	}
	return Post{}, false
}
