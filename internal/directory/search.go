package directory

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// HitKind tells which collection a search hit came from.
type HitKind string

const (
	HitWebsite HitKind = "website"
	HitCreator HitKind = "creator"
)

// Hit is one search result.
type Hit struct {
	Kind  HitKind
	Slug  string
	Title string
	Score float64
}

// minFuzzyScore is the similarity a word needs to count as a typo match.
const minFuzzyScore = 0.6

// Search matches query against website titles/categories and creator
// names/categories. Substring matches rank above typo-tolerant word matches.
func (c *Catalog) Search(query string) []Hit {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var hits []Hit
	for _, w := range c.websites {
		if s := score(q, w.Title, w.Category, w.Tagline); s > 0 {
			hits = append(hits, Hit{Kind: HitWebsite, Slug: w.Slug, Title: w.Title, Score: s})
		}
	}
	for _, cr := range c.creators {
		if s := score(q, cr.Name, cr.Category, cr.Role); s > 0 {
			hits = append(hits, Hit{Kind: HitCreator, Slug: cr.Slug, Title: cr.Name, Score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	return hits
}

// score weighs the primary field above the secondary ones.
func score(q, primary string, secondary ...string) float64 {
	p := strings.ToLower(primary)
	switch {
	case p == q:
		return 3
	case strings.HasPrefix(p, q):
		return 2.5
	case strings.Contains(p, q):
		return 2
	}
	for _, f := range secondary {
		if strings.Contains(strings.ToLower(f), q) {
			return 1.5
		}
	}
	best := 0.0
	for _, word := range strings.Fields(p) {
		if s := similarity(q, word); s > best {
			best = s
		}
	}
	if best >= minFuzzyScore {
		return best
	}
	return 0
}

func similarity(a, b string) float64 {
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}
