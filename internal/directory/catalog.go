package directory

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed seed.toml
var seedData string

// Catalog is an in-memory, read-only view of the dataset. Order is the file order.
type Catalog struct {
	websites []Website
	creators []Creator
	bySite   map[string]int
	byMaker  map[string]int
}

type dataset struct {
	Websites []Website `toml:"website"`
	Creators []Creator `toml:"creator"`
}

// New builds a catalog. Duplicate slugs are rejected.
func New(websites []Website, creators []Creator) (*Catalog, error) {
	c := &Catalog{
		websites: slices.Clone(websites),
		creators: slices.Clone(creators),
		bySite:   make(map[string]int, len(websites)),
		byMaker:  make(map[string]int, len(creators)),
	}
	for i, w := range c.websites {
		if strings.TrimSpace(w.Slug) == "" {
			return nil, fmt.Errorf("website %d: empty slug", w.ID)
		}
		if _, dup := c.bySite[w.Slug]; dup {
			return nil, fmt.Errorf("website %q: duplicate slug", w.Slug)
		}
		c.bySite[w.Slug] = i
	}
	for i, cr := range c.creators {
		if strings.TrimSpace(cr.Slug) == "" {
			return nil, fmt.Errorf("creator %d: empty slug", cr.ID)
		}
		if _, dup := c.byMaker[cr.Slug]; dup {
			return nil, fmt.Errorf("creator %q: duplicate slug", cr.Slug)
		}
		c.byMaker[cr.Slug] = i
	}
	return c, nil
}

// Parse decodes a TOML dataset with [[website]] and [[creator]] tables.
func Parse(data string) (*Catalog, error) {
	var ds dataset
	if _, err := toml.Decode(data, &ds); err != nil {
		return nil, fmt.Errorf("decode directory: %w", err)
	}
	return New(ds.Websites, ds.Creators)
}

// Load reads the dataset at path, or the built-in seed when path is empty.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Seed()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}
	return Parse(string(data))
}

// Seed returns the built-in dataset.
func Seed() (*Catalog, error) {
	return Parse(seedData)
}

func (c *Catalog) Websites() []Website { return c.websites }

func (c *Catalog) Creators() []Creator { return c.creators }

func (c *Catalog) WebsiteBySlug(slug string) (Website, error) {
	i, ok := c.bySite[slug]
	if !ok {
		return Website{}, fmt.Errorf("website %q: %w", slug, ErrNotFound)
	}
	return c.websites[i], nil
}

func (c *Catalog) CreatorBySlug(slug string) (Creator, error) {
	i, ok := c.byMaker[slug]
	if !ok {
		return Creator{}, fmt.Errorf("creator %q: %w", slug, ErrNotFound)
	}
	return c.creators[i], nil
}

// FeaturedWebsites returns featured listings in dataset order.
func (c *Catalog) FeaturedWebsites() []Website {
	var out []Website
	for _, w := range c.websites {
		if w.Featured {
			out = append(out, w)
		}
	}
	return out
}

// RelatedWebsites returns up to limit other websites in the same category.
func (c *Catalog) RelatedWebsites(w Website, limit int) []Website {
	var out []Website
	for _, other := range c.websites {
		if len(out) == limit {
			break
		}
		if other.Category == w.Category && other.ID != w.ID {
			out = append(out, other)
		}
	}
	return out
}

// OtherCreators returns up to limit creators that are not cr.
func (c *Catalog) OtherCreators(cr Creator, limit int) []Creator {
	var out []Creator
	for _, other := range c.creators {
		if len(out) == limit {
			break
		}
		if other.Slug != cr.Slug {
			out = append(out, other)
		}
	}
	return out
}

// Categories returns the distinct website categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, w := range c.websites {
		if !seen[w.Category] {
			seen[w.Category] = true
			out = append(out, w.Category)
		}
	}
	return out
}
