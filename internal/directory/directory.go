// Package directory is the read-only dataset behind the listing and profile
// pages: websites, creators and their products.
package directory

import (
	"errors"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrNotFound is returned by slug lookups that match nothing.
var ErrNotFound = errors.New("directory: not found")

// Website is a listed site.
type Website struct {
	ID          int    `toml:"id"`
	Slug        string `toml:"slug"`
	Title       string `toml:"title"`
	Tagline     string `toml:"tagline"`
	Description string `toml:"description"`
	URL         string `toml:"url"`
	Image       string `toml:"image"`
	MobileImage string `toml:"mobile_image"`
	Category    string `toml:"category"`
	Framework   string `toml:"framework"`
	CMS         string `toml:"cms"`
	Featured    bool   `toml:"featured"`
	LaunchDate  string `toml:"launch_date"`
}

// Product is something a creator sells or offers.
type Product struct {
	Name             string `toml:"name"`
	Type             string `toml:"type"`
	URL              string `toml:"url"`
	LogoURL          string `toml:"logo_url"`
	ShortDescription string `toml:"short_description"`
	Pricing          string `toml:"pricing"`
	LaunchDate       string `toml:"launch_date"`
}

// Creator is a profile page subject.
type Creator struct {
	ID                    int               `toml:"id"`
	Slug                  string            `toml:"slug"`
	Name                  string            `toml:"name"`
	Category              string            `toml:"category"`
	Role                  string            `toml:"role"`
	Location              string            `toml:"location"`
	Avatar                string            `toml:"avatar"`
	ShortDescription      string            `toml:"short_description"`
	Bio                   string            `toml:"bio"`
	WebsiteURL            string            `toml:"website_url"`
	Socials               map[string]string `toml:"socials"`
	Gallery               []string          `toml:"gallery"`
	NewsletterSubscribers string            `toml:"newsletter_subscribers"`
	SocialMediaFollowers  string            `toml:"social_media_followers"`
	CommunitySize         string            `toml:"community_size"`
	FoundingYear          string            `toml:"founding_year"`
	NotableMetrics        string            `toml:"notable_metrics"`
	TargetAudience        []string          `toml:"target_audience"`
	UseCases              []string          `toml:"use_cases"`
	MonetizationMethods   []string          `toml:"monetization_methods"`
	Products              []Product         `toml:"products"`
	FeaturedTweets        []string          `toml:"featured_tweets"`
}

// Handle is the display handle shown on featured content cards.
func (c Creator) Handle() string {
	return "@" + strings.Replace(c.Slug, "-", "", 1)
}

// NotableHeadline is the first segment of the pipe-separated notable metrics.
func (c Creator) NotableHeadline() string {
	head, _, _ := strings.Cut(c.NotableMetrics, "|")
	return strings.TrimSpace(head)
}

// Social is one non-empty social link.
type Social struct {
	Platform string
	Label    string
	URL      string
}

var platformOrder = []string{"twitter", "youtube", "instagram", "linkedin", "tiktok"}

// SocialLinks returns the creator's non-empty social links, known platforms
// first in a fixed order, then the rest alphabetically.
func (c Creator) SocialLinks() []Social {
	caser := cases.Title(language.English)
	seen := make(map[string]bool, len(c.Socials))
	var out []Social
	add := func(platform string) {
		url := strings.TrimSpace(c.Socials[platform])
		if url == "" || seen[platform] {
			return
		}
		seen[platform] = true
		out = append(out, Social{Platform: platform, Label: caser.String(platform), URL: url})
	}
	for _, p := range platformOrder {
		add(p)
	}
	rest := make([]string, 0, len(c.Socials))
	for p := range c.Socials {
		if !seen[p] {
			rest = append(rest, p)
		}
	}
	slices.Sort(rest)
	for _, p := range rest {
		add(p)
	}
	return out
}

// Stat is one headline number tile on a profile.
type Stat struct {
	Label string
	Value string
}

// Stats returns the tiles that have a value, in display order.
func (c Creator) Stats() []Stat {
	candidates := []Stat{
		{Label: "Newsletter", Value: c.NewsletterSubscribers},
		{Label: "Followers", Value: c.SocialMediaFollowers},
		{Label: "Community", Value: c.CommunitySize},
		{Label: "Started", Value: c.FoundingYear},
	}
	out := candidates[:0]
	for _, s := range candidates {
		if strings.TrimSpace(s.Value) != "" {
			out = append(out, s)
		}
	}
	return out
}

// TopProducts returns at most the first n products.
func (c Creator) TopProducts(n int) []Product {
	if len(c.Products) <= n {
		return c.Products
	}
	return c.Products[:n]
}
