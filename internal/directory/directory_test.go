package directory

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func seed(t *testing.T) *Catalog {
	t.Helper()
	c, err := Seed()
	require.NoError(t, err)
	return c
}

func TestSeedLoads(t *testing.T) {
	c := seed(t)
	require.NotEmpty(t, c.Websites())
	require.NotEmpty(t, c.Creators())
	require.Equal(t, "linear", c.Websites()[0].Slug)
	require.Equal(t, []string{"SaaS", "Portfolio", "Agency"}, c.Categories())

	var featured []string
	for _, w := range c.FeaturedWebsites() {
		featured = append(featured, w.Slug)
	}
	require.Equal(t, []string{"linear", "vercel", "rauno"}, featured)
}

func TestLookupsWrapNotFound(t *testing.T) {
	c := seed(t)
	w, err := c.WebsiteBySlug("vercel")
	require.NoError(t, err)
	require.Equal(t, "Vercel", w.Title)

	_, err = c.WebsiteBySlug("nope")
	require.True(t, errors.Is(err, ErrNotFound))
	_, err = c.CreatorBySlug("nope")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestRelatedWebsitesSameCategoryExcludingSelf(t *testing.T) {
	c := seed(t)
	linear, err := c.WebsiteBySlug("linear")
	require.NoError(t, err)

	related := c.RelatedWebsites(linear, 4)
	require.Len(t, related, 4)
	for _, w := range related {
		require.Equal(t, "SaaS", w.Category)
		require.NotEqual(t, linear.ID, w.ID)
	}

	rauno, err := c.WebsiteBySlug("rauno")
	require.NoError(t, err)
	require.Empty(t, c.RelatedWebsites(rauno, 4))
}

func TestOtherCreatorsExcludesSelf(t *testing.T) {
	c := seed(t)
	jane, err := c.CreatorBySlug("jane-maker")
	require.NoError(t, err)
	others := c.OtherCreators(jane, 3)
	require.Len(t, others, 3)
	for _, o := range others {
		require.NotEqual(t, "jane-maker", o.Slug)
	}
}

func TestCreatorPresentationHelpers(t *testing.T) {
	c := seed(t)
	jane, err := c.CreatorBySlug("jane-maker")
	require.NoError(t, err)

	require.Equal(t, "@janemaker", jane.Handle())
	require.Equal(t, "$40K MRR", jane.NotableHeadline())
	require.Len(t, jane.TopProducts(3), 3)

	socials := jane.SocialLinks()
	require.Len(t, socials, 2, "empty linkedin is skipped")
	require.Equal(t, "Twitter", socials[0].Label)
	require.Equal(t, "Youtube", socials[1].Label)

	stats := jane.Stats()
	labels := make([]string, 0, len(stats))
	for _, s := range stats {
		labels = append(labels, s.Label)
	}
	require.Equal(t, []string{"Newsletter", "Followers", "Started"}, labels)

	lee, err := c.CreatorBySlug("lee-writes")
	require.NoError(t, err)
	ls := lee.SocialLinks()
	require.Len(t, ls, 2)
	require.Equal(t, "Mastodon", ls[1].Label)
}

func TestSearchRanksSubstringAboveTypos(t *testing.T) {
	c := seed(t)

	hits := c.Search("linear")
	require.NotEmpty(t, hits)
	require.Equal(t, "linear", hits[0].Slug)
	require.Equal(t, HitWebsite, hits[0].Kind)

	hits = c.Search("raycst")
	require.NotEmpty(t, hits)
	require.Equal(t, "raycast", hits[0].Slug)

	hits = c.Search("youtuber")
	require.NotEmpty(t, hits)
	require.Equal(t, HitCreator, hits[0].Kind)
	require.Equal(t, "sam-video", hits[0].Slug)

	require.Nil(t, c.Search("   "))
	require.Empty(t, c.Search("zzzzzzzz"))
}

func TestNewRejectsDuplicateSlugs(t *testing.T) {
	_, err := New([]Website{{ID: 1, Slug: "a"}, {ID: 2, Slug: "a"}}, nil)
	require.Error(t, err)
	_, err = New(nil, []Creator{{ID: 1}})
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dir.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[website]]
id = 10
slug = "example"
title = "Example"
url = "https://example.com"
category = "Demo"
`), 0o600))
	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Websites(), 1)
	require.Empty(t, c.Creators())

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
