// Package preview implements the embedded-content hosts behind the preview
// modal. The live host fetches the page and reduces it to text; the snapshot
// host serves the listing's screenshots and leaves browsing to the system.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/jask/showcase/internal/config"
	"github.com/jask/showcase/internal/directory"
	"github.com/jask/showcase/internal/widget"
)

// ErrUnsupportedContent is returned for responses that are not HTML.
var ErrUnsupportedContent = errors.New("preview: not an html page")

const (
	maxBodyBytes = 2 << 20
	maxLines     = 60
)

// New returns the host selected by cfg.Mode.
func New(cfg config.PreviewConfig, catalog *directory.Catalog) widget.EmbedHost {
	if strings.EqualFold(cfg.Mode, config.PreviewSnapshot) {
		return &SnapshotHost{Catalog: catalog}
	}
	return &LiveHost{
		Client:    &http.Client{Timeout: cfg.Timeout},
		UserAgent: cfg.UserAgent,
	}
}

// LiveHost fetches the page over HTTP.
type LiveHost struct {
	Client    *http.Client
	UserAgent string
}

func (h *LiveHost) Load(ctx context.Context, url string) (widget.Content, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return widget.Content{}, fmt.Errorf("build request: %w", err)
	}
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	client := h.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return widget.Content{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return widget.Content{}, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") {
		return widget.Content{}, fmt.Errorf("%w: %s", ErrUnsupportedContent, ct)
	}
	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return widget.Content{}, fmt.Errorf("parse %s: %w", url, err)
	}
	c := Extract(doc)
	c.External = url
	return c, nil
}

// Extract reduces a parsed document to its title, description, images and
// readable text blocks.
func Extract(doc *html.Node) widget.Content {
	var c widget.Content
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Svg, atom.Template:
				return
			case atom.Title:
				if c.Title == "" {
					c.Title = text(n)
				}
				return
			case atom.Meta:
				meta(&c, n)
			case atom.H1, atom.H2, atom.H3:
				if t := text(n); t != "" && len(c.Lines) < maxLines {
					c.Lines = append(c.Lines, "# "+t)
				}
				return
			case atom.P, atom.Li:
				if t := text(n); t != "" && len(c.Lines) < maxLines {
					c.Lines = append(c.Lines, t)
				}
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return c
}

func meta(c *widget.Content, n *html.Node) {
	var name, content string
	for _, a := range n.Attr {
		switch strings.ToLower(a.Key) {
		case "name", "property":
			name = strings.ToLower(a.Val)
		case "content":
			content = strings.TrimSpace(a.Val)
		}
	}
	if content == "" {
		return
	}
	switch name {
	case "description", "og:description":
		if c.Summary == "" {
			c.Summary = content
		}
	case "og:title":
		if c.Title == "" {
			c.Title = content
		}
	case "og:image":
		c.Images = append(c.Images, content)
	}
}

// text returns the collapsed text content of n.
func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// SnapshotHost serves the listing's screenshots instead of the live page.
type SnapshotHost struct {
	Catalog *directory.Catalog
}

func (h *SnapshotHost) Load(ctx context.Context, url string) (widget.Content, error) {
	if err := ctx.Err(); err != nil {
		return widget.Content{}, err
	}
	c := widget.Content{Title: widget.DisplayURL(url), External: url}
	if h.Catalog == nil {
		return c, nil
	}
	for _, w := range h.Catalog.Websites() {
		if strings.TrimSuffix(w.URL, "/") != strings.TrimSuffix(url, "/") {
			continue
		}
		c.Title = w.Title
		c.Summary = w.Description
		for _, img := range []string{w.Image, w.MobileImage} {
			if img != "" {
				c.Images = append(c.Images, img)
			}
		}
		c.Lines = []string{w.Tagline}
		break
	}
	return c, nil
}
