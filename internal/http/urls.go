package http

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/gurukulhq/gurukul/internal/blog"
	"github.com/gurukulhq/gurukul/internal/catalog"
	"github.com/gurukulhq/gurukul/internal/landing"
)

// URLResolver builds canonical site URLs and renders crawler artifacts.
// When a route manager is configured the named routes win; otherwise the
// resolver falls back to conventional path joins under the base URL.
type URLResolver struct {
	baseURL string
	manager *urlkit.RouteManager
	group   string
	now     func() time.Time
}

// NewURLResolver constructs a resolver rooted at baseURL. routeCfg is
// optional.
func NewURLResolver(baseURL string, routeCfg *urlkit.Config) *URLResolver {
	resolver := &URLResolver{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		group:   "public",
		now:     time.Now,
	}
	if resolver.baseURL == "" {
		resolver.baseURL = "http://localhost"
	}
	if routeCfg != nil {
		resolver.manager = urlkit.NewRouteManager(routeCfg)
	}
	return resolver
}

// CanonicalURL resolves a named route with its slug parameter.
func (r *URLResolver) CanonicalURL(route, slug string) string {
	if built, ok := r.buildRoute(route, slug); ok {
		return built
	}
	switch route {
	case "home":
		return r.baseURL + "/"
	case "course":
		return r.baseURL + "/courses/" + slug
	case "camp":
		return r.baseURL + "/camps/" + slug
	case "post":
		return r.baseURL + "/blog/" + slug
	case "landing":
		return r.baseURL + "/landing/" + slug
	}
	return r.baseURL + "/" + strings.TrimLeft(slug, "/")
}

func (r *URLResolver) buildRoute(route, slug string) (url string, ok bool) {
	if r.manager == nil {
		return "", false
	}
	defer func() {
		if rec := recover(); rec != nil {
			url, ok = "", false
		}
	}()
	builder := r.manager.Group(r.group).Builder(route)
	if slug != "" {
		builder.WithParam("slug", slug)
	}
	built, err := builder.Build()
	if err != nil {
		return "", false
	}
	return built, true
}

type sitemapEntry struct {
	location string
	lastMod  time.Time
}

// Sitemap renders the sitemap XML from the currently publishable content.
func (r *URLResolver) Sitemap(ctx context.Context, courses catalog.Service, posts blog.Service, pages landing.Service) (string, error) {
	fallback := r.now()
	entries := []sitemapEntry{{location: r.CanonicalURL("home", ""), lastMod: fallback}}

	if courses != nil {
		list, err := courses.ListCourses(ctx, catalog.ListOptions{ActiveOnly: true})
		if err != nil {
			return "", err
		}
		for _, course := range list {
			entries = append(entries, sitemapEntry{
				location: r.CanonicalURL("course", course.Slug),
				lastMod:  course.UpdatedAt,
			})
		}
		camps, err := courses.ListCamps(ctx, catalog.ListOptions{ActiveOnly: true})
		if err != nil {
			return "", err
		}
		for _, camp := range camps {
			entries = append(entries, sitemapEntry{
				location: r.CanonicalURL("camp", camp.Slug),
				lastMod:  camp.UpdatedAt,
			})
		}
	}

	if posts != nil {
		list, err := posts.List(ctx, blog.ListOptions{ActiveOnly: true})
		if err != nil {
			return "", err
		}
		for _, post := range list {
			entries = append(entries, sitemapEntry{
				location: r.CanonicalURL("post", post.Slug),
				lastMod:  post.UpdatedAt,
			})
		}
	}

	if pages != nil {
		list, err := pages.List(ctx)
		if err != nil {
			return "", err
		}
		for _, page := range list {
			if page.Status != landing.StatusPublished {
				continue
			}
			entries = append(entries, sitemapEntry{
				location: r.CanonicalURL("landing", page.Slug),
				lastMod:  page.UpdatedAt,
			})
		}
	}

	seen := map[string]struct{}{}
	unique := entries[:0]
	for _, entry := range entries {
		if _, ok := seen[entry.location]; ok {
			continue
		}
		seen[entry.location] = struct{}{}
		if entry.lastMod.IsZero() {
			entry.lastMod = fallback
		}
		unique = append(unique, entry)
	}
	sort.Slice(unique, func(i, j int) bool {
		return unique[i].location < unique[j].location
	})

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, entry := range unique {
		builder.WriteString("  <url>\n")
		builder.WriteString(fmt.Sprintf("    <loc>%s</loc>\n", entry.location))
		builder.WriteString(fmt.Sprintf("    <lastmod>%s</lastmod>\n", entry.lastMod.UTC().Format(time.RFC3339)))
		builder.WriteString("  </url>\n")
	}
	builder.WriteString(`</urlset>` + "\n")
	return builder.String(), nil
}

// Robots renders the robots.txt payload with a sitemap pointer.
func (r *URLResolver) Robots() string {
	var builder strings.Builder
	builder.WriteString("User-agent: *\n")
	builder.WriteString("Allow: /\n")
	builder.WriteString("Disallow: /admin/\n")
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf("Sitemap: %s/sitemap.xml\n", r.baseURL))
	return builder.String()
}
