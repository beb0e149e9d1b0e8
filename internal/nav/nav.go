// Package nav marks the navigation link for the current page as active.
package nav

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/ksk-aiko/ResumeWebsite/internal/dom"
)

const (
	// LinkClass selects navigation links.
	LinkClass = "nav-link"
	// KeyAttr carries a link's route key.
	KeyAttr = "data-nav"
	// ActiveClass is toggled on the matching link.
	ActiveClass = "active"
)

// Route keys understood by IsActive.
const (
	RouteHome      = "home"
	RouteResume    = "resume"
	RoutePortfolio = "portfolio"
)

// Normalize strips trailing slashes from a URL path. The bare root stays "/".
func Normalize(path string) string {
	path = strings.TrimRight(path, "/")
	if path == "" {
		return "/"
	}
	return path
}

// IsActive reports whether the link with route key should be highlighted
// on the page at path. Home matches the site root exactly; the other
// routes match on substring containment.
func IsActive(key, path string) bool {
	path = Normalize(path)
	switch key {
	case RouteHome:
		return path == "/" || path == "/index.html"
	case RouteResume:
		return strings.Contains(path, "/resume")
	case RoutePortfolio:
		return strings.Contains(path, "/portfolio")
	default:
		return false
	}
}

// Highlight toggles the active class on every navigation link in doc and
// returns how many links ended up active.
func Highlight(doc *html.Node, path string) int {
	active := 0
	for _, link := range dom.ElementsByClass(doc, LinkClass) {
		key, _ := dom.Attr(link, KeyAttr)
		on := IsActive(key, path)
		dom.ToggleClass(link, ActiveClass, on)
		if on {
			active++
		}
	}
	return active
}
