package portfolio

import (
	"slices"
	"strings"
	"time"
)

// Item is one portfolio entry as stored in portfolio.json.
type Item struct {
	Title     string `json:"title"`
	Date      string `json:"date"`
	Summary   string `json:"summary,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Source    string `json:"source,omitempty"`
}

// DefaultDateLayout renders dates the way the ja-JP locale prints a short
// date, e.g. 2024/3/5.
const DefaultDateLayout = "2006/1/2"

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
	"2006-01",
	"2006",
}

// ParseDate parses the date forms accepted in portfolio.json. Date-only
// values are interpreted as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders the item date with layout, or "" when the date is
// missing or unparseable.
func (it Item) FormatDate(layout string) string {
	t, ok := ParseDate(it.Date)
	if !ok {
		return ""
	}
	if layout == "" {
		layout = DefaultDateLayout
	}
	return t.Format(layout)
}

// SortByDateDesc orders items newest first. The sort is stable, and items
// without a parseable date go after every dated item.
func SortByDateDesc(items []Item) {
	type dated struct {
		item Item
		t    time.Time
		ok   bool
	}
	ds := make([]dated, len(items))
	for i, it := range items {
		t, ok := ParseDate(it.Date)
		ds[i] = dated{item: it, t: t, ok: ok}
	}
	slices.SortStableFunc(ds, func(a, b dated) int {
		switch {
		case a.ok && !b.ok:
			return -1
		case !a.ok && b.ok:
			return 1
		case !a.ok && !b.ok:
			return 0
		}
		return b.t.Compare(a.t)
	})
	for i := range ds {
		items[i] = ds[i].item
	}
}
