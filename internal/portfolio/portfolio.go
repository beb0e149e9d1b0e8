// Package portfolio loads the portfolio document and renders it as a list
// of cards into a page.
package portfolio

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/ksk-aiko/ResumeWebsite/internal/dom"
	"github.com/ksk-aiko/ResumeWebsite/internal/fetch"
)

const (
	// DefaultPath is where the portfolio document is served.
	DefaultPath = "/assets/portfolio.json"
	// ListID is the container cards are rendered into.
	ListID = "portfolio-list"
	// ErrorID receives the user-facing message when loading fails.
	ErrorID = "portfolio-error"
	// DefaultErrorMessage is shown when the portfolio cannot be loaded.
	DefaultErrorMessage = "ポートフォリオを読み込めませんでした。時間をおいて再度お試しください。"
)

// Options configures a Loader. Zero values fall back to the defaults above.
type Options struct {
	Path         string
	ErrorMessage string
	DateLayout   string
}

// Loader fetches and renders the portfolio.
type Loader struct {
	fetcher fetch.Fetcher
	opts    Options
	logger  *zap.Logger
}

// NewLoader creates a Loader reading through fetcher.
func NewLoader(fetcher fetch.Fetcher, opts Options, logger *zap.Logger) *Loader {
	if opts.Path == "" {
		opts.Path = DefaultPath
	}
	if opts.ErrorMessage == "" {
		opts.ErrorMessage = DefaultErrorMessage
	}
	if opts.DateLayout == "" {
		opts.DateLayout = DefaultDateLayout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fetcher: fetcher, opts: opts, logger: logger}
}

// Load fetches the portfolio document and returns its items newest first.
func (l *Loader) Load(ctx context.Context) ([]Item, error) {
	data, err := l.fetcher.Fetch(ctx, l.opts.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", l.opts.Path, err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", l.opts.Path, err)
	}
	if items == nil {
		return nil, fmt.Errorf("parsing %s: not an array", l.opts.Path)
	}

	SortByDateDesc(items)
	return items, nil
}

// Apply renders the portfolio into doc. Pages without a portfolio list are
// left alone. When loading fails the error is logged and the error element,
// if any, gets the configured message; no cards are rendered.
func (l *Loader) Apply(ctx context.Context, doc *html.Node) error {
	list := dom.ElementByID(doc, ListID)
	if list == nil {
		return nil
	}

	items, err := l.Load(ctx)
	if err != nil {
		l.logger.Error("portfolio load failed", zap.Error(err))
		if errEl := dom.ElementByID(doc, ErrorID); errEl != nil {
			dom.SetText(errEl, l.opts.ErrorMessage)
		}
		return err
	}

	Render(list, items, l.opts.DateLayout)
	l.logger.Debug("portfolio rendered", zap.Int("items", len(items)))
	return nil
}

// Render replaces the children of list with one card per item, in order.
func Render(list *html.Node, items []Item, dateLayout string) {
	dom.RemoveChildren(list)
	for _, it := range items {
		list.AppendChild(Card(it, dateLayout))
	}
}

// Card builds the article element for one item. The image, summary and
// source link are only present when the item has them.
func Card(it Item, dateLayout string) *html.Node {
	article := dom.NewElement("article", html.Attribute{Key: "class", Val: "portfolio-card"})

	if it.Thumbnail != "" {
		article.AppendChild(dom.NewElement("img",
			html.Attribute{Key: "src", Val: it.Thumbnail},
			html.Attribute{Key: "alt", Val: it.Title},
		))
	}

	content := dom.NewElement("div", html.Attribute{Key: "class", Val: "portfolio-card-content"})

	h2 := dom.NewElement("h2")
	dom.SetText(h2, it.Title)
	content.AppendChild(h2)

	meta := dom.NewElement("p", html.Attribute{Key: "class", Val: "meta"})
	dom.SetText(meta, it.FormatDate(dateLayout))
	content.AppendChild(meta)

	if it.Summary != "" {
		summary := dom.NewElement("p")
		dom.SetText(summary, it.Summary)
		content.AppendChild(summary)
	}

	if it.Source != "" {
		link := dom.NewElement("a",
			html.Attribute{Key: "href", Val: it.Source},
			html.Attribute{Key: "target", Val: "_blank"},
			html.Attribute{Key: "rel", Val: "noopener"},
			html.Attribute{Key: "class", Val: "btn secondary"},
		)
		dom.SetText(link, "Source")
		content.AppendChild(link)
	}

	article.AppendChild(content)
	return article
}
