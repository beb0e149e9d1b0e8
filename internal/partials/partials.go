// Package partials splices shared HTML fragments into pages at the
// placeholders marked with a data-partial attribute.
package partials

import (
	"context"
	"fmt"
	"path"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/ksk-aiko/ResumeWebsite/internal/dom"
	"github.com/ksk-aiko/ResumeWebsite/internal/fetch"
)

// SlotAttr marks a placeholder and names the partial that replaces it.
const SlotAttr = "data-partial"

// DefaultDir is the site path partials are served from.
const DefaultDir = "/partials"

// Injector fetches partials and replaces their placeholders.
type Injector struct {
	fetcher        fetch.Fetcher
	dir            string
	maxConcurrency int
	logger         *zap.Logger
}

// NewInjector creates an Injector. A non-positive maxConcurrency means no
// limit on parallel fetches.
func NewInjector(fetcher fetch.Fetcher, dir string, maxConcurrency int, logger *zap.Logger) *Injector {
	if dir == "" {
		dir = DefaultDir
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Injector{
		fetcher:        fetcher,
		dir:            dir,
		maxConcurrency: maxConcurrency,
		logger:         logger,
	}
}

// Resource returns the site path for the partial called name.
func (in *Injector) Resource(name string) string {
	return path.Join("/", in.dir, name+".html")
}

type slot struct {
	node   *html.Node
	name   string
	markup []byte
	err    error
}

// Inject fetches every slot's partial concurrently and, once all fetches
// have finished, replaces each slot whose fetch succeeded. Failures are
// logged per slot and leave the placeholder in place. Slots nested in a
// replaced slot are dropped with it. It returns the number of slots
// replaced.
func (in *Injector) Inject(ctx context.Context, doc *html.Node) int {
	nodes := dom.ElementsWithAttr(doc, SlotAttr)
	if len(nodes) == 0 {
		return 0
	}

	slots := make([]slot, len(nodes))
	for i, n := range nodes {
		name, _ := dom.Attr(n, SlotAttr)
		slots[i] = slot{node: n, name: name}
	}

	var g errgroup.Group
	if in.maxConcurrency > 0 {
		g.SetLimit(in.maxConcurrency)
	}
	for i := range slots {
		s := &slots[i]
		if s.name == "" {
			s.err = fmt.Errorf("empty %s attribute", SlotAttr)
			continue
		}
		g.Go(func() error {
			s.markup, s.err = in.fetcher.Fetch(ctx, in.Resource(s.name))
			return nil
		})
	}
	_ = g.Wait()

	injected := 0
	for _, s := range slots {
		if !dom.Contains(doc, s.node) {
			in.logger.Debug("partial slot replaced by its parent",
				zap.String("partial", s.name))
			continue
		}
		if s.err == nil {
			s.err = dom.ReplaceWithFragment(s.node, s.markup)
		}
		if s.err != nil {
			in.logger.Error("failed to load partial",
				zap.String("partial", s.name),
				zap.Error(s.err))
			continue
		}
		injected++
	}

	in.logger.Debug("partials injected",
		zap.Int("slots", len(slots)),
		zap.Int("injected", injected))
	return injected
}
