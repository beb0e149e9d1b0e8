package partials

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ksk-aiko/ResumeWebsite/internal/dom"
	"github.com/ksk-aiko/ResumeWebsite/internal/fetch"
)

// mapFetcher serves resources from memory and records what was requested.
type mapFetcher struct {
	mu        sync.Mutex
	resources map[string]string
	requested []string
	delay     time.Duration
	inFlight  atomic.Int32
	maxSeen   atomic.Int32
}

func (f *mapFetcher) Fetch(ctx context.Context, resource string) ([]byte, error) {
	cur := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if cur <= seen || f.maxSeen.CompareAndSwap(seen, cur) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.requested = append(f.requested, resource)
	body, ok := f.resources[resource]
	f.mu.Unlock()
	if !ok {
		return nil, &fetch.StatusError{Resource: resource, Code: http.StatusNotFound}
	}
	return []byte(body), nil
}

const page = `<html><body>
<div data-partial="header"></div>
<main><p>content</p></main>
<div data-partial="missing"></div>
<div data-partial="footer"></div>
</body></html>`

func TestInject(t *testing.T) {
	f := &mapFetcher{resources: map[string]string{
		"/partials/header.html": `<header class="site-header"><a class="nav-link" data-nav="home">Home</a></header>`,
		"/partials/footer.html": `<footer class="site-footer">footer</footer>`,
	}}
	core, logs := observer.New(zap.ErrorLevel)
	in := NewInjector(f, "", 0, zap.New(core))

	doc, err := dom.Parse(strings.NewReader(page))
	require.NoError(t, err)

	n := in.Inject(context.Background(), doc)
	assert.Equal(t, 2, n)

	assert.Len(t, dom.ElementsByClass(doc, "site-header"), 1)
	assert.Len(t, dom.ElementsByClass(doc, "site-footer"), 1)
	assert.Len(t, dom.ElementsByClass(doc, "nav-link"), 1)

	remaining := dom.ElementsWithAttr(doc, SlotAttr)
	require.Len(t, remaining, 1)
	name, _ := dom.Attr(remaining[0], SlotAttr)
	assert.Equal(t, "missing", name)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "missing", logs.All()[0].ContextMap()["partial"])
	assert.ElementsMatch(t, []string{
		"/partials/header.html",
		"/partials/missing.html",
		"/partials/footer.html",
	}, f.requested)
}

func TestInjectRunsConcurrently(t *testing.T) {
	f := &mapFetcher{
		resources: map[string]string{
			"/partials/a.html": "<p>a</p>",
			"/partials/b.html": "<p>b</p>",
			"/partials/c.html": "<p>c</p>",
		},
		delay: 50 * time.Millisecond,
	}
	in := NewInjector(f, "", 0, nil)

	doc, err := dom.Parse(strings.NewReader(
		`<body><div data-partial="a"></div><div data-partial="b"></div><div data-partial="c"></div></body>`))
	require.NoError(t, err)

	assert.Equal(t, 3, in.Inject(context.Background(), doc))
	assert.Greater(t, f.maxSeen.Load(), int32(1))
}

func TestInjectRespectsLimit(t *testing.T) {
	f := &mapFetcher{
		resources: map[string]string{
			"/partials/a.html": "<p>a</p>",
			"/partials/b.html": "<p>b</p>",
			"/partials/c.html": "<p>c</p>",
		},
		delay: 10 * time.Millisecond,
	}
	in := NewInjector(f, "", 1, nil)

	doc, err := dom.Parse(strings.NewReader(
		`<body><div data-partial="a"></div><div data-partial="b"></div><div data-partial="c"></div></body>`))
	require.NoError(t, err)

	assert.Equal(t, 3, in.Inject(context.Background(), doc))
	assert.Equal(t, int32(1), f.maxSeen.Load())
}

func TestInjectEmptyName(t *testing.T) {
	f := &mapFetcher{resources: map[string]string{}}
	in := NewInjector(f, "", 0, nil)

	doc, err := dom.Parse(strings.NewReader(`<body><div data-partial=""></div></body>`))
	require.NoError(t, err)

	assert.Equal(t, 0, in.Inject(context.Background(), doc))
	assert.Empty(t, f.requested)
}

func TestResource(t *testing.T) {
	assert.Equal(t, "/partials/header.html", NewInjector(nil, "", 0, nil).Resource("header"))
	assert.Equal(t, "/shared/nav.html", NewInjector(nil, "shared/", 0, nil).Resource("nav"))
}

func TestInjectNestedSlotDroppedWithParent(t *testing.T) {
	f := &mapFetcher{resources: map[string]string{
		"/partials/header.html": `<header class="site-header">header</header>`,
		"/partials/nav.html":    `<nav class="site-nav">nav</nav>`,
	}}
	in := NewInjector(f, "", 0, nil)

	doc, err := dom.Parse(strings.NewReader(`<html><body>
<div data-partial="header"><div data-partial="nav"></div></div>
<div data-partial="nav"></div>
</body></html>`))
	require.NoError(t, err)

	n := in.Inject(context.Background(), doc)
	assert.Equal(t, 2, n)
	assert.Len(t, dom.ElementsByClass(doc, "site-header"), 1)
	assert.Len(t, dom.ElementsByClass(doc, "site-nav"), 1)
	assert.Empty(t, dom.ElementsWithAttr(doc, SlotAttr))
}

func TestInjectNestedSlotKeptWhenParentFails(t *testing.T) {
	f := &mapFetcher{resources: map[string]string{
		"/partials/nav.html": `<nav class="site-nav">nav</nav>`,
	}}
	in := NewInjector(f, "", 0, nil)

	doc, err := dom.Parse(strings.NewReader(`<html><body>
<div data-partial="missing"><div data-partial="nav"></div></div>
</body></html>`))
	require.NoError(t, err)

	n := in.Inject(context.Background(), doc)
	assert.Equal(t, 1, n)
	require.Len(t, dom.ElementsByClass(doc, "site-nav"), 1)
	remaining := dom.ElementsWithAttr(doc, SlotAttr)
	require.Len(t, remaining, 1)
	v, _ := dom.Attr(remaining[0], SlotAttr)
	assert.Equal(t, "missing", v)
}
