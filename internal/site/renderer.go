package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"

	"github.com/ksk-aiko/ResumeWebsite/internal/dom"
	"github.com/ksk-aiko/ResumeWebsite/internal/fetch"
	"github.com/ksk-aiko/ResumeWebsite/internal/nav"
	"github.com/ksk-aiko/ResumeWebsite/internal/partials"
	"github.com/ksk-aiko/ResumeWebsite/internal/portfolio"
)

// Options configures a Renderer.
type Options struct {
	SiteTitle      string
	Lang           string
	Stylesheet     string
	PartialsDir    string
	MaxConcurrency int
	Portfolio      portfolio.Options
}

// Renderer runs the page pipeline: partial injection, navigation
// highlighting, then portfolio rendering.
type Renderer struct {
	opts     Options
	injector *partials.Injector
	loader   *portfolio.Loader
	md       goldmark.Markdown
	shell    *template.Template
	logger   *zap.Logger
}

// shellData holds the data passed to the page shell for markdown pages.
type shellData struct {
	Title      string
	SiteTitle  string
	Lang       string
	Stylesheet string
	Content    template.HTML
}

// NewRenderer creates a Renderer whose partials and portfolio document are
// read through fetcher.
func NewRenderer(fetcher fetch.Fetcher, opts Options, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Lang == "" {
		opts.Lang = "ja"
	}
	if opts.Stylesheet == "" {
		opts.Stylesheet = "/assets/style.css"
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	return &Renderer{
		opts:     opts,
		injector: partials.NewInjector(fetcher, opts.PartialsDir, opts.MaxConcurrency, logger),
		loader:   portfolio.NewLoader(fetcher, opts.Portfolio, logger),
		md:       md,
		shell:    template.Must(template.New("shell").Parse(pageShell)),
		logger:   logger,
	}
}

// Portfolio returns the loader the renderer uses.
func (r *Renderer) Portfolio() *portfolio.Loader { return r.loader }

// Render runs the pipeline over an HTML page served at urlPath. All
// partial fetches finish before navigation is highlighted. Portfolio
// failures are logged and surfaced in the page, never returned.
func (r *Renderer) Render(ctx context.Context, page []byte, urlPath string) ([]byte, error) {
	doc, err := dom.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}

	injected := r.injector.Inject(ctx, doc)
	active := nav.Highlight(doc, urlPath)
	_ = r.loader.Apply(ctx, doc)

	var out bytes.Buffer
	if err := dom.Render(&out, doc); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", urlPath, err)
	}

	r.logger.Debug("page rendered",
		zap.String("path", urlPath),
		zap.Int("partials", injected),
		zap.Int("active_links", active))
	return out.Bytes(), nil
}

// RenderMarkdown converts a markdown page to HTML inside the page shell and
// then renders it like any other page.
func (r *Renderer) RenderMarkdown(ctx context.Context, src []byte, urlPath string) ([]byte, error) {
	var body bytes.Buffer
	if err := r.md.Convert(src, &body); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}

	var page bytes.Buffer
	err := r.shell.Execute(&page, shellData{
		Title:      extractTitle(string(src)),
		SiteTitle:  r.opts.SiteTitle,
		Lang:       r.opts.Lang,
		Stylesheet: r.opts.Stylesheet,
		Content:    template.HTML(rewriteMDLinks(body.String())),
	})
	if err != nil {
		return nil, fmt.Errorf("executing page shell: %w", err)
	}
	return r.Render(ctx, page.Bytes(), urlPath)
}

// RenderFile reads a page from disk and renders it according to its
// extension.
func (r *Renderer) RenderFile(ctx context.Context, path, urlPath string) ([]byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if IsMarkdown(path) {
		return r.RenderMarkdown(ctx, src, urlPath)
	}
	return r.Render(ctx, src, urlPath)
}

// IsMarkdown reports whether path names a markdown page.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// extractTitle pulls the first # heading from markdown content.
func extractTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	return ""
}

// rewriteMDLinks changes .md links in HTML content to .html links.
func rewriteMDLinks(content string) string {
	result := strings.ReplaceAll(content, `.md"`, `.html"`)
	return strings.ReplaceAll(result, `.md#`, `.html#`)
}

// mdPathToHTML converts a markdown path to its HTML equivalent.
func mdPathToHTML(p string) string {
	for _, ext := range []string{".md", ".markdown"} {
		if strings.HasSuffix(p, ext) {
			return strings.TrimSuffix(p, ext) + ".html"
		}
	}
	return p
}
