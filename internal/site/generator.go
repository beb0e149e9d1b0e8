package site

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ksk-aiko/ResumeWebsite/internal/progress"
	"github.com/ksk-aiko/ResumeWebsite/internal/walker"
)

// SiteGenerator pre-renders every page of a public directory into an
// output directory and copies the remaining files alongside.
type SiteGenerator struct {
	PublicDir string
	OutputDir string
	Include   []string
	Exclude   []string
	Renderer  *Renderer
	Reporter  progress.Reporter
	Logger    *zap.Logger
}

// NewSiteGenerator creates a SiteGenerator with the given directories.
func NewSiteGenerator(publicDir, outputDir string, renderer *Renderer) *SiteGenerator {
	return &SiteGenerator{
		PublicDir: publicDir,
		OutputDir: outputDir,
		Renderer:  renderer,
		Reporter:  progress.Nop{},
		Logger:    zap.NewNop(),
	}
}

// Result summarizes a build.
type Result struct {
	Pages  int
	Copied int
	Kept   int
}

// Generate builds the full static site. Pages are rendered with the URL
// path they will be served from; assets are copied unless an identical
// file is already in the output directory.
func (g *SiteGenerator) Generate(ctx context.Context) (Result, error) {
	var res Result

	files, err := walker.Walk(walker.WalkerConfig{
		RootDir: g.PublicDir,
		Include: g.Include,
		Exclude: g.Exclude,
		SkipDir: g.OutputDir,
	})
	if err != nil {
		return res, err
	}

	var pages, assets []walker.FileInfo
	for _, f := range files {
		if f.Kind == walker.KindAsset {
			assets = append(assets, f)
		} else {
			pages = append(pages, f)
		}
	}
	if len(pages) == 0 {
		return res, fmt.Errorf("no pages found in %s", g.PublicDir)
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return res, err
	}

	for _, f := range assets {
		copied, err := copyIfChanged(f.Path, filepath.Join(g.OutputDir, filepath.FromSlash(f.RelPath)))
		if err != nil {
			return res, fmt.Errorf("copying %s: %w", f.RelPath, err)
		}
		if copied {
			res.Copied++
		} else {
			res.Kept++
		}
	}

	g.Reporter.Start(len(pages))
	for i, f := range pages {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := g.renderPage(ctx, f); err != nil {
			return res, fmt.Errorf("rendering %s: %w", f.RelPath, err)
		}
		res.Pages++
		g.Reporter.Page(i+1, f.RelPath)
	}
	g.Reporter.Finish()

	g.Logger.Info("site generated",
		zap.String("output", g.OutputDir),
		zap.Int("pages", res.Pages),
		zap.Int("assets_copied", res.Copied),
		zap.Int("assets_unchanged", res.Kept))
	return res, nil
}

// renderPage renders a single page into the output directory.
func (g *SiteGenerator) renderPage(ctx context.Context, f walker.FileInfo) error {
	outRel := mdPathToHTML(f.RelPath)
	out, err := g.Renderer.RenderFile(ctx, f.Path, "/"+outRel)
	if err != nil {
		return err
	}

	outPath := filepath.Join(g.OutputDir, filepath.FromSlash(outRel))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outPath, out, 0o644)
}

// copyIfChanged copies src to dst unless dst already has the same content.
func copyIfChanged(src, dst string) (bool, error) {
	if dstInfo, err := os.Stat(dst); err == nil {
		srcInfo, err := os.Stat(src)
		if err != nil {
			return false, err
		}
		if srcInfo.Size() == dstInfo.Size() {
			srcHash, err := walker.HashFile(src)
			if err != nil {
				return false, err
			}
			if dstHash, err := walker.HashFile(dst); err == nil && dstHash == srcHash {
				return false, nil
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return false, err
	}
	in, err := os.Open(src)
	if err != nil {
		return false, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return false, err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return false, err
	}
	return true, out.Close()
}
