package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter follows the page rendering phase of a build.
type Reporter interface {
	Start(pages int)
	Page(done int, relPath string)
	Finish()
}

// NewReporter picks a line-oriented reporter under CI and a progress bar
// otherwise. Both write to w.
func NewReporter(w io.Writer) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LineReporter{Out: w}
	}
	return &BarReporter{Out: w}
}

// BarReporter draws a progress bar labelled with the page being rendered.
type BarReporter struct {
	Out io.Writer
	bar *progressbar.ProgressBar
}

func (r *BarReporter) Start(pages int) {
	r.bar = progressbar.NewOptions(pages,
		progressbar.OptionSetWriter(r.Out),
		progressbar.OptionSetDescription("rendering"),
		progressbar.OptionSetItsString("pages"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(50*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *BarReporter) Page(done int, relPath string) {
	if r.bar == nil {
		return
	}
	r.bar.Describe(relPath)
	_ = r.bar.Set(done)
}

func (r *BarReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// LineReporter writes one line per rendered page.
type LineReporter struct {
	Out   io.Writer
	pages int
	start time.Time
}

func (r *LineReporter) Start(pages int) {
	r.pages = pages
	r.start = time.Now()
}

func (r *LineReporter) Page(done int, relPath string) {
	fmt.Fprintf(r.Out, "rendered %s (%d/%d)\n", relPath, done, r.pages)
}

func (r *LineReporter) Finish() {
	fmt.Fprintf(r.Out, "rendered %d pages in %s\n", r.pages, time.Since(r.start).Round(time.Millisecond))
}

// Nop discards all progress.
type Nop struct{}

func (Nop) Start(int)        {}
func (Nop) Page(int, string) {}
func (Nop) Finish()          {}
