package pdftools

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/pdftools-mcp/internal/fileutil"
	"github.com/alnah/pdftools-mcp/internal/process"
)

// networkIdle is how long the page must go without in-flight requests
// before it is printed.
const networkIdle = 500 * time.Millisecond

// HTMLRenderer turns an HTML document into PDF bytes written to w.
type HTMLRenderer interface {
	Render(ctx context.Context, html string, w io.Writer, opts PrintOptions) error
}

// Compile-time interface check.
var _ HTMLRenderer = (*RodRenderer)(nil)

// RodRenderer implements HTMLRenderer with headless Chrome via go-rod.
// Every Render launches its own browser and tears it down before
// returning. Rod downloads Chromium on first run if no binary is found.
type RodRenderer struct {
	bin       string
	noSandbox bool
}

// RendererOption configures a RodRenderer.
type RendererOption func(*RodRenderer)

// WithBrowserBin uses the Chrome binary at path instead of rod's lookup.
func WithBrowserBin(path string) RendererOption {
	return func(r *RodRenderer) {
		r.bin = path
	}
}

// WithNoSandbox disables the Chrome sandbox (required in most containers).
func WithNoSandbox(noSandbox bool) RendererOption {
	return func(r *RodRenderer) {
		r.noSandbox = noSandbox
	}
}

// NewRodRenderer creates a RodRenderer.
func NewRodRenderer(opts ...RendererOption) *RodRenderer {
	r := &RodRenderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render loads html from a temporary file in a fresh headless browser,
// waits for the load event and for the network to stay idle for
// networkIdle, and streams the printed PDF into w. The context bounds the
// whole call.
func (r *RodRenderer) Render(ctx context.Context, html string, w io.Writer, opts PrintOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return err
	}
	defer cleanup()

	l := r.launcher(ctx)
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	defer shutdown(l)

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	defer func() { _ = browser.Close() }()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	// Registered before navigating so no request of the document is missed.
	waitIdle := page.WaitRequestIdle(networkIdle, nil, nil, nil)
	if err := page.Navigate("file://" + tmpPath); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	waitIdle()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	reader, err := page.PDF(buildPrintToPDF(opts))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	if _, err := io.Copy(w, reader); err != nil {
		return fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return nil
}

func (r *RodRenderer) launcher(ctx context.Context) *launcher.Launcher {
	l := launcher.New().Context(ctx).Headless(true)
	if r.bin != "" {
		l = l.Bin(r.bin)
	}
	if r.noSandbox {
		l = l.NoSandbox(true)
	}
	return l
}

// shutdown stops the browser, then kills its process group in case the
// launcher left children behind, then removes the profile directory.
func shutdown(l *launcher.Launcher) {
	pid := l.PID()
	l.Kill()
	process.KillGroup(pid)
	l.Cleanup()
}

// buildPrintToPDF maps PrintOptions onto Chrome's print parameters.
func buildPrintToPDF(opts PrintOptions) *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(opts.PaperWidth),
		PaperHeight:     floatPtr(opts.PaperHeight),
		MarginTop:       floatPtr(opts.MarginTop),
		MarginRight:     floatPtr(opts.MarginRight),
		MarginBottom:    floatPtr(opts.MarginBottom),
		MarginLeft:      floatPtr(opts.MarginLeft),
		PrintBackground: opts.PrintBackground,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
