package pdftools

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alnah/pdftools-mcp/internal/fileutil"
	"github.com/alnah/pdftools-mcp/internal/hints"
	"github.com/alnah/pdftools-mcp/internal/pathguard"
	"github.com/alnah/pdftools-mcp/internal/pipeline"
)

// Markdown is always printed on A4 with 1cm margins.
var markdownMargin = HTMLMargin{
	Top:    DefaultHTMLMargin,
	Right:  DefaultHTMLMargin,
	Bottom: DefaultHTMLMargin,
	Left:   DefaultHTMLMargin,
}

// Dispatcher routes tool calls to the matching generation branch.
// It holds no per-call state and is safe for concurrent use.
type Dispatcher struct {
	guard            *pathguard.Guard
	home             string
	renderer         HTMLRenderer
	writer           DocumentWriter
	markdown         pipeline.HTMLConverter
	logger           logrus.FieldLogger
	cleanupOnFailure bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHomeDir sets the directory whose Downloads, Documents and Desktop
// subdirectories are the allowed output roots. Defaults to the user's home.
func WithHomeDir(dir string) Option {
	return func(d *Dispatcher) {
		d.home = dir
	}
}

// WithHTMLRenderer replaces the headless Chrome renderer.
func WithHTMLRenderer(r HTMLRenderer) Option {
	if r == nil {
		panic("pdftools: nil HTMLRenderer in WithHTMLRenderer")
	}
	return func(d *Dispatcher) {
		d.renderer = r
	}
}

// WithDocumentWriter replaces the fpdf document writer.
func WithDocumentWriter(w DocumentWriter) Option {
	if w == nil {
		panic("pdftools: nil DocumentWriter in WithDocumentWriter")
	}
	return func(d *Dispatcher) {
		d.writer = w
	}
}

// WithLogger sets the logger. Defaults to the logrus standard logger.
func WithLogger(l logrus.FieldLogger) Option {
	if l == nil {
		panic("pdftools: nil logger in WithLogger")
	}
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// WithCleanupOnFailure controls whether the partial file of a failed
// generation is removed. Enabled by default.
func WithCleanupOnFailure(enabled bool) Option {
	return func(d *Dispatcher) {
		d.cleanupOnFailure = enabled
	}
}

// NewDispatcher creates a Dispatcher. The allowed output roots are computed
// once here and never change afterwards.
func NewDispatcher(opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		markdown:         pipeline.MarkdownLite{},
		logger:           logrus.StandardLogger(),
		cleanupOnFailure: true,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		d.home = home
	}

	guard, err := pathguard.New(d.home)
	if err != nil {
		return nil, err
	}
	d.guard = guard

	if d.renderer == nil {
		d.renderer = NewRodRenderer()
	}
	if d.writer == nil {
		d.writer = NewFPDFWriter()
	}

	return d, nil
}

// AllowedRoots returns the directories outputs must resolve beneath.
func (d *Dispatcher) AllowedRoots() []string {
	return d.guard.Roots()
}

// Dispatch runs the named tool with args and reports the outcome.
// It never returns a raw error: every failure, including a panic inside a
// backend, becomes an error Result. Failed calls leave no state behind.
func (d *Dispatcher) Dispatch(ctx context.Context, toolName string, args map[string]any) (res Result) {
	start := time.Now()
	log := d.logger.WithField("tool", toolName)

	defer func() {
		if r := recover(); r != nil {
			res = errorResult(fmt.Errorf("internal error: %v", r))
			log.WithField("panic", r).Error("tool call panicked")
		}
	}()

	var (
		path string
		err  error
	)
	switch toolName {
	case ToolHTML:
		path, err = d.generateFromHTML(ctx, args)
	case ToolText:
		path, err = d.generateFromText(ctx, args)
	case ToolMarkdown:
		path, err = d.generateFromMarkdown(ctx, args)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownTool, toolName)
	}

	log = log.WithField("duration", time.Since(start).Round(time.Millisecond))
	if err != nil {
		d.logFailure(log, err)
		return errorResult(err)
	}

	log.WithField("path", path).Info("PDF generated")
	return successResult(sourceLabel(toolName), path)
}

func sourceLabel(toolName string) string {
	switch toolName {
	case ToolHTML:
		return "HTML"
	case ToolText:
		return "text"
	default:
		return "Markdown"
	}
}

// logFailure logs err with an operator hint where one applies.
func (d *Dispatcher) logFailure(log logrus.FieldLogger, err error) {
	var hint string
	switch {
	case errors.Is(err, ErrBrowserConnect):
		hint = hints.ForBrowserConnect()
	case errors.Is(err, ErrPathNotAllowed):
		hint = hints.ForPathNotAllowed(d.guard.Roots())
	case errors.Is(err, ErrCreateOutputDir):
		hint = hints.ForOutputDirectory()
	case errors.Is(err, ErrUnsupportedFont):
		hint = hints.ForUnsupportedFont()
	}
	log.WithError(err).Warn("tool call failed" + hint)
}

// ---------------------------------------------------------------------------
// Branches
// ---------------------------------------------------------------------------

func (d *Dispatcher) generateFromHTML(ctx context.Context, args map[string]any) (string, error) {
	req, err := DecodeHTMLRequest(args)
	if err != nil {
		return "", err
	}
	path, err := d.guard.Join(req.OutputDir, req.OutputFilename)
	if err != nil {
		return "", err
	}
	opts, err := ResolvePrintOptions(req.Options.Format, req.Options.Margin)
	if err != nil {
		return "", err
	}

	return path, d.writeOutput(path, func(f *os.File) error {
		return d.renderAndClose(ctx, req.HTMLContent, f, opts)
	})
}

func (d *Dispatcher) generateFromMarkdown(ctx context.Context, args map[string]any) (string, error) {
	req, err := DecodeMarkdownRequest(args)
	if err != nil {
		return "", err
	}
	path, err := d.guard.Join(req.OutputDir, req.OutputFilename)
	if err != nil {
		return "", err
	}
	html, err := d.markdown.ToHTML(ctx, req.MarkdownContent)
	if err != nil {
		return "", err
	}
	opts, err := ResolvePrintOptions(DefaultPageFormat, markdownMargin)
	if err != nil {
		return "", err
	}

	return path, d.writeOutput(path, func(f *os.File) error {
		return d.renderAndClose(ctx, html, f, opts)
	})
}

func (d *Dispatcher) generateFromText(ctx context.Context, args map[string]any) (string, error) {
	req, err := DecodeTextRequest(args)
	if err != nil {
		return "", err
	}
	path, err := d.guard.Join(req.OutputDir, req.OutputFilename)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc, err := d.writer.NewDocument(req.Options.Margins)
	if err != nil {
		return "", err
	}
	if err := doc.SetFont(req.Options.Font, req.Options.FontSize); err != nil {
		return "", err
	}
	if err := doc.Text(req.TextContent); err != nil {
		return "", err
	}

	return path, d.writeOutput(path, func(f *os.File) error {
		// End closes f; success is only known once the channel reports.
		return <-doc.End(f)
	})
}

// renderAndClose renders into f, then flushes and closes it. On error f
// is left open for writeOutput to close.
func (d *Dispatcher) renderAndClose(ctx context.Context, html string, f *os.File, opts PrintOptions) error {
	if err := d.renderer.Render(ctx, html, f, opts); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// writeOutput creates the parent directory of path, lets produce fill a
// sibling file and close it, then moves the sibling onto path. path must
// already have passed the guard. On failure nothing is left at path and,
// with cleanup enabled, the sibling is removed.
func (d *Dispatcher) writeOutput(path string, produce func(f *os.File) error) error {
	if err := fileutil.EnsureParentDir(path); err != nil {
		return fmt.Errorf("%w: %v", ErrCreateOutputDir, err)
	}

	f, err := fileutil.CreateSibling(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	committed := false
	defer func() {
		// Also runs when produce panics.
		if !committed {
			_ = f.Close()
			d.discard(f.Name())
		}
	}()

	if err := produce(f); err != nil {
		return err
	}
	if err := fileutil.Commit(f.Name(), path); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	committed = true
	return nil
}

func (d *Dispatcher) discard(partial string) {
	if !d.cleanupOnFailure {
		d.logger.WithField("partial", partial).Warn("keeping partial output")
		return
	}
	if err := fileutil.RemovePartial(partial); err != nil {
		d.logger.WithError(err).WithField("partial", partial).Warn("removing partial output")
	}
}
