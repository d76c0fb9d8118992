package pdftools

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Tool names.
const (
	ToolHTML     = "generate_pdf_from_html"
	ToolText     = "generate_pdf_from_text"
	ToolMarkdown = "generate_pdf_from_markdown"
)

// Defaults applied when a request leaves a field out.
const (
	DefaultPageFormat = "A4"
	DefaultHTMLMargin = "1cm"
	DefaultFont       = "Helvetica"
	DefaultFontSize   = 12.0
	DefaultTextMargin = 50.0 // points
)

// CSS pixels per inch, as used by Chrome's print pipeline.
const pxPerInch = 96.0

// pageFormats maps paper names (lower-case) to width and height in inches.
// Values follow Chrome's named paper sizes.
var pageFormats = map[string][2]float64{
	"letter":  {8.5, 11},
	"legal":   {8.5, 14},
	"tabloid": {11, 17},
	"ledger":  {17, 11},
	"a0":      {33.1, 46.8},
	"a1":      {23.4, 33.1},
	"a2":      {16.54, 23.4},
	"a3":      {11.7, 16.54},
	"a4":      {8.27, 11.7},
	"a5":      {5.83, 8.27},
	"a6":      {4.13, 5.83},
}

// PageFormats returns the supported paper names.
func PageFormats() []string {
	return []string{"Letter", "Legal", "Tabloid", "Ledger", "A0", "A1", "A2", "A3", "A4", "A5", "A6"}
}

// ---------------------------------------------------------------------------
// Requests
// ---------------------------------------------------------------------------

// HTMLRequest holds the arguments of generate_pdf_from_html.
type HTMLRequest struct {
	HTMLContent    string      `mapstructure:"html_content"`
	OutputFilename string      `mapstructure:"output_filename"`
	OutputDir      string      `mapstructure:"output_dir"`
	Options        HTMLOptions `mapstructure:"options"`
}

// HTMLOptions are the print settings of an HTML request.
type HTMLOptions struct {
	Format string     `mapstructure:"format"`
	Margin HTMLMargin `mapstructure:"margin"`
}

// HTMLMargin holds one CSS length per side: a number (pixels) or a string
// with a px, in, cm or mm unit.
type HTMLMargin struct {
	Top    any `mapstructure:"top"`
	Right  any `mapstructure:"right"`
	Bottom any `mapstructure:"bottom"`
	Left   any `mapstructure:"left"`
}

// TextRequest holds the arguments of generate_pdf_from_text.
type TextRequest struct {
	TextContent    string      `mapstructure:"text_content"`
	OutputFilename string      `mapstructure:"output_filename"`
	OutputDir      string      `mapstructure:"output_dir"`
	Options        TextOptions `mapstructure:"options"`
}

// TextOptions are the typesetting settings of a text request.
type TextOptions struct {
	Font     string      `mapstructure:"font"`
	FontSize float64     `mapstructure:"fontSize"`
	Margins  TextMargins `mapstructure:"margins"`
}

// TextMargins are page margins in points.
type TextMargins struct {
	Top    float64 `mapstructure:"top"`
	Left   float64 `mapstructure:"left"`
	Right  float64 `mapstructure:"right"`
	Bottom float64 `mapstructure:"bottom"`
}

// MarkdownRequest holds the arguments of generate_pdf_from_markdown.
type MarkdownRequest struct {
	MarkdownContent string `mapstructure:"markdown_content"`
	OutputFilename  string `mapstructure:"output_filename"`
	OutputDir       string `mapstructure:"output_dir"`
}

// defaultHTMLRequest returns an HTMLRequest with every optional field set.
func defaultHTMLRequest() HTMLRequest {
	return HTMLRequest{Options: HTMLOptions{
		Format: DefaultPageFormat,
		Margin: HTMLMargin{
			Top:    DefaultHTMLMargin,
			Right:  DefaultHTMLMargin,
			Bottom: DefaultHTMLMargin,
			Left:   DefaultHTMLMargin,
		},
	}}
}

// defaultTextRequest returns a TextRequest with every optional field set.
func defaultTextRequest() TextRequest {
	return TextRequest{Options: TextOptions{
		Font:     DefaultFont,
		FontSize: DefaultFontSize,
		Margins: TextMargins{
			Top:    DefaultTextMargin,
			Left:   DefaultTextMargin,
			Right:  DefaultTextMargin,
			Bottom: DefaultTextMargin,
		},
	}}
}

// withDefaults restores the default page format when the caller sent a
// blank one.
func (o HTMLOptions) withDefaults() HTMLOptions {
	if strings.TrimSpace(o.Format) == "" {
		o.Format = DefaultPageFormat
	}
	return o
}

// withDefaults restores the default font and size when the caller sent a
// blank font or a zero size. Margins keep zero, which is a valid margin.
func (o TextOptions) withDefaults() TextOptions {
	if strings.TrimSpace(o.Font) == "" {
		o.Font = DefaultFont
	}
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	return o
}

// Validate checks that margins are finite and not negative.
func (m TextMargins) Validate() error {
	for _, side := range []struct {
		name string
		v    float64
	}{{"top", m.Top}, {"left", m.Left}, {"right", m.Right}, {"bottom", m.Bottom}} {
		if side.v < 0 || math.IsNaN(side.v) || math.IsInf(side.v, 0) {
			return fmt.Errorf("%w: margins.%s %v (must be a non-negative number of points)", ErrInvalidMargin, side.name, side.v)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Print options
// ---------------------------------------------------------------------------

// PrintOptions is what the HTML renderer needs to lay out pages.
// All lengths are in inches.
type PrintOptions struct {
	PaperWidth      float64
	PaperHeight     float64
	MarginTop       float64
	MarginRight     float64
	MarginBottom    float64
	MarginLeft      float64
	PrintBackground bool
}

// ResolvePrintOptions turns a paper name and per-side CSS margins into
// PrintOptions with background printing enabled.
func ResolvePrintOptions(format string, margin HTMLMargin) (PrintOptions, error) {
	size, ok := pageFormats[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return PrintOptions{}, fmt.Errorf("%w: %q (supported: %s)", ErrInvalidPageFormat, format, strings.Join(PageFormats(), ", "))
	}

	opts := PrintOptions{PaperWidth: size[0], PaperHeight: size[1], PrintBackground: true}
	for _, side := range []struct {
		name string
		v    any
		dst  *float64
	}{
		{"top", margin.Top, &opts.MarginTop},
		{"right", margin.Right, &opts.MarginRight},
		{"bottom", margin.Bottom, &opts.MarginBottom},
		{"left", margin.Left, &opts.MarginLeft},
	} {
		inches, err := ParseLength(side.v)
		if err != nil {
			return PrintOptions{}, fmt.Errorf("margin.%s: %w", side.name, err)
		}
		*side.dst = inches
	}

	if opts.MarginLeft+opts.MarginRight >= opts.PaperWidth || opts.MarginTop+opts.MarginBottom >= opts.PaperHeight {
		return PrintOptions{}, fmt.Errorf("%w: margins leave no printable area on %s", ErrInvalidMargin, format)
	}
	return opts, nil
}

// ParseLength converts a CSS length to inches. Numbers and unitless
// strings are pixels; strings may carry a px, in, cm or mm suffix.
// A nil value is zero.
func ParseLength(v any) (float64, error) {
	var inches float64
	switch x := v.(type) {
	case nil:
		return 0, nil
	case float64:
		inches = x / pxPerInch
	case float32:
		inches = float64(x) / pxPerInch
	case int:
		inches = float64(x) / pxPerInch
	case int64:
		inches = float64(x) / pxPerInch
	case string:
		var err error
		if inches, err = parseLengthString(x); err != nil {
			return 0, err
		}
	default:
		return 0, fmt.Errorf("%w: unsupported value %v (%T)", ErrInvalidMargin, v, v)
	}

	if inches < 0 || math.IsNaN(inches) || math.IsInf(inches, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidMargin, v)
	}
	return inches, nil
}

// lengthUnits maps CSS unit suffixes to their size in inches.
var lengthUnits = []struct {
	suffix string
	inches float64
}{
	{"px", 1 / pxPerInch},
	{"in", 1},
	{"cm", 1 / 2.54},
	{"mm", 1 / 25.4},
}

func parseLengthString(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}

	perUnit := 1 / pxPerInch
	for _, u := range lengthUnits {
		if strings.HasSuffix(s, u.suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			perUnit = u.inches
			break
		}
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMargin, s)
	}
	return n * perUnit, nil
}

// ---------------------------------------------------------------------------
// Results
// ---------------------------------------------------------------------------

// Result is the outcome of one dispatch: either a confirmation naming the
// written file or an error message.
type Result struct {
	Text    string
	IsError bool
	Path    string // set on success
}

func successResult(source, path string) Result {
	return Result{Text: fmt.Sprintf("PDF successfully generated from %s: %s", source, path), Path: path}
}

func errorResult(err error) Result {
	return Result{Text: "Error: " + err.Error(), IsError: true}
}
