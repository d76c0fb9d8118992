package pdftools

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"
)

// DocumentWriter builds PDFs from explicit typesetting directives.
type DocumentWriter interface {
	NewDocument(margins TextMargins) (Document, error)
}

// Document is one PDF under construction.
type Document interface {
	// SetFont selects a standard PDF font by name, or a TrueType font by
	// path to a .ttf file, at size points.
	SetFont(name string, size float64) error
	// Text appends content as one block, wrapped and paginated within the
	// margins.
	Text(content string) error
	// End serializes the document to w and closes w. The returned channel
	// yields exactly one value, nil or the first error, once the bytes are
	// flushed and w is closed.
	End(w io.WriteCloser) <-chan error
}

// Compile-time interface checks.
var (
	_ DocumentWriter = (*FPDFWriter)(nil)
	_ Document       = (*fpdfDocument)(nil)
)

// lineSpacing is the line height as a multiple of the font size.
const lineSpacing = 1.15

// utf8Family is the family name under which a .ttf font is registered.
const utf8Family = "custom-ttf"

type fontFace struct {
	family string
	style  string
}

// standardFonts maps the PDF standard-14 names (lower-case) to fpdf's core
// font family and style.
var standardFonts = map[string]fontFace{
	"helvetica":             {"Helvetica", ""},
	"helvetica-bold":        {"Helvetica", "B"},
	"helvetica-oblique":     {"Helvetica", "I"},
	"helvetica-boldoblique": {"Helvetica", "BI"},
	"times-roman":           {"Times", ""},
	"times-bold":            {"Times", "B"},
	"times-italic":          {"Times", "I"},
	"times-bolditalic":      {"Times", "BI"},
	"courier":               {"Courier", ""},
	"courier-bold":          {"Courier", "B"},
	"courier-oblique":       {"Courier", "I"},
	"courier-boldoblique":   {"Courier", "BI"},
	"symbol":                {"Symbol", ""},
	"zapfdingbats":          {"ZapfDingbats", ""},
}

// FPDFWriter implements DocumentWriter with go-pdf/fpdf.
// Pages are US Letter, measured in points.
type FPDFWriter struct{}

// NewFPDFWriter creates the default document writer.
func NewFPDFWriter() *FPDFWriter {
	return &FPDFWriter{}
}

// NewDocument starts a document with one empty page and the given margins.
func (*FPDFWriter) NewDocument(m TextMargins) (Document, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(m.Left, m.Top, m.Right)
	pdf.SetAutoPageBreak(true, m.Bottom)
	pdf.SetCreator("pdftools-mcp", true)
	pdf.AddPage()
	if pdf.Err() {
		return nil, fmt.Errorf("%w: %v", ErrDocumentWrite, pdf.Error())
	}

	return &fpdfDocument{pdf: pdf}, nil
}

type fpdfDocument struct {
	pdf       *fpdf.Fpdf
	size      float64
	translate func(string) string
}

func (d *fpdfDocument) SetFont(name string, size float64) error {
	if size <= 0 {
		return fmt.Errorf("%w: size %v (must be positive)", ErrUnsupportedFont, size)
	}

	if strings.HasSuffix(strings.ToLower(name), ".ttf") {
		data, err := os.ReadFile(name) // #nosec G304 -- font path is caller-provided
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnsupportedFont, err)
		}
		d.pdf.AddUTF8FontFromBytes(utf8Family, "", data)
		d.pdf.SetFont(utf8Family, "", size)
		d.translate = nil
	} else {
		face, ok := standardFonts[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnsupportedFont, name)
		}
		d.pdf.SetFont(face.family, face.style, size)
		// Core fonts are single-byte encoded.
		d.translate = d.pdf.UnicodeTranslatorFromDescriptor("")
	}

	if d.pdf.Err() {
		return fmt.Errorf("%w: %q: %v", ErrUnsupportedFont, name, d.pdf.Error())
	}
	d.size = size
	return nil
}

func (d *fpdfDocument) Text(content string) error {
	if d.size == 0 {
		if err := d.SetFont(DefaultFont, DefaultFontSize); err != nil {
			return err
		}
	}
	if d.translate != nil {
		content = d.translate(content)
	}
	d.pdf.MultiCell(0, d.size*lineSpacing, content, "", "L", false)
	if d.pdf.Err() {
		return fmt.Errorf("%w: %v", ErrDocumentWrite, d.pdf.Error())
	}
	return nil
}

// syncer is implemented by *os.File.
type syncer interface {
	Sync() error
}

func (d *fpdfDocument) End(w io.WriteCloser) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)

		err := d.pdf.Output(w)
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrDocumentWrite, err)
		}
		if s, ok := w.(syncer); ok && err == nil {
			if serr := s.Sync(); serr != nil {
				err = fmt.Errorf("%w: %v", ErrWriteOutput, serr)
			}
		}
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %v", ErrWriteOutput, cerr)
		}
		done <- err
	}()
	return done
}
