package pdftools

// Notes:
// - Output is checked structurally with pdfcpu (validation and page count)
//   rather than by comparing bytes.
// - End must report exactly once and close the writer even when writing
//   fails. goleak confirms its goroutine is gone once the channel closes.
// - TrueType loading is exercised only through its failure path; the test
//   tree ships no font files.

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/goleak"
)

// writeDocument builds a document with the given settings into dir and
// returns the file path.
func writeDocument(t *testing.T, dir string, m TextMargins, font string, size float64, content string) string {
	t.Helper()

	doc, err := NewFPDFWriter().NewDocument(m)
	if err != nil {
		t.Fatalf("NewDocument() unexpected error: %v", err)
	}
	if err := doc.SetFont(font, size); err != nil {
		t.Fatalf("SetFont(%q, %v) unexpected error: %v", font, size, err)
	}
	if err := doc.Text(content); err != nil {
		t.Fatalf("Text() unexpected error: %v", err)
	}

	path := filepath.Join(dir, "out.pdf")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating output: %v", err)
	}
	if err := <-doc.End(f); err != nil {
		t.Fatalf("End() unexpected error: %v", err)
	}
	return path
}

func validatePDF(t *testing.T, path string) int {
	t.Helper()

	if err := api.ValidateFile(path, model.NewDefaultConfiguration()); err != nil {
		t.Fatalf("pdfcpu validation failed: %v", err)
	}
	pages, err := api.PageCountFile(path)
	if err != nil {
		t.Fatalf("PageCountFile() unexpected error: %v", err)
	}
	return pages
}

// ---------------------------------------------------------------------------
// TestFPDFWriter - valid documents
// ---------------------------------------------------------------------------

func TestFPDFWriter_SinglePage(t *testing.T) {
	t.Parallel()

	path := writeDocument(t, t.TempDir(), defaultTextRequest().Options.Margins, DefaultFont, DefaultFontSize, "Hello")

	if pages := validatePDF(t, path); pages != 1 {
		t.Errorf("page count = %d, want 1", pages)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "%PDF-") {
		t.Errorf("output does not start with a PDF header: %q", data[:min(len(data), 8)])
	}
}

func TestFPDFWriter_Paginates(t *testing.T) {
	t.Parallel()

	content := strings.Repeat("A line of text that will be repeated.\n", 300)
	path := writeDocument(t, t.TempDir(), defaultTextRequest().Options.Margins, DefaultFont, DefaultFontSize, content)

	if pages := validatePDF(t, path); pages < 2 {
		t.Errorf("page count = %d, want more than one", pages)
	}
}

func TestFPDFWriter_StandardFonts(t *testing.T) {
	t.Parallel()

	for _, font := range []string{"Helvetica", "times-roman", "Courier-Bold", "HELVETICA-BOLDOBLIQUE", "Times-Italic"} {
		t.Run(font, func(t *testing.T) {
			t.Parallel()

			path := writeDocument(t, t.TempDir(), TextMargins{Top: 72, Left: 72, Right: 72, Bottom: 72}, font, 10, "Café déjà vu")
			validatePDF(t, path)
		})
	}
}

func TestFPDFWriter_ZeroMargins(t *testing.T) {
	t.Parallel()

	path := writeDocument(t, t.TempDir(), TextMargins{}, "Courier", 8, "edge to edge")
	validatePDF(t, path)
}

// ---------------------------------------------------------------------------
// TestFPDFWriter - invalid settings
// ---------------------------------------------------------------------------

func TestFPDFWriter_InvalidMargins(t *testing.T) {
	t.Parallel()

	_, err := NewFPDFWriter().NewDocument(TextMargins{Top: -5})
	if !errors.Is(err, ErrInvalidMargin) {
		t.Errorf("error = %v, want ErrInvalidMargin", err)
	}
}

func TestFPDFWriter_SetFontErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		font string
		size float64
	}{
		{"unknown font", "Comic Sans", 12},
		{"missing ttf file", filepath.Join(t.TempDir(), "missing.ttf"), 12},
		{"zero size", "Helvetica", 0},
		{"negative size", "Helvetica", -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := NewFPDFWriter().NewDocument(TextMargins{})
			if err != nil {
				t.Fatal(err)
			}
			err = doc.SetFont(tt.font, tt.size)
			if !errors.Is(err, ErrUnsupportedFont) {
				t.Errorf("SetFont(%q, %v) error = %v, want ErrUnsupportedFont", tt.font, tt.size, err)
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("error %v should match ErrInvalidArgument", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFPDFDocument_End - completion signal
// ---------------------------------------------------------------------------

type failingWriteCloser struct {
	closed bool
}

func (w *failingWriteCloser) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func (w *failingWriteCloser) Close() error {
	w.closed = true
	return nil
}

type recordingWriteCloser struct {
	strings.Builder
	closed bool
}

func (w *recordingWriteCloser) Close() error {
	w.closed = true
	return nil
}

var _ io.WriteCloser = (*recordingWriteCloser)(nil)

func TestFPDFDocument_End(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	t.Run("success reports nil once and closes", func(t *testing.T) {
		doc, err := NewFPDFWriter().NewDocument(TextMargins{})
		if err != nil {
			t.Fatal(err)
		}
		if err := doc.Text("implicit default font"); err != nil {
			t.Fatal(err)
		}

		w := &recordingWriteCloser{}
		done := doc.End(w)

		if err := <-done; err != nil {
			t.Fatalf("End() error = %v", err)
		}
		if _, open := <-done; open {
			t.Error("channel should be closed after the single result")
		}
		if !w.closed {
			t.Error("writer was not closed")
		}
		if !strings.HasPrefix(w.String(), "%PDF-") {
			t.Error("writer did not receive a PDF")
		}
	})

	t.Run("write failure still closes", func(t *testing.T) {
		doc, err := NewFPDFWriter().NewDocument(TextMargins{})
		if err != nil {
			t.Fatal(err)
		}

		w := &failingWriteCloser{}
		err = <-doc.End(w)

		if !errors.Is(err, ErrDocumentWrite) {
			t.Errorf("End() error = %v, want ErrDocumentWrite", err)
		}
		if !w.closed {
			t.Error("writer was not closed after a failed write")
		}
	})
}
