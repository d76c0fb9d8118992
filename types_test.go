package pdftools

// Notes:
// - ParseLength: numbers are CSS pixels (96/in); strings accept px, in, cm, mm
//   or no unit (pixels). Comparisons use a small epsilon.
// - ResolvePrintOptions: paper names are case-insensitive; margins that cover
//   the whole page are rejected.
// - Every failure must match ErrInvalidArgument so clients see one category.

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// ---------------------------------------------------------------------------
// TestParseLength - CSS lengths to inches
// ---------------------------------------------------------------------------

func TestParseLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   any
		want    float64
		wantErr error
	}{
		{"nil is zero", nil, 0, nil},
		{"float pixels", 96.0, 1, nil},
		{"int pixels", 48, 0.5, nil},
		{"int64 pixels", int64(192), 2, nil},
		{"float32 pixels", float32(24), 0.25, nil},
		{"px suffix", "96px", 1, nil},
		{"inch suffix", "0.5in", 0.5, nil},
		{"cm suffix", "2.54cm", 1, nil},
		{"mm suffix", "25.4mm", 1, nil},
		{"unitless string is pixels", "20", 20.0 / 96, nil},
		{"upper case unit", "1CM", 1 / 2.54, nil},
		{"surrounding spaces", "  1 in ", 1, nil},
		{"empty string is zero", "", 0, nil},
		{"zero", "0", 0, nil},
		{"unknown unit", "1em", 0, ErrInvalidMargin},
		{"garbage", "wide", 0, ErrInvalidMargin},
		{"negative number", -1.0, 0, ErrInvalidMargin},
		{"negative string", "-1cm", 0, ErrInvalidMargin},
		{"NaN", math.NaN(), 0, ErrInvalidMargin},
		{"infinity", "inf", 0, ErrInvalidMargin},
		{"unsupported type", true, 0, ErrInvalidMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLength(tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseLength(%v) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("error %v should match ErrInvalidArgument", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLength(%v) unexpected error: %v", tt.input, err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("ParseLength(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolvePrintOptions - paper sizes and margins
// ---------------------------------------------------------------------------

func TestResolvePrintOptions(t *testing.T) {
	t.Parallel()

	t.Run("defaults give A4 with 1cm margins", func(t *testing.T) {
		t.Parallel()

		opts, err := ResolvePrintOptions(DefaultPageFormat, defaultHTMLRequest().Options.Margin)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !almostEqual(opts.PaperWidth, 8.27) || !almostEqual(opts.PaperHeight, 11.7) {
			t.Errorf("paper = %vx%v, want 8.27x11.7", opts.PaperWidth, opts.PaperHeight)
		}
		for name, got := range map[string]float64{
			"top":    opts.MarginTop,
			"right":  opts.MarginRight,
			"bottom": opts.MarginBottom,
			"left":   opts.MarginLeft,
		} {
			if !almostEqual(got, 1/2.54) {
				t.Errorf("margin %s = %v, want %v", name, got, 1/2.54)
			}
		}
		if !opts.PrintBackground {
			t.Error("PrintBackground should be enabled")
		}
	})

	t.Run("format is case-insensitive", func(t *testing.T) {
		t.Parallel()

		for _, format := range []string{"letter", "LETTER", " Letter "} {
			opts, err := ResolvePrintOptions(format, HTMLMargin{})
			if err != nil {
				t.Fatalf("ResolvePrintOptions(%q) unexpected error: %v", format, err)
			}
			if opts.PaperWidth != 8.5 || opts.PaperHeight != 11 {
				t.Errorf("ResolvePrintOptions(%q) paper = %vx%v, want 8.5x11", format, opts.PaperWidth, opts.PaperHeight)
			}
		}
	})

	t.Run("every advertised format resolves", func(t *testing.T) {
		t.Parallel()

		for _, format := range PageFormats() {
			if _, err := ResolvePrintOptions(format, HTMLMargin{}); err != nil {
				t.Errorf("ResolvePrintOptions(%q) unexpected error: %v", format, err)
			}
		}
	})

	t.Run("mixed margin units", func(t *testing.T) {
		t.Parallel()

		opts, err := ResolvePrintOptions("A4", HTMLMargin{Top: 96, Right: "1in", Bottom: "10mm", Left: nil})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !almostEqual(opts.MarginTop, 1) || !almostEqual(opts.MarginRight, 1) ||
			!almostEqual(opts.MarginBottom, 10/25.4) || opts.MarginLeft != 0 {
			t.Errorf("margins = %+v", opts)
		}
	})

	errorTests := []struct {
		name    string
		format  string
		margin  HTMLMargin
		wantErr error
	}{
		{"unknown format", "B5", HTMLMargin{}, ErrInvalidPageFormat},
		{"empty format", "", HTMLMargin{}, ErrInvalidPageFormat},
		{"bad margin", "A4", HTMLMargin{Top: "abc"}, ErrInvalidMargin},
		{"margins wider than page", "A4", HTMLMargin{Left: "5in", Right: "5in"}, ErrInvalidMargin},
		{"margins taller than page", "Letter", HTMLMargin{Top: "6in", Bottom: "5in"}, ErrInvalidMargin},
	}

	for _, tt := range errorTests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ResolvePrintOptions(tt.format, tt.margin)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("error %v should match ErrInvalidArgument", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestTextMargins_Validate
// ---------------------------------------------------------------------------

func TestTextMargins_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		margins TextMargins
		wantErr bool
	}{
		{"defaults", defaultTextRequest().Options.Margins, false},
		{"zero", TextMargins{}, false},
		{"negative top", TextMargins{Top: -1}, true},
		{"negative bottom", TextMargins{Bottom: -0.5}, true},
		{"NaN left", TextMargins{Left: math.NaN()}, true},
		{"infinite right", TextMargins{Right: math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.margins.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidMargin) {
				t.Errorf("Validate() error = %v, want ErrInvalidMargin", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResults - confirmation and error text
// ---------------------------------------------------------------------------

func TestResults(t *testing.T) {
	t.Parallel()

	ok := successResult("HTML", "/home/u/Downloads/a.pdf")
	if ok.IsError {
		t.Error("success result flagged as error")
	}
	if ok.Text != "PDF successfully generated from HTML: /home/u/Downloads/a.pdf" {
		t.Errorf("success text = %q", ok.Text)
	}
	if ok.Path != "/home/u/Downloads/a.pdf" {
		t.Errorf("Path = %q", ok.Path)
	}

	bad := errorResult(errors.New("boom"))
	if !bad.IsError || bad.Text != "Error: boom" || bad.Path != "" {
		t.Errorf("error result = %+v", bad)
	}
}
