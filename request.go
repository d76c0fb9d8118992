package pdftools

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// requireStrings checks that each key is present in args and holds a string.
// Only presence and type are checked; an empty string is accepted.
func requireStrings(args map[string]any, keys ...string) error {
	for _, key := range keys {
		v, ok := args[key]
		if !ok || v == nil {
			return fmt.Errorf("%w: %s", ErrMissingArgument, key)
		}
		if _, ok := v.(string); !ok {
			return fmt.Errorf("%w: %s must be a string, got %T", ErrMissingArgument, key, v)
		}
	}
	return nil
}

// decodeArgs decodes args onto dst, which already carries the defaults.
// Keys absent from args leave the matching defaults untouched, including
// inside nested objects. Scalar types are converted leniently ("14" → 14).
func decodeArgs(args map[string]any, dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           dst,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return nil
}

// DecodeHTMLRequest validates and decodes generate_pdf_from_html arguments.
// A blank format falls back to DefaultPageFormat.
func DecodeHTMLRequest(args map[string]any) (HTMLRequest, error) {
	if err := requireStrings(args, "html_content", "output_filename"); err != nil {
		return HTMLRequest{}, err
	}
	req := defaultHTMLRequest()
	if err := decodeArgs(args, &req); err != nil {
		return HTMLRequest{}, err
	}
	req.Options = req.Options.withDefaults()
	return req, nil
}

// DecodeTextRequest validates and decodes generate_pdf_from_text arguments.
// A blank font or a zero font size falls back to the defaults.
func DecodeTextRequest(args map[string]any) (TextRequest, error) {
	if err := requireStrings(args, "text_content", "output_filename"); err != nil {
		return TextRequest{}, err
	}
	req := defaultTextRequest()
	if err := decodeArgs(args, &req); err != nil {
		return TextRequest{}, err
	}
	req.Options = req.Options.withDefaults()
	return req, nil
}

// DecodeMarkdownRequest validates and decodes generate_pdf_from_markdown
// arguments. Any options object is ignored.
func DecodeMarkdownRequest(args map[string]any) (MarkdownRequest, error) {
	if err := requireStrings(args, "markdown_content", "output_filename"); err != nil {
		return MarkdownRequest{}, err
	}
	var req MarkdownRequest
	if err := decodeArgs(args, &req); err != nil {
		return MarkdownRequest{}, err
	}
	return req, nil
}
