// Package pipeline turns Markdown into the HTML document handed to the
// browser renderer.
//
// Only a small, fixed subset of Markdown is recognized: ATX headings of
// level 1 to 3, **bold**, *italic*, `inline code`, and hard line breaks.
// Each construct is one regexp pass over the whole text, applied in a fixed
// order; anything else passes through untouched. Content is not escaped,
// so raw HTML in the input reaches the rendered page as-is.
package pipeline
