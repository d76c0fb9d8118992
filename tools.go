package pdftools

import (
	"github.com/mark3labs/mcp-go/mcp"
)

const outputDirDescription = "Output directory (optional, defaults to Downloads)"

// Tools returns the tool descriptors in declaration order.
// The list is rebuilt on each call; callers may modify it freely.
func Tools() []mcp.Tool {
	return []mcp.Tool{
		htmlTool(),
		textTool(),
		markdownTool(),
	}
}

// ToolNames returns the tool names in declaration order.
func ToolNames() []string {
	return []string{ToolHTML, ToolText, ToolMarkdown}
}

func htmlTool() mcp.Tool {
	side := func() map[string]any {
		return map[string]any{"type": "string", "default": DefaultHTMLMargin}
	}
	return mcp.NewTool(ToolHTML,
		mcp.WithDescription("Generate a PDF from HTML content using headless Chrome"),
		mcp.WithString("html_content",
			mcp.Required(),
			mcp.Description("HTML content to convert to PDF"),
		),
		mcp.WithString("output_filename",
			mcp.Required(),
			mcp.Description("Name of the output PDF file (without path)"),
		),
		mcp.WithString("output_dir",
			mcp.Description(outputDirDescription),
		),
		mcp.WithObject("options",
			mcp.Description("PDF generation options"),
			mcp.Properties(map[string]any{
				"format": map[string]any{
					"type":        "string",
					"default":     DefaultPageFormat,
					"description": "Paper format: Letter, Legal, Tabloid, Ledger, A0-A6",
				},
				"margin": map[string]any{
					"type":        "object",
					"description": "Page margins as CSS lengths (px, in, cm, mm)",
					"properties": map[string]any{
						"top":    side(),
						"right":  side(),
						"bottom": side(),
						"left":   side(),
					},
				},
			}),
		),
	)
}

func textTool() mcp.Tool {
	side := func() map[string]any {
		return map[string]any{"type": "number", "default": DefaultTextMargin}
	}
	return mcp.NewTool(ToolText,
		mcp.WithDescription("Generate a PDF from plain text"),
		mcp.WithString("text_content",
			mcp.Required(),
			mcp.Description("Text content to convert to PDF"),
		),
		mcp.WithString("output_filename",
			mcp.Required(),
			mcp.Description("Name of the output PDF file (without path)"),
		),
		mcp.WithString("output_dir",
			mcp.Description(outputDirDescription),
		),
		mcp.WithObject("options",
			mcp.Description("PDF formatting options"),
			mcp.Properties(map[string]any{
				"fontSize": map[string]any{"type": "number", "default": DefaultFontSize},
				"font": map[string]any{
					"type":        "string",
					"default":     DefaultFont,
					"description": "Standard PDF font name or path to a .ttf file",
				},
				"margins": map[string]any{
					"type":        "object",
					"description": "Page margins in points",
					"properties": map[string]any{
						"top":    side(),
						"left":   side(),
						"right":  side(),
						"bottom": side(),
					},
				},
			}),
		),
	)
}

func markdownTool() mcp.Tool {
	return mcp.NewTool(ToolMarkdown,
		mcp.WithDescription("Generate a PDF from Markdown content"),
		mcp.WithString("markdown_content",
			mcp.Required(),
			mcp.Description("Markdown content to convert to PDF"),
		),
		mcp.WithString("output_filename",
			mcp.Required(),
			mcp.Description("Name of the output PDF file (without path)"),
		),
		mcp.WithString("output_dir",
			mcp.Description(outputDirDescription),
		),
	)
}
