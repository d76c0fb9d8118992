// Package pdftools generates PDF files on behalf of MCP clients.
//
// # Tools
//
// Three tools are exposed, each writing one file and answering with its
// absolute path:
//
//   - generate_pdf_from_html: HTML printed by headless Chrome (go-rod)
//   - generate_pdf_from_text: plain text typeset with go-pdf/fpdf
//   - generate_pdf_from_markdown: a small Markdown subset converted to HTML,
//     then printed like the HTML tool
//
// # Quick Start
//
//	d, err := pdftools.NewDispatcher()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res := d.Dispatch(ctx, pdftools.ToolText, map[string]any{
//	    "text_content":    "Hello",
//	    "output_filename": "hello.pdf",
//	})
//	fmt.Println(res.Text)
//
// To serve the tools over MCP, wrap the dispatcher with NewServer and hand
// the result to mcp-go's stdio or streamable HTTP transport.
//
// # Output Confinement
//
// Every output path is resolved to an absolute path and must lie strictly
// below <home>/Downloads, <home>/Documents or <home>/Desktop. The check
// runs before any directory is created or file written. Files are written
// next to their destination and renamed into place once complete, so a
// failed call never leaves a truncated PDF at the requested path.
//
// # Browser Requirements
//
// HTML and Markdown rendering require Chrome/Chromium. The go-rod library
// downloads a managed Chromium on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package pdftools
