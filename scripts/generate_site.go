// Command generate_site renders README.md plus the generated key reference
// into a single-page site. Run from the repository root:
//
//	go run scripts/generate_site.go site
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/hjens/json-explorer/internal/ui"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <out-dir>\n", os.Args[0])
		os.Exit(1)
	}

	outDir := os.Args[1]
	indexPath := filepath.Join(outDir, "index.html")

	readme, err := os.ReadFile("README.md")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading README.md: %v\n", err)
		os.Exit(1)
	}

	source := append(readme, []byte(keyReferenceMarkdown())...)

	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse(source)

	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	body := markdown.Render(doc, renderer)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", outDir, err)
		os.Exit(1)
	}

	f, err := os.Create(indexPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating index.html: %v\n", err)
		os.Exit(1)
	}

	writeHeader(f)
	if _, err := f.Write(body); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error writing README content: %v\n", err)
		os.Exit(1)
	}
	writeFooter(f)
	f.Close()

	fmt.Fprintf(os.Stderr, "Generated %s\n", indexPath)
}

// keyReferenceMarkdown builds the key table from the same data the in-app
// help overlay shows.
func keyReferenceMarkdown() string {
	var sb strings.Builder
	sb.WriteString("\n## Key reference\n\n")
	sb.WriteString("| Keys | Action |\n")
	sb.WriteString("|------|--------|\n")
	for _, e := range ui.KeyReference() {
		fmt.Fprintf(&sb, "| `%s` | %s |\n", e[0], e[1])
	}
	return sb.String()
}

func writeHeader(w io.Writer) {
	fmt.Fprint(w, `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>jx - terminal JSON explorer</title>
  <style>
    body { font-family: system-ui, -apple-system, sans-serif; max-width: 900px; margin: 40px auto; padding: 0 20px; line-height: 1.6; color: #333; }
    h1 { color: #2563eb; border-bottom: 2px solid #2563eb; padding-bottom: 10px; }
    h2 { color: #1e40af; margin-top: 30px; }
    h3 { color: #1e3a8a; margin-top: 20px; }
    code { background: #f1f5f9; padding: 2px 6px; border-radius: 3px; font-family: Monaco, Menlo, monospace; font-size: 0.9em; }
    pre { background: #1e293b; color: #e2e8f0; padding: 16px; border-radius: 6px; overflow-x: auto; }
    pre code { background: none; color: inherit; padding: 0; }
    table { border-collapse: collapse; width: 100%; margin: 16px 0; }
    th, td { border: 1px solid #e2e8f0; padding: 6px 10px; text-align: left; }
    th { background: #eff6ff; color: #1e40af; }
  </style>
</head>
<body>
`)
}

func writeFooter(w io.Writer) {
	fmt.Fprint(w, `</body>
</html>
`)
}
