package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/nt/internal/tree"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/notes-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("notes-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders the forest as a Netscape-style nested outline.
// Every item becomes an H3 heading followed by a (possibly empty) DL of its
// children, so the importer can rebuild the same hierarchy and order.
func ExportHTML(forest []*tree.Node) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Notes</TITLE>\n")
	b.WriteString("<H1>Notes</H1>\n")
	b.WriteString("<DL><p>\n")

	writeNodes(&b, forest, 1)

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

// writeNodes recursively writes nodes at one level.
func writeNodes(b *strings.Builder, nodes []*tree.Node, indent int) {
	prefix := strings.Repeat("    ", indent)

	for _, n := range nodes {
		if n.Icon != "" {
			fmt.Fprintf(b, "%s<DT><H3 DATA-ICON=\"%s\">%s</H3>\n", prefix, html.EscapeString(n.Icon), html.EscapeString(n.Title))
		} else {
			fmt.Fprintf(b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(n.Title))
		}
		fmt.Fprintf(b, "%s<DL><p>\n", prefix)
		writeNodes(b, n.Children, indent+1)
		fmt.Fprintf(b, "%s</DL><p>\n", prefix)
	}
}
