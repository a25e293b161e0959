package ioexport

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zooarch/faunadb/pkg/fauna"
)

// WriteRecord exports one record into dir. It renders the PDF sheet
// unless textOnly is set; when the PDF render fails the plain-text
// sheet is written instead, so an export always produces a file.
func WriteRecord(rec fauna.Record, dir string, textOnly bool) (string, error) {
	base := filepath.Join(dir, RecordFileName(rec))

	if !textOnly {
		path := base + ".pdf"
		err := RecordPDF(rec, path)
		if err == nil {
			return path, nil
		}
		slog.Warn("PDF export failed, falling back to text",
			"path", path, "error", err)
	}

	path := base + ".txt"
	if err := os.WriteFile(path, []byte(RecordText(rec)), 0644); err != nil {
		return "", WriteError(path, err)
	}
	return path, nil
}

// RecordText renders the observation sheet as plain text with the same
// sections as the PDF.
func RecordText(rec fauna.Record) string {
	var b strings.Builder

	b.WriteString("SCHEDA FAUNISTICA (FR)\n")
	fmt.Fprintf(&b, "%s, area %s, US %s\n\n",
		rec.Str(fauna.ColSite), rec.Str(fauna.ColArea),
		rec.Str(fauna.ColUnit))

	for _, sec := range sheetSections {
		fmt.Fprintf(&b, "== %s ==\n", sec.title)
		for _, f := range sec.fields {
			fmt.Fprintf(&b, "%-34s %s\n", f.label+":", rec.Str(f.column))
		}
		b.WriteString("\n")
	}

	if pairs := rec.SpeciesParts(); len(pairs) > 0 {
		b.WriteString("== Specie e parti scheletriche ==\n")
		for _, p := range pairs {
			fmt.Fprintf(&b, "%-34s %s\n", p.Species, p.Part)
		}
		b.WriteString("\n")
	}

	if mm := rec.Measurements(); len(mm) > 0 {
		b.WriteString("== Misurazioni ossa ==\n")
		for _, m := range mm {
			fmt.Fprintf(&b, "%s (%s): %s / %s / %s / %s\n",
				m.Element, m.Species, m.Dim1, m.Dim2, m.Dim3, m.Dim4)
		}
		b.WriteString("\n")
	}

	wrote := false
	for _, f := range narrativeFields {
		val := rec.Str(f.column)
		if val == "" {
			continue
		}
		if !wrote {
			b.WriteString("== Dati contestuali ==\n")
			wrote = true
		}
		fmt.Fprintf(&b, "%s:\n%s\n\n", f.label, val)
	}

	fmt.Fprintf(&b, "Generato il %s\n",
		time.Now().Format("02/01/2006 15:04"))
	return b.String()
}
