package ioexport

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/zooarch/faunadb/pkg/fauna"
)

const (
	labelWidth = 60.0
	valueWidth = 120.0
	lineHeight = 6.0
)

// RecordPDF writes the observation sheet of one record as an A4 PDF.
func RecordPDF(rec fauna.Record, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr("Scheda faunistica (FR)"),
		"", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s, area %s, US %s",
		rec.Str(fauna.ColSite), rec.Str(fauna.ColArea),
		rec.Str(fauna.ColUnit))),
		"", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, sec := range sheetSections {
		writeSection(pdf, tr, sec, rec)
	}
	writeSpeciesParts(pdf, tr, rec)
	writeMeasurements(pdf, tr, rec)
	writeNarratives(pdf, tr, rec)
	writeFooter(pdf, tr)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return RenderError(path, err)
	}
	return nil
}

func writeSection(pdf *fpdf.Fpdf, tr func(string) string, sec section, rec fauna.Record) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, tr(sec.title), "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	for _, f := range sec.fields {
		val := rec.Str(f.column)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(labelWidth, lineHeight, tr(f.label),
			"", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(valueWidth, lineHeight, tr(val), "", "L", false)
	}
	pdf.Ln(3)
}

// writeSpeciesParts prints the repeating species/skeletal-part list as
// its own table inside the archaeozoological section.
func writeSpeciesParts(pdf *fpdf.Fpdf, tr func(string) string, rec fauna.Record) {
	pairs := rec.SpeciesParts()
	if len(pairs) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, tr("Specie e parti scheletriche"),
		"B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(90, lineHeight, tr("Specie"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(90, lineHeight, tr("Parte scheletrica"),
		"1", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, p := range pairs {
		pdf.CellFormat(90, lineHeight, tr(p.Species), "1", 0, "L", false, 0, "")
		pdf.CellFormat(90, lineHeight, tr(p.Part), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
}

func writeMeasurements(pdf *fpdf.Fpdf, tr func(string) string, rec fauna.Record) {
	mm := rec.Measurements()
	if len(mm) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, tr("Misurazioni ossa"), "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(45, lineHeight, tr("Elemento"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(55, lineHeight, tr("Specie"), "1", 0, "L", false, 0, "")
	for i := 1; i <= 4; i++ {
		pdf.CellFormat(20, lineHeight, tr(fmt.Sprintf("Mis. %d", i)),
			"1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for _, m := range mm {
		pdf.CellFormat(45, lineHeight, tr(m.Element), "1", 0, "L", false, 0, "")
		pdf.CellFormat(55, lineHeight, tr(m.Species), "1", 0, "L", false, 0, "")
		for _, d := range []string{m.Dim1, m.Dim2, m.Dim3, m.Dim4} {
			pdf.CellFormat(20, lineHeight, tr(d), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(3)
}

func writeNarratives(pdf *fpdf.Fpdf, tr func(string) string, rec fauna.Record) {
	wrote := false
	for _, f := range narrativeFields {
		val := rec.Str(f.column)
		if val == "" {
			continue
		}
		if !wrote {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(0, 8, tr("Dati contestuali"),
				"B", 1, "L", false, 0, "")
			wrote = true
		}
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(0, lineHeight, tr(f.label), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, lineHeight, tr(val), "", "L", false)
		pdf.Ln(2)
	}
}

func writeFooter(pdf *fpdf.Fpdf, tr func(string) string) {
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5,
		tr(fmt.Sprintf("Generato il %s",
			time.Now().Format("02/01/2006 15:04"))),
		"", 1, "R", false, 0, "")
}
