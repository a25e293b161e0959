package ioexport

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/go-pdf/fpdf"

	"github.com/zooarch/faunadb/internal/iostats"
)

// ReportPDF writes the statistics report as an A4 PDF.
func ReportPDF(rep *iostats.Report, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr("Statistiche dei reperti faunistici"),
		"", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, tr(rep.GeneratedAt.Format("02/01/2006 15:04")),
		"", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, lineHeight, tr(fmt.Sprintf(
		"Schede: %s. Siti: %d, aree: %d, saggi: %d, US: %d.",
		humanize.Comma(rep.TotalRecords), rep.DistinctSites,
		rep.DistinctAreas, rep.DistinctTrenches, rep.DistinctUnits)),
		"", "L", false)
	pdf.MultiCell(0, lineHeight, tr(iostats.BurningProse(rep)), "", "L", false)
	if p := iostats.ConservationProse(rep); p != "" {
		pdf.MultiCell(0, lineHeight, tr(p), "", "L", false)
	}
	pdf.Ln(3)

	for _, ft := range rep.Frequencies {
		if len(ft.Rows) == 0 {
			continue
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 8, tr(ft.Column), "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, row := range ft.Rows {
			pdf.CellFormat(110, lineHeight, tr(row.Value),
				"", 0, "L", false, 0, "")
			pdf.CellFormat(30, lineHeight, humanize.Comma(row.Count),
				"", 0, "R", false, 0, "")
			pdf.CellFormat(30, lineHeight,
				fmt.Sprintf("%.*f%%", rep.Precision, row.Percent),
				"", 1, "R", false, 0, "")
		}
		pdf.Ln(2)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, tr("Riepiloghi numerici"), "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, ns := range rep.Numeric {
		if ns.Count == 0 {
			continue
		}
		pdf.CellFormat(0, lineHeight, tr(fmt.Sprintf(
			"%s: n=%d media=%.*f min=%.*f max=%.*f somma=%.*f",
			ns.Column, ns.Count,
			rep.Precision, ns.Mean, rep.Precision, ns.Min,
			rep.Precision, ns.Max, rep.Precision, ns.Sum)),
			"", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, tr("Ripartizione per sito"), "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, sb := range rep.Sites {
		site := sb.Site
		if site == "" {
			site = "(senza sito)"
		}
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(0, lineHeight, tr(fmt.Sprintf(
			"%s: %s schede", site, humanize.Comma(sb.Records))),
			"", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		writeScopePDF(pdf, tr, "  ", rep.Precision,
			sb.Species, sb.Parts, sb.Measurements)
		for _, ub := range sb.Units {
			pdf.CellFormat(0, lineHeight, tr(fmt.Sprintf(
				"    area %s, saggio %s, US %s: %d",
				ub.Area, ub.Trench, ub.Unit, ub.Records)),
				"", 1, "L", false, 0, "")
			writeScopePDF(pdf, tr, "      ", rep.Precision,
				ub.Species, ub.Parts, ub.Measurements)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return RenderError(path, err)
	}
	return nil
}

// writeScopePDF prints the scoped species, part and measurement
// summaries of one site or unit group.
func writeScopePDF(
	pdf *fpdf.Fpdf, tr func(string) string, indent string, prec int,
	species, parts []iostats.FreqRow, meas []iostats.NumericSummary,
) {
	if len(species) > 0 {
		pdf.MultiCell(0, lineHeight, tr(indent+"specie: "+
			iostats.InlineFreq(species, prec)), "", "L", false)
	}
	if len(parts) > 0 {
		pdf.MultiCell(0, lineHeight, tr(indent+"parti: "+
			iostats.InlineFreq(parts, prec)), "", "L", false)
	}
	for _, ns := range meas {
		pdf.MultiCell(0, lineHeight, tr(fmt.Sprintf("%s%s: %s",
			indent, ns.Column, iostats.InlineNumeric(ns, prec))),
			"", "L", false)
	}
}
