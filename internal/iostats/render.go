package iostats

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/zooarch/faunadb/pkg/fauna"
)

// columnTitles maps column names to report headings.
var columnTitles = map[string]string{
	"specie":                  "Species",
	"contesto":                "Context type",
	"metodologia_recupero":    "Recovery method",
	"tipologia_accumulo":      "Accumulation type",
	"stato_frammentazione":    "Fragmentation",
	"tracce_combustione":      "Burning traces",
	"stato_conservazione":     "Conservation state",
	"numero_minimo_individui": "Minimum number of individuals",
	"misura_1":                "Measurement 1",
	"misura_2":                "Measurement 2",
	"misura_3":                "Measurement 3",
	"misura_4":                "Measurement 4",
}

func title(col string) string {
	if t, ok := columnTitles[col]; ok {
		return t
	}
	return col
}

// RenderText renders the report as a plain-text document for the
// terminal.
func RenderText(rep *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Fauna statistics, %s\n",
		rep.GeneratedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Records: %s\n", humanize.Comma(rep.TotalRecords))
	fmt.Fprintf(&b,
		"Sites: %d  Areas: %d  Trenches: %d  Stratigraphic units: %d\n",
		rep.DistinctSites, rep.DistinctAreas,
		rep.DistinctTrenches, rep.DistinctUnits)
	b.WriteString("\n")
	b.WriteString(BurningProse(rep))
	if p := ConservationProse(rep); p != "" {
		b.WriteString(p)
	}
	b.WriteString("\n")

	for _, ft := range rep.Frequencies {
		if len(ft.Rows) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s\n", title(ft.Column))
		for _, row := range ft.Rows {
			fmt.Fprintf(&b, "  %-40s %8s  %6s%%\n",
				row.Value,
				humanize.Comma(row.Count),
				formatFloat(row.Percent, rep.Precision))
		}
	}

	b.WriteString("\nNumeric summaries\n")
	for _, ns := range rep.Numeric {
		if ns.Count == 0 {
			continue
		}
		fmt.Fprintf(&b,
			"  %-32s n=%-6d mean=%s min=%s max=%s sum=%s\n",
			title(ns.Column), ns.Count,
			formatFloat(ns.Mean, rep.Precision),
			formatFloat(ns.Min, rep.Precision),
			formatFloat(ns.Max, rep.Precision),
			formatFloat(ns.Sum, rep.Precision))
	}

	b.WriteString("\nPer-site breakdown\n")
	for _, sb := range rep.Sites {
		site := sb.Site
		if site == "" {
			site = "(no site)"
		}
		fmt.Fprintf(&b, "  %s: %s records\n",
			site, humanize.Comma(sb.Records))
		writeScope(&b, "    ", sb.Species, sb.Parts, sb.Measurements,
			rep.Precision)
		for _, ub := range sb.Units {
			fmt.Fprintf(&b, "    area %s, trench %s, US %s: %d\n",
				orDash(ub.Area), orDash(ub.Trench), orDash(ub.Unit),
				ub.Records)
			writeScope(&b, "      ", ub.Species, ub.Parts,
				ub.Measurements, rep.Precision)
		}
	}

	return b.String()
}

func writeScope(
	b *strings.Builder, indent string,
	species, parts []FreqRow, meas []NumericSummary, prec int,
) {
	if len(species) > 0 {
		fmt.Fprintf(b, "%sspecies: %s\n", indent, InlineFreq(species, prec))
	}
	if len(parts) > 0 {
		fmt.Fprintf(b, "%sparts: %s\n", indent, InlineFreq(parts, prec))
	}
	for _, ns := range meas {
		fmt.Fprintf(b, "%s%s: %s\n", indent, ns.Column,
			InlineNumeric(ns, prec))
	}
}

// InlineFreq formats frequency rows as one "value count (percent%)"
// line.
func InlineFreq(rows []FreqRow, prec int) string {
	items := make([]string, len(rows))
	for i, row := range rows {
		items[i] = fmt.Sprintf("%s %d (%s%%)", row.Value, row.Count,
			formatFloat(row.Percent, prec))
	}
	return strings.Join(items, "; ")
}

// InlineNumeric formats one numeric summary without its column name.
func InlineNumeric(ns NumericSummary, prec int) string {
	return fmt.Sprintf("n=%d mean=%s min=%s max=%s sum=%s", ns.Count,
		formatFloat(ns.Mean, prec), formatFloat(ns.Min, prec),
		formatFloat(ns.Max, prec), formatFloat(ns.Sum, prec))
}

// BurningProse describes the incidence of burning traces. The wording
// shifts at 50% and 20% of the assemblage.
func BurningProse(rep *Report) string {
	share := formatFloat(rep.BurningShare, rep.Precision)
	switch {
	case rep.TotalRecords == 0:
		return "No records available.\n"
	case rep.BurningShare > 50:
		return fmt.Sprintf(
			"Burning traces are present on most of the assemblage "+
				"(%s%% of records), suggesting systematic exposure to fire.\n",
			share)
	case rep.BurningShare >= 20:
		return fmt.Sprintf(
			"Burning traces appear on a substantial part of the "+
				"assemblage (%s%% of records).\n", share)
	default:
		return fmt.Sprintf(
			"Burning traces are rare (%s%% of records).\n", share)
	}
}

// ConservationProse describes the overall bone preservation from the
// conservation-state distribution (0 worst, 5 best). Returns "" when
// no record carries a numeric state.
func ConservationProse(rep *Report) string {
	var total, good, poor int64
	for _, ft := range rep.Frequencies {
		if ft.Column != fauna.ColConservation {
			continue
		}
		for _, row := range ft.Rows {
			state, err := strconv.Atoi(strings.TrimSpace(row.Value))
			if err != nil {
				continue
			}
			total += row.Count
			switch {
			case state >= 4:
				good += row.Count
			case state <= 1:
				poor += row.Count
			}
		}
	}
	if total == 0 {
		return ""
	}

	goodShare := float64(good) / float64(total) * 100
	poorShare := float64(poor) / float64(total) * 100
	switch {
	case goodShare >= 50:
		return fmt.Sprintf(
			"Bone surfaces are mostly well preserved (%s%% of assessed "+
				"records in states 4-5).\n",
			formatFloat(goodShare, rep.Precision))
	case poorShare >= 50:
		return fmt.Sprintf(
			"Bone surfaces are mostly poorly preserved (%s%% of assessed "+
				"records in states 0-1).\n",
			formatFloat(poorShare, rep.Precision))
	default:
		return "Bone preservation is mixed across the assemblage.\n"
	}
}

// RenderCSV writes the report as CSV sections: one header row per
// section, blank line between sections.
func RenderCSV(rep *Report, w io.Writer) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"section", "column", "value", "count", "percent"},
		{"totals", "", "records", strconv.FormatInt(rep.TotalRecords, 10), ""},
		{"totals", "", "sites", strconv.Itoa(rep.DistinctSites), ""},
		{"totals", "", "areas", strconv.Itoa(rep.DistinctAreas), ""},
		{"totals", "", "trenches", strconv.Itoa(rep.DistinctTrenches), ""},
		{"totals", "", "units", strconv.Itoa(rep.DistinctUnits), ""},
	}
	for _, ft := range rep.Frequencies {
		for _, row := range ft.Rows {
			rows = append(rows, []string{
				"frequency", ft.Column, row.Value,
				strconv.FormatInt(row.Count, 10),
				formatFloat(row.Percent, rep.Precision),
			})
		}
	}
	for _, ns := range rep.Numeric {
		if ns.Count == 0 {
			continue
		}
		rows = append(rows,
			[]string{"numeric", ns.Column, "count",
				strconv.FormatInt(ns.Count, 10), ""},
			[]string{"numeric", ns.Column, "mean",
				formatFloat(ns.Mean, rep.Precision), ""},
			[]string{"numeric", ns.Column, "min",
				formatFloat(ns.Min, rep.Precision), ""},
			[]string{"numeric", ns.Column, "max",
				formatFloat(ns.Max, rep.Precision), ""},
			[]string{"numeric", ns.Column, "sum",
				formatFloat(ns.Sum, rep.Precision), ""},
		)
	}
	for _, sb := range rep.Sites {
		rows = append(rows, []string{
			"site", sb.Site, "records",
			strconv.FormatInt(sb.Records, 10), "",
		})
		rows = append(rows, scopeRows("site", sb.Site,
			sb.Species, sb.Parts, sb.Measurements, rep.Precision)...)
		for _, ub := range sb.Units {
			loc := fmt.Sprintf("area=%s trench=%s us=%s",
				ub.Area, ub.Trench, ub.Unit)
			rows = append(rows, []string{
				"unit", sb.Site, loc,
				strconv.FormatInt(ub.Records, 10), "",
			})
			rows = append(rows, scopeRows("unit", sb.Site+" "+loc,
				ub.Species, ub.Parts, ub.Measurements, rep.Precision)...)
		}
	}

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return ExportError(err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return ExportError(err)
	}
	return nil
}

// scopeRows emits the scoped summaries of one site or unit group. The
// numeric rows carry the count in the count column and the mean in the
// percent column.
func scopeRows(
	section, scope string,
	species, parts []FreqRow, meas []NumericSummary, prec int,
) [][]string {
	var rows [][]string
	for _, row := range species {
		rows = append(rows, []string{
			section + "-species", scope, row.Value,
			strconv.FormatInt(row.Count, 10),
			formatFloat(row.Percent, prec),
		})
	}
	for _, row := range parts {
		rows = append(rows, []string{
			section + "-part", scope, row.Value,
			strconv.FormatInt(row.Count, 10),
			formatFloat(row.Percent, prec),
		})
	}
	for _, ns := range meas {
		rows = append(rows, []string{
			section + "-numeric", scope, ns.Column,
			strconv.FormatInt(ns.Count, 10),
			formatFloat(ns.Mean, prec),
		})
	}
	return rows
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
