// Package iostats computes the statistics report over the fauna
// records: frequency tables, numeric summaries and a per-site
// breakdown. The whole report comes from a single pass over the record
// list so one snapshot is described consistently.
package iostats

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/sync/errgroup"

	"github.com/zooarch/faunadb/pkg/config"
	"github.com/zooarch/faunadb/pkg/fauna"
)

// FreqRow is one value of a frequency table with its share of the
// total.
type FreqRow struct {
	Value   string
	Count   int64
	Percent float64
}

// FreqTable is the value distribution of one categorical column.
// Rows are ordered by descending count, then value.
type FreqTable struct {
	Column string
	Rows   []FreqRow
}

// NumericSummary describes one numeric column or measurement
// dimension. Only records that carry a value are counted.
type NumericSummary struct {
	Column string
	Count  int64
	Mean   float64
	Min    float64
	Max    float64
	Sum    float64
}

// UnitBreakdown aggregates one (area, trench, unit) group inside a
// site: record count plus the species, skeletal-part and measurement
// summaries restricted to that group.
type UnitBreakdown struct {
	Area    string
	Trench  string
	Unit    string
	Records int64

	Species      []FreqRow
	Parts        []FreqRow
	Measurements []NumericSummary
}

// SiteBreakdown is the per-site portion of the report, with the same
// scoped summaries as UnitBreakdown.
type SiteBreakdown struct {
	Site    string
	Records int64

	Species      []FreqRow
	Parts        []FreqRow
	Measurements []NumericSummary

	Units []UnitBreakdown
}

// Report is a complete statistics snapshot.
type Report struct {
	GeneratedAt  time.Time
	Precision    int
	TotalRecords int64

	DistinctSites    int
	DistinctAreas    int
	DistinctTrenches int
	DistinctUnits    int

	// BurningShare is the percentage of records with burning traces
	// recorded as present.
	BurningShare float64

	Frequencies []FreqTable
	Numeric     []NumericSummary
	Sites       []SiteBreakdown
}

// FrequencyColumns are the categorical columns the report tabulates,
// in presentation order.
var FrequencyColumns = []string{
	fauna.ColSpecies,
	fauna.ColContext,
	fauna.ColRecovery,
	fauna.ColAccumulation,
	fauna.ColFragmentation,
	fauna.ColBurning,
	fauna.ColConservation,
}

// measurement dimension labels for numeric summaries
var dimLabels = [4]string{"misura_1", "misura_2", "misura_3", "misura_4"}

// Generate runs the single collection pass and assembles the report.
// With showProgress a progress bar tracks the pass on stderr.
func Generate(
	ctx context.Context,
	st fauna.Store,
	cfg config.StatsConfig,
	showProgress bool,
) (*Report, error) {
	recs, err := st.ListRecords(ctx, nil)
	if err != nil {
		return nil, GenerateError(err)
	}

	prec := cfg.Precision
	if prec <= 0 {
		prec = 2
	}

	var bar *pb.ProgressBar
	if showProgress {
		bar = pb.Full.Start(len(recs))
		bar.Set("prefix", "Collecting records ")
		bar.Set(pb.CleanOnFinish, true)
	}

	freqs := make(map[string]map[string]int64, len(FrequencyColumns))
	for _, col := range FrequencyColumns {
		freqs[col] = make(map[string]int64)
	}

	nums := make(map[string]*numAcc)
	addNum := func(col string, v float64) {
		acc, ok := nums[col]
		if !ok {
			acc = &numAcc{}
			nums[col] = acc
		}
		acc.add(v)
	}

	sites := map[string]struct{}{}
	areas := map[string]struct{}{}
	trenches := map[string]struct{}{}
	units := map[string]struct{}{}
	bySite := map[string][]fauna.Record{}

	var burning int64

	for _, rec := range recs {
		for _, col := range FrequencyColumns {
			if v := strings.TrimSpace(rec.Str(col)); v != "" {
				freqs[col][v]++
			}
		}

		if v := strings.TrimSpace(rec.Str(fauna.ColMNI)); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
				addNum(fauna.ColMNI, f)
			}
		}
		// Conservation state 0 is a valid assessment and enters the
		// mean.
		if v := strings.TrimSpace(rec.Str(fauna.ColConservation)); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				addNum(fauna.ColConservation, f)
			}
		}
		for _, m := range rec.Measurements() {
			for i, d := range m.Dims() {
				if d > 0 {
					addNum(dimLabels[i], d)
				}
			}
		}

		if burningPresent(rec.Str(fauna.ColBurning)) {
			burning++
		}

		site := rec.Str(fauna.ColSite)
		if site != "" {
			sites[site] = struct{}{}
		}
		if v := rec.Str(fauna.ColArea); v != "" {
			areas[site+"\x00"+v] = struct{}{}
		}
		if v := rec.Str(fauna.ColTrench); v != "" {
			trenches[site+"\x00"+v] = struct{}{}
		}
		if v := rec.Str(fauna.ColUnit); v != "" {
			units[site+"\x00"+v] = struct{}{}
		}
		bySite[site] = append(bySite[site], rec)

		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		bar.Finish()
	}

	rep := &Report{
		GeneratedAt:      time.Now(),
		Precision:        prec,
		TotalRecords:     int64(len(recs)),
		DistinctSites:    len(sites),
		DistinctAreas:    len(areas),
		DistinctTrenches: len(trenches),
		DistinctUnits:    len(units),
	}

	total := float64(rep.TotalRecords)
	if total > 0 {
		rep.BurningShare = round(float64(burning)/total*100, prec)
	}

	for _, col := range FrequencyColumns {
		rep.Frequencies = append(rep.Frequencies,
			freqTable(col, freqs[col], total, prec))
	}

	numCols := append(
		[]string{fauna.ColMNI, fauna.ColConservation}, dimLabels[:]...)
	for _, col := range numCols {
		acc, ok := nums[col]
		if !ok {
			rep.Numeric = append(rep.Numeric, NumericSummary{Column: col})
			continue
		}
		rep.Numeric = append(rep.Numeric, acc.summary(col, prec))
	}

	breakdown, err := siteBreakdowns(ctx, bySite, prec)
	if err != nil {
		return nil, GenerateError(err)
	}
	rep.Sites = breakdown

	return rep, nil
}

// siteBreakdowns aggregates each site concurrently. Sites are
// independent, so one goroutine per site is safe.
func siteBreakdowns(
	ctx context.Context,
	bySite map[string][]fauna.Record,
	prec int,
) ([]SiteBreakdown, error) {
	names := make([]string, 0, len(bySite))
	for site := range bySite {
		names = append(names, site)
	}
	sort.Strings(names)

	res := make([]SiteBreakdown, len(names))
	g, ctx := errgroup.WithContext(ctx)
	for i, site := range names {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			res[i] = siteBreakdown(site, bySite[site], prec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func siteBreakdown(site string, recs []fauna.Record, prec int) SiteBreakdown {
	type key struct{ area, trench, unit string }
	groups := map[key][]fauna.Record{}
	for _, rec := range recs {
		k := key{
			area:   rec.Str(fauna.ColArea),
			trench: rec.Str(fauna.ColTrench),
			unit:   rec.Str(fauna.ColUnit),
		}
		groups[k] = append(groups[k], rec)
	}

	keys := make([]key, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.area != b.area {
			return a.area < b.area
		}
		if a.trench != b.trench {
			return a.trench < b.trench
		}
		return a.unit < b.unit
	})

	sb := SiteBreakdown{Site: site, Records: int64(len(recs))}
	sb.Species, sb.Parts, sb.Measurements = scopeStats(recs, prec)
	for _, k := range keys {
		grp := groups[k]
		ub := UnitBreakdown{
			Area:    k.area,
			Trench:  k.trench,
			Unit:    k.unit,
			Records: int64(len(grp)),
		}
		ub.Species, ub.Parts, ub.Measurements = scopeStats(grp, prec)
		sb.Units = append(sb.Units, ub)
	}
	return sb
}

// scopeStats repeats the species, skeletal-part and measurement
// summaries over one record subset. Percentages are relative to the
// subset size.
func scopeStats(
	recs []fauna.Record, prec int,
) (species, parts []FreqRow, meas []NumericSummary) {
	spCounts := map[string]int64{}
	partCounts := map[string]int64{}
	accs := map[string]*numAcc{}

	for _, rec := range recs {
		for _, sp := range rec.SpeciesParts() {
			if v := strings.TrimSpace(sp.Species); v != "" {
				spCounts[v]++
			}
			if v := strings.TrimSpace(sp.Part); v != "" {
				partCounts[v]++
			}
		}
		for _, m := range rec.Measurements() {
			for i, d := range m.Dims() {
				if d > 0 {
					acc, ok := accs[dimLabels[i]]
					if !ok {
						acc = &numAcc{}
						accs[dimLabels[i]] = acc
					}
					acc.add(d)
				}
			}
		}
	}

	total := float64(len(recs))
	species = freqRows(spCounts, total, prec)
	parts = freqRows(partCounts, total, prec)
	for _, col := range dimLabels {
		if acc, ok := accs[col]; ok {
			meas = append(meas, acc.summary(col, prec))
		}
	}
	return species, parts, meas
}

// numAcc accumulates count, sum and range of one numeric column.
type numAcc struct {
	count    int64
	sum      float64
	min, max float64
}

func (a *numAcc) add(v float64) {
	if a.count == 0 || v < a.min {
		a.min = v
	}
	if a.count == 0 || v > a.max {
		a.max = v
	}
	a.count++
	a.sum += v
}

func (a *numAcc) summary(col string, prec int) NumericSummary {
	return NumericSummary{
		Column: col,
		Count:  a.count,
		Mean:   round(a.sum/float64(a.count), prec),
		Min:    a.min,
		Max:    a.max,
		Sum:    round(a.sum, prec),
	}
}

func freqTable(
	col string,
	counts map[string]int64,
	total float64,
	prec int,
) FreqTable {
	return FreqTable{Column: col, Rows: freqRows(counts, total, prec)}
}

func freqRows(counts map[string]int64, total float64, prec int) []FreqRow {
	rows := make([]FreqRow, 0, len(counts))
	for val, n := range counts {
		row := FreqRow{Value: val, Count: n}
		if total > 0 {
			row.Percent = round(float64(n)/total*100, prec)
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Value < rows[j].Value
	})
	if len(rows) == 0 {
		return nil
	}
	return rows
}

// burningPresent reports whether the burning column records traces.
func burningPresent(v string) bool {
	v = strings.ToUpper(strings.TrimSpace(v))
	return v != "" && v != "ASSENTI" && v != "NO"
}

func round(v float64, prec int) float64 {
	f, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', prec, 64), 64)
	return f
}
