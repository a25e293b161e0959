package iostats

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zooarch/faunadb/pkg/config"
	"github.com/zooarch/faunadb/pkg/fauna"
)

// memStore is a fauna.Store stub backed by a fixed record slice. Only
// ListRecords matters to the generator.
type memStore struct {
	fauna.Store
	recs []fauna.Record
	err  error
}

func (m *memStore) ListRecords(
	_ context.Context, _ fauna.Filters,
) ([]fauna.Record, error) {
	return m.recs, m.err
}

func rec(site, area, trench, unit, species, burning string, mni float64) fauna.Record {
	return fauna.Record{
		fauna.ColSite:    site,
		fauna.ColArea:    area,
		fauna.ColTrench:  trench,
		fauna.ColUnit:    unit,
		fauna.ColSpecies: species,
		fauna.ColBurning: burning,
		fauna.ColMNI:     mni,
	}
}

func testReport(t *testing.T) *Report {
	t.Helper()
	st := &memStore{recs: []fauna.Record{
		rec("Pompei", "1", "A", "100", "Sus scrofa", "DIFFUSE", 2),
		rec("Pompei", "1", "A", "100", "Sus scrofa", "ASSENTI", 3),
		rec("Pompei", "2", "B", "200", "Bos taurus", "SCARSE", 5),
		rec("Ostia", "1", "C", "10", "Ovis aries", "", 0),
	}}
	rep, err := Generate(context.Background(), st,
		config.StatsConfig{Precision: 2}, false)
	require.NoError(t, err)
	return rep
}

// TestGenerate_Totals verifies counts of records and distinct
// locations.
func TestGenerate_Totals(t *testing.T) {
	rep := testReport(t)

	assert.Equal(t, int64(4), rep.TotalRecords)
	assert.Equal(t, 2, rep.DistinctSites)
	assert.Equal(t, 3, rep.DistinctAreas, "areas count per site")
	assert.Equal(t, 3, rep.DistinctTrenches)
	assert.Equal(t, 3, rep.DistinctUnits)
}

// TestGenerate_Frequencies verifies the species table ordering and
// percentages.
func TestGenerate_Frequencies(t *testing.T) {
	rep := testReport(t)

	var species *FreqTable
	for i := range rep.Frequencies {
		if rep.Frequencies[i].Column == fauna.ColSpecies {
			species = &rep.Frequencies[i]
		}
	}
	require.NotNil(t, species)
	require.Len(t, species.Rows, 3)
	assert.Equal(t, "Sus scrofa", species.Rows[0].Value)
	assert.Equal(t, int64(2), species.Rows[0].Count)
	assert.Equal(t, 50.0, species.Rows[0].Percent)
	assert.Equal(t, 25.0, species.Rows[1].Percent)
}

// TestGenerate_Numeric verifies the minimum-individuals summary; zero
// values do not enter the mean.
func TestGenerate_Numeric(t *testing.T) {
	rep := testReport(t)

	var mni *NumericSummary
	for i := range rep.Numeric {
		if rep.Numeric[i].Column == fauna.ColMNI {
			mni = &rep.Numeric[i]
		}
	}
	require.NotNil(t, mni)
	assert.Equal(t, int64(3), mni.Count)
	assert.Equal(t, 3.33, mni.Mean)
	assert.Equal(t, 2.0, mni.Min)
	assert.Equal(t, 5.0, mni.Max)
	assert.Equal(t, 10.0, mni.Sum)
}

// TestGenerate_Measurements verifies measurement dimensions feed the
// numeric summaries.
func TestGenerate_Measurements(t *testing.T) {
	r := rec("Pompei", "1", "A", "100", "Bos taurus", "", 1)
	r[fauna.ColMeasurements] = `[["Astragalo","Bos taurus","60.5","","33.1",""]]`
	st := &memStore{recs: []fauna.Record{r}}

	rep, err := Generate(context.Background(), st,
		config.StatsConfig{Precision: 2}, false)
	require.NoError(t, err)

	byCol := map[string]NumericSummary{}
	for _, ns := range rep.Numeric {
		byCol[ns.Column] = ns
	}
	assert.Equal(t, int64(1), byCol["misura_1"].Count)
	assert.Equal(t, 60.5, byCol["misura_1"].Mean)
	assert.Equal(t, int64(0), byCol["misura_2"].Count,
		"empty dimensions are not counted")
	assert.Equal(t, 33.1, byCol["misura_3"].Max)
}

// TestGenerate_SiteBreakdown verifies the nested per-site grouping.
func TestGenerate_SiteBreakdown(t *testing.T) {
	rep := testReport(t)

	require.Len(t, rep.Sites, 2)
	assert.Equal(t, "Ostia", rep.Sites[0].Site)
	assert.Equal(t, "Pompei", rep.Sites[1].Site)

	pompei := rep.Sites[1]
	assert.Equal(t, int64(3), pompei.Records)
	require.Len(t, pompei.Units, 2)

	ub := pompei.Units[0]
	assert.Equal(t, "1", ub.Area)
	assert.Equal(t, "A", ub.Trench)
	assert.Equal(t, "100", ub.Unit)
	assert.Equal(t, int64(2), ub.Records)
}

// TestGenerate_ConservationSummary verifies the conservation state
// feeds a numeric summary: states 2, 4, 4 mean 3.33.
func TestGenerate_ConservationSummary(t *testing.T) {
	mk := func(state string) fauna.Record {
		r := rec("Pompei", "1", "A", "100", "Sus scrofa", "", 1)
		r[fauna.ColConservation] = state
		return r
	}
	st := &memStore{recs: []fauna.Record{mk("2"), mk("4"), mk("4")}}
	rep, err := Generate(context.Background(), st,
		config.StatsConfig{Precision: 2}, false)
	require.NoError(t, err)

	var cons *NumericSummary
	for i := range rep.Numeric {
		if rep.Numeric[i].Column == fauna.ColConservation {
			cons = &rep.Numeric[i]
		}
	}
	require.NotNil(t, cons)
	assert.Equal(t, int64(3), cons.Count)
	assert.Equal(t, 3.33, cons.Mean)
	assert.Equal(t, 2.0, cons.Min)
	assert.Equal(t, 4.0, cons.Max)
	assert.Equal(t, 10.0, cons.Sum)

	out := RenderText(rep)
	assert.Contains(t, out, "Conservation state")
	assert.Contains(t, out, "mean=3.33")
}

// TestGenerate_ConservationZeroState verifies state 0 enters the mean,
// unlike a zero minimum-individuals value.
func TestGenerate_ConservationZeroState(t *testing.T) {
	mk := func(state string) fauna.Record {
		r := rec("Pompei", "1", "A", "100", "Sus scrofa", "", 0)
		r[fauna.ColConservation] = state
		return r
	}
	st := &memStore{recs: []fauna.Record{mk("0"), mk("4")}}
	rep, err := Generate(context.Background(), st,
		config.StatsConfig{Precision: 2}, false)
	require.NoError(t, err)

	byCol := map[string]NumericSummary{}
	for _, ns := range rep.Numeric {
		byCol[ns.Column] = ns
	}
	cons := byCol[fauna.ColConservation]
	assert.Equal(t, int64(2), cons.Count)
	assert.Equal(t, 2.0, cons.Mean)
	assert.Equal(t, 0.0, cons.Min)
	assert.Equal(t, int64(0), byCol[fauna.ColMNI].Count,
		"zero individuals stays out of the MNI summary")
}

// TestGenerate_ScopeSummaries verifies the species, part and
// measurement summaries repeat per site and per unit group.
func TestGenerate_ScopeSummaries(t *testing.T) {
	r1 := rec("Pompei", "1", "A", "100", "Sus scrofa", "", 2)
	r1[fauna.ColSpeciesParts] = `[["Sus scrofa","Mandibola"]]`
	r1[fauna.ColMeasurements] = `[["Femore","Sus scrofa","41.2","","",""]]`
	r2 := rec("Pompei", "1", "A", "100", "Sus scrofa", "", 1)
	r3 := rec("Pompei", "2", "B", "200", "Bos taurus", "", 1)
	st := &memStore{recs: []fauna.Record{r1, r2, r3}}

	rep, err := Generate(context.Background(), st,
		config.StatsConfig{Precision: 2}, false)
	require.NoError(t, err)
	require.Len(t, rep.Sites, 1)

	pompei := rep.Sites[0]
	require.Len(t, pompei.Species, 2)
	assert.Equal(t, FreqRow{Value: "Sus scrofa", Count: 2, Percent: 66.67},
		pompei.Species[0])
	require.Len(t, pompei.Parts, 1)
	assert.Equal(t, FreqRow{Value: "Mandibola", Count: 1, Percent: 33.33},
		pompei.Parts[0])
	require.Len(t, pompei.Measurements, 1)
	assert.Equal(t, NumericSummary{
		Column: "misura_1", Count: 1,
		Mean: 41.2, Min: 41.2, Max: 41.2, Sum: 41.2,
	}, pompei.Measurements[0])

	require.Len(t, pompei.Units, 2)
	us100 := pompei.Units[0]
	require.Len(t, us100.Species, 1)
	assert.Equal(t, FreqRow{Value: "Sus scrofa", Count: 2, Percent: 100},
		us100.Species[0])
	require.Len(t, us100.Measurements, 1)
	assert.Equal(t, int64(1), us100.Measurements[0].Count)

	us200 := pompei.Units[1]
	require.Len(t, us200.Species, 1)
	assert.Equal(t, "Bos taurus", us200.Species[0].Value)
	assert.Empty(t, us200.Measurements)
}

// TestBurningProse verifies the wording thresholds.
func TestBurningProse(t *testing.T) {
	rep := testReport(t)
	// 2 of 4 records carry burning traces
	assert.Equal(t, 50.0, rep.BurningShare)
	assert.Contains(t, BurningProse(rep), "substantial part")

	rep.BurningShare = 72.5
	assert.Contains(t, BurningProse(rep), "most of the assemblage")

	rep.BurningShare = 5
	assert.Contains(t, BurningProse(rep), "rare")

	empty := &Report{Precision: 2}
	assert.Contains(t, BurningProse(empty), "No records")
}

// TestConservationProse verifies the preservation bands over the state
// distribution; non-numeric values are ignored.
func TestConservationProse(t *testing.T) {
	rep := &Report{Precision: 2, Frequencies: []FreqTable{{
		Column: fauna.ColConservation,
		Rows: []FreqRow{
			{Value: "5", Count: 3},
			{Value: "4", Count: 2},
			{Value: "1", Count: 1},
			{Value: "buono", Count: 7},
		},
	}}}
	out := ConservationProse(rep)
	assert.Contains(t, out, "mostly well preserved")
	assert.Contains(t, out, "83.33%")

	rep.Frequencies[0].Rows = []FreqRow{
		{Value: "0", Count: 4},
		{Value: "1", Count: 2},
		{Value: "3", Count: 2},
	}
	assert.Contains(t, ConservationProse(rep), "mostly poorly preserved")

	rep.Frequencies[0].Rows = []FreqRow{
		{Value: "0", Count: 1},
		{Value: "3", Count: 2},
		{Value: "5", Count: 1},
	}
	assert.Contains(t, ConservationProse(rep), "mixed")

	assert.Equal(t, "", ConservationProse(&Report{Precision: 2}),
		"no assessed records yields no prose")
}

// TestGenerate_Empty verifies an empty database yields a usable empty
// report.
func TestGenerate_Empty(t *testing.T) {
	st := &memStore{}
	rep, err := Generate(context.Background(), st,
		config.StatsConfig{Precision: 2}, false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rep.TotalRecords)
	assert.Empty(t, rep.Sites)
}

// TestRenderText verifies the report sections appear in the text
// rendering.
func TestRenderText(t *testing.T) {
	rep := testReport(t)
	out := RenderText(rep)

	assert.Contains(t, out, "Records: 4")
	assert.Contains(t, out, "Species")
	assert.Contains(t, out, "Sus scrofa")
	assert.Contains(t, out, "Minimum number of individuals")
	assert.Contains(t, out, "Per-site breakdown")
	assert.Contains(t, out, "Pompei: 3 records")
	assert.Contains(t, out,
		"species: Sus scrofa 2 (66.67%); Bos taurus 1 (33.33%)")
}

// TestRenderCSV verifies the CSV sections parse and carry the data.
func TestRenderCSV(t *testing.T) {
	rep := testReport(t)

	var buf bytes.Buffer
	require.NoError(t, RenderCSV(rep, &buf))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "section,column,value,count,percent", lines[0])
	assert.Contains(t, out, "totals,,records,4,")
	assert.Contains(t, out, "frequency,specie,Sus scrofa,2,50.00")
	assert.Contains(t, out, "numeric,numero_minimo_individui,mean,3.33,")
	assert.Contains(t, out, "site,Pompei,records,3,")
	assert.Contains(t, out, "site-species,Pompei,Sus scrofa,2,66.67")
	assert.Contains(t, out,
		"unit-species,Pompei area=2 trench=B us=200,Bos taurus,1,100.00")
}
