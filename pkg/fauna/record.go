// Package fauna defines the core types and the storage contract for
// zooarchaeological observation sheets ("schede FR"). A record is one
// observation sheet linked to a stratigraphic unit of the host
// application; the repeating species/skeletal-part and measurement
// sub-lists are carried as JSON-array text inside single columns, with
// the first entry mirrored into the legacy single-value columns.
package fauna

import (
	"fmt"
	"strconv"
)

// Record is one fauna observation sheet. Columns are dynamic by design:
// the storage layer writes whatever columns are supplied and lets the
// engine enforce the schema, mirroring the host application's sheets.
type Record map[string]any

// Column names of the fauna table, grouped the way the data-entry form
// groups them.
const (
	ColID     = "id_fauna"
	ColUnitID = "id_us"

	// identifying data denormalized from the reference unit
	ColSite   = "sito"
	ColArea   = "area"
	ColUnit   = "us"
	ColTrench = "saggio"
	ColDating = "datazione_us"

	// depositional data
	ColRecorder    = "responsabile_scheda"
	ColCompiledOn  = "data_compilazione"
	ColPhotoDocs   = "documentazione_fotografica"
	ColRecovery    = "metodologia_recupero"
	ColContext     = "contesto"
	ColContextDesc = "descrizione_contesto"

	// archaeozoological data
	ColAnatomicalConn = "resti_connessione_anatomica"
	ColAccumulation   = "tipologia_accumulo"
	ColDeposition     = "deposizione"
	ColEstRemains     = "numero_stimato_resti"
	ColMNI            = "numero_minimo_individui"
	ColSpecies        = "specie"
	ColSkeletalParts  = "parti_scheletriche"
	ColSpeciesParts   = "specie_psi"
	ColMeasurements   = "misure_ossa"

	// taphonomic data
	ColFragmentation  = "stato_frammentazione"
	ColBurning        = "tracce_combustione"
	ColBurningOther   = "combustione_altri_materiali_us"
	ColBurningType    = "tipo_combustione"
	ColTaphonomic     = "segni_tafonomici_evidenti"
	ColTaphonomicChar = "caratterizzazione_segni_tafonomici"
	ColConservation   = "stato_conservazione"
	ColAlterations    = "alterazioni_morfologiche"

	// contextual narrative
	ColSoilNotes      = "note_terreno_giacitura"
	ColSampling       = "campionature_effettuate"
	ColStratReliab    = "affidabilita_stratigrafica"
	ColFindsClasses   = "classi_reperti_associazione"
	ColObservations   = "osservazioni"
	ColInterpretation = "interpretazione"
)

// Columns lists every column of the fauna table. The storage layer uses
// it as a whitelist before interpolating column names into SQL.
var Columns = []string{
	ColID, ColUnitID,
	ColSite, ColArea, ColUnit, ColTrench, ColDating,
	ColRecorder, ColCompiledOn, ColPhotoDocs, ColRecovery, ColContext,
	ColContextDesc,
	ColAnatomicalConn, ColAccumulation, ColDeposition, ColEstRemains,
	ColMNI, ColSpecies, ColSkeletalParts, ColSpeciesParts, ColMeasurements,
	ColFragmentation, ColBurning, ColBurningOther, ColBurningType,
	ColTaphonomic, ColTaphonomicChar, ColConservation, ColAlterations,
	ColSoilNotes, ColSampling, ColStratReliab, ColFindsClasses,
	ColObservations, ColInterpretation,
}

var columnSet = func() map[string]struct{} {
	res := make(map[string]struct{}, len(Columns))
	for _, col := range Columns {
		res[col] = struct{}{}
	}
	return res
}()

// KnownColumn reports whether name is a column of the fauna table.
func KnownColumn(name string) bool {
	_, ok := columnSet[name]
	return ok
}

// DefaultSearchFields are the text columns scanned by free-text search
// when the caller does not narrow the field set.
var DefaultSearchFields = []string{
	ColSite, ColArea, ColUnit, ColTrench, ColRecorder,
	ColContext, ColSpecies, ColContextDesc, ColObservations,
	ColInterpretation,
}

// ID returns the record identity, or 0 when the record has none yet.
func (r Record) ID() int64 {
	return toInt64(r[ColID])
}

// UnitID returns the linked reference unit identity, or 0 when unset.
func (r Record) UnitID() int64 {
	return toInt64(r[ColUnitID])
}

// Str returns the named column as a string; nil and missing values
// yield "".
func (r Record) Str(col string) string {
	v, ok := r[col]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}

// Float returns the named column as float64, 0 when absent or
// non-numeric.
func (r Record) Float(col string) float64 {
	switch v := r[col].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	case []byte:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// SpeciesParts decodes the repeating species/skeletal-part list.
// The JSON column is authoritative; when it is empty the legacy
// single-value columns act as a one-row fallback.
func (r Record) SpeciesParts() []SpeciesPart {
	pairs, err := DecodeSpeciesParts(r.Str(ColSpeciesParts))
	if err == nil && len(pairs) > 0 {
		return pairs
	}
	if sp := r.Str(ColSpecies); sp != "" {
		return []SpeciesPart{{Species: sp, Part: r.Str(ColSkeletalParts)}}
	}
	return nil
}

// Measurements decodes the repeating skeletal measurement list.
func (r Record) Measurements() []Measurement {
	mm, err := DecodeMeasurements(r.Str(ColMeasurements))
	if err != nil {
		return nil
	}
	return mm
}

// ApplyLegacyMirror keeps the legacy single-value species and
// skeletal-part columns equal to the first entry of the repeating list.
// Multi-entry records lose information when read through the legacy
// columns; the JSON column remains authoritative.
func (r Record) ApplyLegacyMirror() {
	pairs, err := DecodeSpeciesParts(r.Str(ColSpeciesParts))
	if err != nil || len(pairs) == 0 {
		return
	}
	r[ColSpecies] = pairs[0].Species
	r[ColSkeletalParts] = pairs[0].Part
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	res := make(Record, len(r))
	for k, v := range r {
		res[k] = v
	}
	return res
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case float64:
		return int64(n)
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0
		}
		return i
	case []byte:
		i, err := strconv.ParseInt(string(n), 10, 64)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}
