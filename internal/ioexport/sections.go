// Package ioexport renders a fauna record as a printable observation
// sheet. PDF is the primary format; a plain-text rendering of the same
// sheet serves as fallback when the PDF cannot be produced.
package ioexport

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zooarch/faunadb/pkg/fauna"
)

// field is one labeled line of a sheet section.
type field struct {
	label  string
	column string
}

// section groups fields the way the paper sheet does.
type section struct {
	title  string
	fields []field
}

// sheetSections is the printable layout of an observation sheet.
var sheetSections = []section{
	{
		title: "Dati identificativi",
		fields: []field{
			{"Sito", fauna.ColSite},
			{"Area", fauna.ColArea},
			{"US", fauna.ColUnit},
			{"Saggio", fauna.ColTrench},
			{"Datazione US", fauna.ColDating},
			{"Responsabile scheda", fauna.ColRecorder},
			{"Data compilazione", fauna.ColCompiledOn},
		},
	},
	{
		title: "Dati deposizionali",
		fields: []field{
			{"Metodologia di recupero", fauna.ColRecovery},
			{"Contesto", fauna.ColContext},
			{"Descrizione del contesto", fauna.ColContextDesc},
			{"Documentazione fotografica", fauna.ColPhotoDocs},
			{"Resti in connessione anatomica", fauna.ColAnatomicalConn},
			{"Tipologia di accumulo", fauna.ColAccumulation},
			{"Deposizione", fauna.ColDeposition},
		},
	},
	{
		title: "Dati archeozoologici",
		fields: []field{
			{"Numero stimato dei resti", fauna.ColEstRemains},
			{"Numero minimo di individui", fauna.ColMNI},
		},
	},
	{
		title: "Dati tafonomici",
		fields: []field{
			{"Stato di frammentazione", fauna.ColFragmentation},
			{"Tracce di combustione", fauna.ColBurning},
			{"Combustione su altri materiali", fauna.ColBurningOther},
			{"Tipo di combustione", fauna.ColBurningType},
			{"Segni tafonomici evidenti", fauna.ColTaphonomic},
			{"Caratterizzazione dei segni", fauna.ColTaphonomicChar},
			{"Stato di conservazione", fauna.ColConservation},
			{"Alterazioni morfologiche", fauna.ColAlterations},
		},
	},
}

// narrativeFields are the free-text paragraphs printed after the
// tables.
var narrativeFields = []field{
	{"Note sul terreno di giacitura", fauna.ColSoilNotes},
	{"Campionature effettuate", fauna.ColSampling},
	{"Affidabilita stratigrafica", fauna.ColStratReliab},
	{"Classi di reperti in associazione", fauna.ColFindsClasses},
	{"Osservazioni", fauna.ColObservations},
	{"Interpretazione", fauna.ColInterpretation},
}

var reUnsafe = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// RecordFileName builds the export file name from the record's
// location, without extension: Scheda_FR_<site>_<area>_US<unit>.
func RecordFileName(rec fauna.Record) string {
	name := fmt.Sprintf("Scheda_FR_%s_%s_US%s",
		rec.Str(fauna.ColSite), rec.Str(fauna.ColArea),
		rec.Str(fauna.ColUnit))
	name = reUnsafe.ReplaceAllString(name, "_")
	return strings.Trim(name, "_")
}
