package fauna

import (
	"strconv"
	"strings"

	"github.com/gnames/gnfmt"
)

// SpeciesPart is one entry of the repeating species/skeletal-part list.
// The wire encoding is a JSON array of two-element string arrays:
// [["Sus scrofa", "Mandibola"], ...].
type SpeciesPart struct {
	Species string
	Part    string
}

// Measurement is one entry of the repeating skeletal measurement list.
// The wire encoding is a JSON array of six-element string arrays:
// [[element, species, dim1, dim2, dim3, dim4], ...]. Dimensions are
// serialized as strings and treated as zero when empty or non-numeric.
type Measurement struct {
	Element string
	Species string
	Dim1    string
	Dim2    string
	Dim3    string
	Dim4    string
}

// Dims returns the four linear measurements as numbers. Empty or
// non-numeric entries come back as 0.
func (m Measurement) Dims() [4]float64 {
	return [4]float64{
		dimValue(m.Dim1), dimValue(m.Dim2),
		dimValue(m.Dim3), dimValue(m.Dim4),
	}
}

func dimValue(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// EncodeSpeciesParts serializes the pair list to its JSON column text.
// An empty list encodes to "".
func EncodeSpeciesParts(pairs []SpeciesPart) (string, error) {
	if len(pairs) == 0 {
		return "", nil
	}
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{p.Species, p.Part}
	}
	enc := gnfmt.GNjson{}
	bs, err := enc.Encode(rows)
	if err != nil {
		return "", err
	}
	return string(bs), nil
}

// DecodeSpeciesParts parses the JSON column text back into pairs.
// Empty text yields an empty list; rows shorter than two elements are
// padded with "".
func DecodeSpeciesParts(text string) ([]SpeciesPart, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	var rows [][]string
	enc := gnfmt.GNjson{}
	if err := enc.Decode([]byte(text), &rows); err != nil {
		return nil, err
	}
	res := make([]SpeciesPart, 0, len(rows))
	for _, row := range rows {
		var p SpeciesPart
		if len(row) > 0 {
			p.Species = row[0]
		}
		if len(row) > 1 {
			p.Part = row[1]
		}
		res = append(res, p)
	}
	return res, nil
}

// EncodeMeasurements serializes the measurement list to its JSON column
// text. An empty list encodes to "".
func EncodeMeasurements(mm []Measurement) (string, error) {
	if len(mm) == 0 {
		return "", nil
	}
	rows := make([][]string, len(mm))
	for i, m := range mm {
		rows[i] = []string{
			m.Element, m.Species, m.Dim1, m.Dim2, m.Dim3, m.Dim4,
		}
	}
	enc := gnfmt.GNjson{}
	bs, err := enc.Encode(rows)
	if err != nil {
		return "", err
	}
	return string(bs), nil
}

// DecodeMeasurements parses the JSON column text back into
// measurements. Short rows are padded with "".
func DecodeMeasurements(text string) ([]Measurement, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	var rows [][]string
	enc := gnfmt.GNjson{}
	if err := enc.Decode([]byte(text), &rows); err != nil {
		return nil, err
	}
	res := make([]Measurement, 0, len(rows))
	for _, row := range rows {
		var m Measurement
		for i := len(row); i < 6; i++ {
			row = append(row, "")
		}
		m.Element, m.Species = row[0], row[1]
		m.Dim1, m.Dim2, m.Dim3, m.Dim4 = row[2], row[3], row[4], row[5]
		res = append(res, m)
	}
	return res, nil
}
