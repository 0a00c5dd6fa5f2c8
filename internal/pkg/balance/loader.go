package balance

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/eperlab/res_core/internal/pkg/naming"
)

// ParseRecords reads the record CSV layout: one flow per row,
// region,tech,fuel,direction,energy_pj. A header row starting with "region"
// is skipped. Every code is checked against the naming vocabulary; any
// failure aborts the load with *MalformedRecordError and no records.
func ParseRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records := []Record{}
	line := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &MalformedRecordError{Line: line + 1, Err: err}
		}
		if line == 0 && len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "region") {
			line++
			continue
		}
		line++

		rec, err := parseRow(row)
		if err != nil {
			return nil, &MalformedRecordError{Line: line, Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string) (Record, error) {
	if len(row) != 5 {
		return Record{}, fmt.Errorf("want 5 fields, got %d", len(row))
	}

	region := strings.TrimSpace(row[0])
	if !naming.IsRegion(region) {
		return Record{}, &naming.UnknownCodeError{Kind: "region", Code: region}
	}

	tech := strings.TrimSpace(row[1])
	if _, err := naming.Category(tech); err != nil {
		return Record{}, err
	}

	fuel := strings.TrimSpace(row[2])
	if _, err := naming.Sector(fuel); err != nil {
		return Record{}, err
	}

	direction, err := ParseDirection(row[3])
	if err != nil {
		return Record{}, err
	}

	energy, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
	if err != nil {
		return Record{}, fmt.Errorf("energy field %q is not numeric", row[4])
	}

	return Record{
		Region:    region,
		Tech:      tech,
		Fuel:      fuel,
		Direction: direction,
		EnergyPJ:  energy,
	}, nil
}
