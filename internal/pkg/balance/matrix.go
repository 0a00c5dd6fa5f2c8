package balance

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/eperlab/res_core/internal/pkg/naming"
)

// ParseMatrix reads one country's table in the published balance matrix
// layout: the first row names commodities, each following row is a sector
// with one energy cell per commodity. Rows and columns whose names are not
// registered (units, totals, headings) are skipped; empty cells count as
// zero and zero cells produce no record.
//
// Flow direction and sign follow the published convention per category:
//
//	SUP, LOS001   all cells are outputs; EXP and WAS are reported positive
//	              and negated here; PRO keeps primary commodities only.
//	UPS001        primary cells are inputs, secondary cells outputs,
//	              electricity skipped. Inputs arrive negative in the source
//	              and stay negative.
//	UPS002        negative cells are inputs, positive secondary cells are
//	              outputs, electricity skipped.
//	UPS003        electricity cells are outputs, the rest inputs.
//	DEM, LOS002   all cells are inputs, negated to consumption sign.
//
// The record CSV layout carries none of this: ParseRecords is a pure
// passthrough and this adapter is the single place the convention lives.
func ParseMatrix(country string, r io.Reader) ([]Record, error) {
	region, err := naming.RegionCode(country)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, &MalformedRecordError{Line: 1, Err: fmt.Errorf("missing matrix header: %v", err)}
	}

	// resolve commodity columns once; unresolved columns stay nil
	type column struct {
		sector string
		fuel   string
	}
	columns := make([]*column, len(header))
	for j := 1; j < len(header); j++ {
		sector, fuel, err := naming.FuelFromName(strings.TrimSpace(header[j]))
		if err != nil {
			continue
		}
		columns[j] = &column{sector: sector, fuel: fuel}
	}

	records := []Record{}
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &MalformedRecordError{Line: line + 1, Err: err}
		}
		line++
		if len(row) == 0 {
			continue
		}

		category, tech, err := naming.TechFromName(strings.TrimSpace(row[0]))
		if err != nil {
			continue
		}

		for j := 1; j < len(row) && j < len(columns); j++ {
			col := columns[j]
			if col == nil {
				continue
			}
			cell := strings.TrimSpace(row[j])
			if cell == "" {
				continue
			}
			energy, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, &MalformedRecordError{Line: line,
					Err: fmt.Errorf("cell %s/%s %q is not numeric", row[0], header[j], cell)}
			}
			if energy == 0 {
				continue
			}

			rec, ok := classifyCell(category, tech, col.sector, energy)
			if !ok {
				continue
			}
			rec.Region = region
			rec.Fuel = col.fuel
			rec.Tech = tech
			records = append(records, rec)
		}
	}
	return records, nil
}

// classifyCell applies the per-category direction and sign rules to one
// nonzero matrix cell.
func classifyCell(category, tech, sector string, energy float64) (Record, bool) {
	switch category {
	case naming.CatSupply, naming.CatPrimLoss:
		if tech == "PRO" && sector != naming.SectorPrimary {
			return Record{}, false
		}
		if tech == "EXP" || tech == "WAS" {
			energy = -energy
		}
		return Record{Direction: Out, EnergyPJ: energy}, true

	case naming.CatConversion:
		if sector == naming.SectorTertiary {
			return Record{}, false
		}
		if sector == naming.SectorPrimary {
			return Record{Direction: In, EnergyPJ: energy}, true
		}
		return Record{Direction: Out, EnergyPJ: energy}, true

	case naming.CatSecConv:
		if sector == naming.SectorTertiary {
			return Record{}, false
		}
		if energy < 0 {
			return Record{Direction: In, EnergyPJ: energy}, true
		}
		if sector == naming.SectorSecondary {
			return Record{Direction: Out, EnergyPJ: energy}, true
		}
		return Record{}, false

	case naming.CatPower:
		if sector == naming.SectorTertiary {
			return Record{Direction: Out, EnergyPJ: energy}, true
		}
		return Record{Direction: In, EnergyPJ: energy}, true

	case naming.CatDemand, naming.CatSecLoss:
		return Record{Direction: In, EnergyPJ: -energy}, true
	}
	return Record{}, false
}
