/*
Package balance loads raw energy balance data into normalized flow records.
Two source layouts are supported: the plain record CSV
(region,tech,fuel,direction,energy_pj) and the matrix layout published with
the Latin American balances (sector rows by commodity columns, one table per
country). Records carry quantities exactly as the source reports them; the
matrix adapter is the only place sign conventions are interpreted.
*/
package balance

import (
	"fmt"
	"strings"
)

// Direction tags a flow as entering or leaving a technology.
type Direction int

const (
	// In flows feed a technology.
	In Direction = iota
	// Out flows leave a technology.
	Out
)

func (d Direction) String() string {
	if d == In {
		return "in"
	}
	return "out"
}

// ParseDirection reads the record CSV direction field.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in":
		return In, nil
	case "out":
		return Out, nil
	}
	return In, fmt.Errorf("direction must be in or out, got %q", s)
}

// Record is one normalized flow entry: a quantity of one fuel moving in or
// out of one technology in one region. A source may report several records
// for the same slot; summing them up is the builder's job, not the loader's.
type Record struct {
	Region    string
	Tech      string
	Fuel      string
	Direction Direction
	EnergyPJ  float64
}

// MalformedRecordError reports a source row that does not resolve to
// registered codes or does not parse. Line counts source rows from 1,
// header included.
type MalformedRecordError struct {
	Line int
	Err  error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("balance: malformed record at line %d: %v", e.Line, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}
