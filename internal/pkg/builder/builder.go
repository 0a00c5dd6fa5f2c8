/*
Package builder assembles a Reference Energy System from normalized balance
records. Construction runs in two passes: InitialRES lays out every technology
with zero-valued fuel slots, Populate accumulates reported quantities into
those slots. The slot layout is fixed after the first pass, so the populated
system always carries the exact schema of its skeleton.
*/
package builder

import (
	"fmt"

	"github.com/eperlab/res_core/internal/pkg/balance"
	"github.com/eperlab/res_core/internal/pkg/naming"
	"github.com/eperlab/res_core/internal/pkg/res"
)

// SchemaMismatchError reports a record aimed at a (region, technology, fuel,
// direction) slot the skeleton does not have. Writing it anyway would grow
// the schema mid-population, so the population pass refuses.
type SchemaMismatchError struct {
	Region    string
	Tech      string
	Fuel      string
	Direction balance.Direction
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("builder: no %v slot for fuel %v on technology %v%v",
		e.Direction, e.Fuel, e.Region, e.Tech)
}

// Builder holds one batch of balance records. The batch is never mutated:
// both passes can run any number of times and return equal collections.
type Builder struct {
	records []balance.Record
}

func New(records []balance.Record) *Builder {
	return &Builder{records: records}
}

// fuelSchema tracks the distinct fuel codes one technology code moves in
// each direction, in first-seen order.
type fuelSchema struct {
	in  []string
	out []string
}

func (s *fuelSchema) add(d balance.Direction, fuel string) {
	list := &s.in
	if d == balance.Out {
		list = &s.out
	}
	for _, code := range *list {
		if code == fuel {
			return
		}
	}
	*list = append(*list, fuel)
}

// InitialRES builds the skeleton: one technology per (region, code) pair in
// the batch, carrying a zero-valued fuel slot for every fuel code the batch
// shows flowing in or out of that technology code in any region. The union
// layout keeps a technology code structurally identical across regions, so
// regions can be compared slot for slot. Technology order and fuel slot order
// both follow first appearance in the batch.
func (b *Builder) InitialRES() (*res.Collection, error) {
	schemas := make(map[string]*fuelSchema)
	var order []res.Key
	seen := make(map[res.Key]bool)

	for _, record := range b.records {
		schema, ok := schemas[record.Tech]
		if !ok {
			schema = &fuelSchema{}
			schemas[record.Tech] = schema
		}
		schema.add(record.Direction, record.Fuel)

		k := res.Key{Code: record.Tech, Region: record.Region}
		if !seen[k] {
			seen[k] = true
			order = append(order, k)
		}
	}

	system := res.NewCollection()
	for _, k := range order {
		category, err := naming.Category(k.Code)
		if err != nil {
			return nil, err
		}
		tech := res.NewTechnology(k.Code, k.Region, category)
		schema := schemas[k.Code]
		for _, fuel := range schema.in {
			if err := tech.AddInFuel(res.NewFuel(fuel, k.Region)); err != nil {
				return nil, err
			}
		}
		for _, fuel := range schema.out {
			if err := tech.AddOutFuel(res.NewFuel(fuel, k.Region)); err != nil {
				return nil, err
			}
		}
		if err := system.Add(tech); err != nil {
			return nil, err
		}
	}
	return system, nil
}

// BuildRES returns the populated system: a fresh skeleton with every record's
// quantity accumulated into its slot. Records addressing the same slot sum,
// and quantities keep the sign they were reported with.
func (b *Builder) BuildRES() (*res.Collection, error) {
	system, err := b.InitialRES()
	if err != nil {
		return nil, err
	}
	if err := Populate(system, b.records); err != nil {
		return nil, err
	}
	return system, nil
}

// Populate accumulates a record batch into an existing skeleton. All records
// are resolved against the skeleton before any quantity is written, so a
// SchemaMismatchError leaves the skeleton untouched.
func Populate(system *res.Collection, records []balance.Record) error {
	slots := make([]*res.Fuel, len(records))
	for i, record := range records {
		fuel, err := slot(system, record)
		if err != nil {
			return err
		}
		slots[i] = fuel
	}
	for i, record := range records {
		slots[i].EnergyPJ += record.EnergyPJ
	}
	return nil
}

func slot(system *res.Collection, record balance.Record) (*res.Fuel, error) {
	tech, ok := system.Get(res.Key{Code: record.Tech, Region: record.Region})
	if ok {
		var fuel *res.Fuel
		if record.Direction == balance.In {
			fuel, ok = tech.InFuel(record.Fuel)
		} else {
			fuel, ok = tech.OutFuel(record.Fuel)
		}
		if ok {
			return fuel, nil
		}
	}
	return nil, &SchemaMismatchError{
		Region:    record.Region,
		Tech:      record.Tech,
		Fuel:      record.Fuel,
		Direction: record.Direction,
	}
}
