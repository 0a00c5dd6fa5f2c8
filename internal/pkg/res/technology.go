// Package res holds the typed entities of a Reference Energy System:
// fuels, technologies and the keyed collection they live in. Entities are
// identified by Key; energy quantities are mutable payload, not identity.
package res

import "fmt"

// Technology is a sector or process node in the RES. InFuels and OutFuels
// are ordered flow slots; order is fixed at construction and codes are
// unique per direction.
type Technology struct {
	Code     string  `json:"Code"`
	Region   string  `json:"Region"`
	Category string  `json:"Category"`
	InFuels  []*Fuel `json:"InFuels"`
	OutFuels []*Fuel `json:"OutFuels"`
}

// NewTechnology returns a technology with empty flow lists.
func NewTechnology(code, region, category string) *Technology {
	return &Technology{Code: code, Region: region, Category: category}
}

// Key returns the technology's lookup identity.
func (t *Technology) Key() Key {
	return Key{Code: t.Code, Region: t.Region}
}

// AddInFuel appends a slot to the input flow list. The fuel must share the
// technology's region and its code must not already be present.
func (t *Technology) AddInFuel(f *Fuel) error {
	if f.Region != t.Region {
		return fmt.Errorf("res: fuel %s region %s does not match technology %s region %s",
			f.Code, f.Region, t.Code, t.Region)
	}
	if _, ok := t.InFuel(f.Code); ok {
		return fmt.Errorf("res: duplicate input fuel %s on technology %s %s", f.Code, t.Region, t.Code)
	}
	t.InFuels = append(t.InFuels, f)
	return nil
}

// AddOutFuel appends a slot to the output flow list under the same rules as
// AddInFuel.
func (t *Technology) AddOutFuel(f *Fuel) error {
	if f.Region != t.Region {
		return fmt.Errorf("res: fuel %s region %s does not match technology %s region %s",
			f.Code, f.Region, t.Code, t.Region)
	}
	if _, ok := t.OutFuel(f.Code); ok {
		return fmt.Errorf("res: duplicate output fuel %s on technology %s %s", f.Code, t.Region, t.Code)
	}
	t.OutFuels = append(t.OutFuels, f)
	return nil
}

// InFuel locates an input slot by fuel code.
func (t *Technology) InFuel(code string) (*Fuel, bool) {
	for _, f := range t.InFuels {
		if f.Code == code {
			return f, true
		}
	}
	return nil, false
}

// OutFuel locates an output slot by fuel code.
func (t *Technology) OutFuel(code string) (*Fuel, bool) {
	for _, f := range t.OutFuels {
		if f.Code == code {
			return f, true
		}
	}
	return nil, false
}

// Fuels returns all slots, inputs then outputs, in list order.
func (t *Technology) Fuels() []*Fuel {
	fuels := make([]*Fuel, 0, len(t.InFuels)+len(t.OutFuels))
	fuels = append(fuels, t.InFuels...)
	fuels = append(fuels, t.OutFuels...)
	return fuels
}
