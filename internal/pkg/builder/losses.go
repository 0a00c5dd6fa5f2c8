package builder

import (
	"github.com/eperlab/res_core/internal/pkg/res"
)

// MergeLosses folds the paired loss technologies of each region into one:
// inventory variation (INV) output flows are summed into unused energy (WAS)
// and distribution losses (LOS) input flows into own consumption (OWN), after
// which INV and LOS leave the collection. A region missing either half of a
// pair is left as built.
//
// Merging runs on a populated system and narrows its schema, so it is a
// separate reduction rather than part of BuildRES.
func MergeLosses(system *res.Collection) {
	for _, region := range regions(system) {
		mergePair(system, region, "WAS", "INV", out)
		mergePair(system, region, "OWN", "LOS", in)
	}
}

type direction int

const (
	in direction = iota
	out
)

// mergePair adds absorbed's flows in one direction into survivor's matching
// slots and removes absorbed. Slots only the absorbed technology has are
// dropped with it; slots only the survivor has keep their value.
func mergePair(system *res.Collection, region, survivorCode, absorbedCode string, d direction) {
	survivor, ok := system.Get(res.Key{Code: survivorCode, Region: region})
	if !ok {
		return
	}
	absorbed, ok := system.Get(res.Key{Code: absorbedCode, Region: region})
	if !ok {
		return
	}

	fuels := survivor.OutFuels
	if d == in {
		fuels = survivor.InFuels
	}
	for _, fuel := range fuels {
		var donor *res.Fuel
		var found bool
		if d == in {
			donor, found = absorbed.InFuel(fuel.Code)
		} else {
			donor, found = absorbed.OutFuel(fuel.Code)
		}
		if found {
			fuel.EnergyPJ += donor.EnergyPJ
		}
	}
	system.Remove(absorbed.Key())
}

// regions lists the collection's regions in first-seen order.
func regions(system *res.Collection) []string {
	var order []string
	seen := make(map[string]bool)
	for _, tech := range system.Technologies() {
		if !seen[tech.Region] {
			seen[tech.Region] = true
			order = append(order, tech.Region)
		}
	}
	return order
}
