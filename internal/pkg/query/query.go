// Package query filters built energy system collections. Every function is a
// pure read, and when nothing matches the result is empty rather than an
// error: a missing flow is valid domain state.
package query

import (
	"github.com/eperlab/res_core/internal/pkg/res"
)

// ByRegion returns the technologies operating in one region, in build order.
func ByRegion(c *res.Collection, region string) []*res.Technology {
	matches := []*res.Technology{}
	for _, tech := range c.Technologies() {
		if tech.Region == region {
			matches = append(matches, tech)
		}
	}
	return matches
}

// ByCode returns every region's instance of one technology code.
func ByCode(c *res.Collection, code string) []*res.Technology {
	matches := []*res.Technology{}
	for _, tech := range c.Technologies() {
		if tech.Code == code {
			matches = append(matches, tech)
		}
	}
	return matches
}

// ByCategory returns the technologies in one category, in build order.
func ByCategory(c *res.Collection, category string) []*res.Technology {
	matches := []*res.Technology{}
	for _, tech := range c.Technologies() {
		if tech.Category == category {
			matches = append(matches, tech)
		}
	}
	return matches
}

// Lookup locates one technology by its (code, region) key.
func Lookup(c *res.Collection, code string, region string) (*res.Technology, bool) {
	return c.Get(res.Key{Code: code, Region: region})
}

// ActiveFuels returns the fuels of a technology carrying a nonzero quantity,
// inputs before outputs.
func ActiveFuels(t *res.Technology) []*res.Fuel {
	active := []*res.Fuel{}
	for _, fuel := range t.Fuels() {
		if fuel.EnergyPJ != 0 {
			active = append(active, fuel)
		}
	}
	return active
}

// Regions lists the regions present in the collection, in build order.
func Regions(c *res.Collection) []string {
	regions := []string{}
	seen := make(map[string]bool)
	for _, tech := range c.Technologies() {
		if !seen[tech.Region] {
			seen[tech.Region] = true
			regions = append(regions, tech.Region)
		}
	}
	return regions
}
