/*
Package naming carries the fixed vocabulary of the Latin American energy
balance and the OSeMOSYS label convention built from it. A flow label is the
concatenation [region][technology][fuel], e.g. "ARGREFCRU" for crude oil
into Argentina's refineries. All lookups are pure; misses return
*UnknownCodeError.
*/
package naming

import (
	"fmt"
	"sort"
)

// UnknownCodeError reports a code absent from the registered vocabulary.
type UnknownCodeError struct {
	Kind string // "region", "technology", "fuel" or "label"
	Code string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("naming: unknown %s code %q", e.Kind, e.Code)
}

// regions maps balance sheet country names to 3-letter region codes.
var regions = map[string]string{
	"Argentina":            "ARG",
	"Barbados":             "BRB",
	"Belice":               "BLZ",
	"Bolivia":              "BOL",
	"Brasil":               "BRA",
	"Chile":                "CHL",
	"Colombia":             "COL",
	"Costa Rica":           "CRI",
	"Cuba":                 "CUB",
	"Ecuador":              "ECU",
	"El Salvador":          "SLV",
	"Grenada":              "GRD",
	"Guatemala":            "GTM",
	"Guyana":               "GUY",
	"Haiti":                "HTI",
	"Honduras":             "HND",
	"Jamaica":              "JAM",
	"México":               "MEX",
	"Nicaragua":            "NIC",
	"Panamá":               "PAN",
	"Paraguay":             "PRY",
	"Perú":                 "PER",
	"República Dominicana": "DOM",
	"Suriname":             "SUR",
	"Trinidad & Tobago":    "TTO",
	"Uruguay":              "URY",
	"Venezuela":            "VEN",
}

// Category codes group technologies by their role in the balance.
const (
	CatSupply     = "SUP"    // extraction, import, export
	CatConversion = "UPS001" // primary to secondary conversion
	CatSecConv    = "UPS002" // secondary to secondary conversion
	CatPower      = "UPS003" // electricity generation
	CatDemand     = "DEM"    // final demand sectors
	CatPrimLoss   = "LOS001" // inventory variation, unused energy
	CatSecLoss    = "LOS002" // distribution losses, own use
)

// Sector codes group fuels by transformation stage.
const (
	SectorPrimary   = "FUE001"
	SectorSecondary = "FUE002"
	SectorTertiary  = "FUE003"
)

// techCategories maps technology codes to their category.
var techCategories = map[string]string{
	"PRO": CatSupply,
	"IMP": CatSupply,
	"EXP": CatSupply,

	"REF": CatConversion,
	"GAS": CatConversion,
	"CHL": CatConversion,
	"DET": CatConversion,

	"BOI":    CatSecConv,
	"UPSTEC": CatSecConv,

	"PWR": CatPower,
	"SEL": CatPower,

	"TRA": CatDemand,
	"IND": CatDemand,
	"RES": CatDemand,
	"COM": CatDemand,
	"AGR": CatDemand,
	"CON": CatDemand,
	"NEE": CatDemand,

	"INV": CatPrimLoss,
	"WAS": CatPrimLoss,

	"LOS": CatSecLoss,
	"OWN": CatSecLoss,
}

// techNames maps balance sheet sector rows to technology codes.
var techNames = map[string]string{
	"PRODUCCIÓN":  "PRO",
	"IMPORTACIÓN": "IMP",
	"EXPORTACIÓN": "EXP",

	"REFINERÍAS":     "REF",
	"CENTROS DE GAS": "GAS",
	"CARBONERA":      "CHL",
	"DESTILERÍA":     "DET",

	"COQUERÍA Y ALTOS HORNOS": "BOI",
	"OTROS CENTROS":           "UPSTEC",

	"CENTRALES ELÉCTRICAS": "PWR",
	"AUTOPRODUCTORES":      "SEL",

	"TRANSPORTE":                    "TRA",
	"INDUSTRIAL":                    "IND",
	"RESIDENCIAL":                   "RES",
	"COMERCIAL, SERVICIOS, PÚBLICO": "COM",
	"AGRO, PESCA Y MINERÍA":         "AGR",
	"CONSTRUCCIÓN Y OTROS":          "CON",
	"CONSUMO NO ENERGÉTICO":         "NEE",

	"VARIACIÓN DE INVENTARIOS": "INV",
	"NO APROVECHADO":           "WAS",

	"PÉRDIDAS":       "LOS",
	"CONSUMO PROPIO": "OWN",
}

// fuelSectors maps fuel codes to their sector.
var fuelSectors = map[string]string{
	"CRU":    SectorPrimary,
	"NGS":    SectorPrimary,
	"COA001": SectorPrimary,
	"HYD":    SectorPrimary,
	"GEO":    SectorPrimary,
	"NUC":    SectorPrimary,
	"WOO":    SectorPrimary,
	"SGC":    SectorPrimary,
	"OPR":    SectorPrimary,

	"LPG":    SectorSecondary,
	"GSL":    SectorSecondary,
	"KER":    SectorSecondary,
	"DSL":    SectorSecondary,
	"HFO":    SectorSecondary,
	"COK":    SectorSecondary,
	"COA002": SectorSecondary,
	"GAS":    SectorSecondary,
	"OSE":    SectorSecondary,
	"NEN":    SectorSecondary,

	"ELC": SectorTertiary,
}

// fuelNames maps balance sheet commodity columns to fuel codes.
var fuelNames = map[string]string{
	"PETRÓLEO":                   "CRU",
	"GAS NATURAL":                "NGS",
	"CARBÓN MINERAL":             "COA001",
	"HIDROENERGÍA":               "HYD",
	"GEOTERMIA":                  "GEO",
	"NUCLEAR":                    "NUC",
	"LEÑA":                       "WOO",
	"CAÑA DE AZÚCAR Y DERIVADOS": "SGC",
	"OTRAS PRIMARIAS":            "OPR",

	"GAS LICUADO DE PETRÓLEO": "LPG",
	"GASOLINA/ALCOHOL":        "GSL",
	"KEROSENE/JET FUEL":       "KER",
	"DIÉSEL OIL":              "DSL",
	"FUEL OIL":                "HFO",
	"COQUE":                   "COK",
	"CARBÓN VEGETAL":          "COA002",
	"GASES":                   "GAS",
	"OTRAS SECUNDARIAS":       "OSE",
	"NO ENERGÉTICO":           "NEN",

	"ELECTRICIDAD": "ELC",
}

// regionSet indexes region codes; techByLength orders technology codes
// longest first so Decompose can split variable-length codes.
var (
	regionSet    map[string]bool
	techByLength []string
)

func init() {
	regionSet = make(map[string]bool, len(regions))
	for _, code := range regions {
		regionSet[code] = true
	}

	techByLength = make([]string, 0, len(techCategories))
	for code := range techCategories {
		techByLength = append(techByLength, code)
	}
	sort.Slice(techByLength, func(i, j int) bool {
		if len(techByLength[i]) != len(techByLength[j]) {
			return len(techByLength[i]) > len(techByLength[j])
		}
		return techByLength[i] < techByLength[j]
	})
}

// RegionCode resolves a balance sheet country name to its region code.
func RegionCode(country string) (string, error) {
	code, ok := regions[country]
	if !ok {
		return "", &UnknownCodeError{Kind: "region", Code: country}
	}
	return code, nil
}

// IsRegion reports whether code is a registered region code.
func IsRegion(code string) bool {
	return regionSet[code]
}

// Category resolves a technology code to its category code.
func Category(tech string) (string, error) {
	cat, ok := techCategories[tech]
	if !ok {
		return "", &UnknownCodeError{Kind: "technology", Code: tech}
	}
	return cat, nil
}

// Sector resolves a fuel code to its sector code.
func Sector(fuel string) (string, error) {
	sector, ok := fuelSectors[fuel]
	if !ok {
		return "", &UnknownCodeError{Kind: "fuel", Code: fuel}
	}
	return sector, nil
}

// TechFromName resolves a balance sheet sector row to (category, code).
func TechFromName(name string) (string, string, error) {
	code, ok := techNames[name]
	if !ok {
		return "", "", &UnknownCodeError{Kind: "technology", Code: name}
	}
	return techCategories[code], code, nil
}

// FuelFromName resolves a balance sheet commodity column to (sector, code).
func FuelFromName(name string) (string, string, error) {
	code, ok := fuelNames[name]
	if !ok {
		return "", "", &UnknownCodeError{Kind: "fuel", Code: name}
	}
	return fuelSectors[code], code, nil
}

// Compose builds the canonical flow label [region][tech][fuel].
func Compose(region, tech, fuel string) (string, error) {
	if !IsRegion(region) {
		return "", &UnknownCodeError{Kind: "region", Code: region}
	}
	if _, ok := techCategories[tech]; !ok {
		return "", &UnknownCodeError{Kind: "technology", Code: tech}
	}
	if _, ok := fuelSectors[fuel]; !ok {
		return "", &UnknownCodeError{Kind: "fuel", Code: fuel}
	}
	return region + tech + fuel, nil
}

// Decompose splits a canonical flow label back into (region, tech, fuel).
// Technology codes vary in length (REF vs UPSTEC), so candidates are tried
// longest first and the remainder must resolve to a registered fuel.
func Decompose(label string) (string, string, string, error) {
	if len(label) < 9 { // region + shortest tech + shortest fuel
		return "", "", "", &UnknownCodeError{Kind: "label", Code: label}
	}
	region := label[:3]
	if !IsRegion(region) {
		return "", "", "", &UnknownCodeError{Kind: "label", Code: label}
	}
	rest := label[3:]
	for _, tech := range techByLength {
		if len(rest) <= len(tech) {
			continue
		}
		if rest[:len(tech)] != tech {
			continue
		}
		fuel := rest[len(tech):]
		if _, ok := fuelSectors[fuel]; ok {
			return region, tech, fuel, nil
		}
	}
	return "", "", "", &UnknownCodeError{Kind: "label", Code: label}
}
