package res

// Key is the lookup identity of a Fuel or Technology: (code, region) and
// nothing else. Quantities, categories and flow lists never take part in
// equality, so a Key built from a bare code pair indexes the populated
// entity. Key is comparable and is the map key for every index.
type Key struct {
	Code   string `json:"Code"`
	Region string `json:"Region"`
}

// Fuel is one commodity flow slot scoped to a technology's region. EnergyPJ
// holds the accumulated flow in petajoules and is zero until a build
// populates it.
type Fuel struct {
	Code     string  `json:"Code"`
	Region   string  `json:"Region"`
	EnergyPJ float64 `json:"EnergyPJ"`
}

// NewFuel returns a zero energy fuel slot.
func NewFuel(code, region string) *Fuel {
	return &Fuel{Code: code, Region: region}
}

// Key returns the fuel's lookup identity.
func (f *Fuel) Key() Key {
	return Key{Code: f.Code, Region: f.Region}
}
