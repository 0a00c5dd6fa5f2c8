package balance

import (
	"errors"
	"strings"
	"testing"

	"github.com/eperlab/res_core/internal/pkg/naming"
	"gotest.tools/assert"
)

func TestParseRecords(t *testing.T) {
	src := strings.Join([]string{
		"region,tech,fuel,direction,energy_pj",
		"ARG,REF,CRU,in,35.0",
		"ARG,REF,GAS,out,5.0",
		"ARG,REF,GAS,out,2.0",
		"BRA,PWR,HYD,in,-12.5",
	}, "\n")

	records, err := ParseRecords(strings.NewReader(src))
	assert.NilError(t, err)
	assert.Equal(t, len(records), 4)

	assert.Equal(t, records[0], Record{Region: "ARG", Tech: "REF", Fuel: "CRU", Direction: In, EnergyPJ: 35.0})
	assert.Equal(t, records[1], Record{Region: "ARG", Tech: "REF", Fuel: "GAS", Direction: Out, EnergyPJ: 5.0})
	assert.Equal(t, records[2], Record{Region: "ARG", Tech: "REF", Fuel: "GAS", Direction: Out, EnergyPJ: 2.0})

	// quantities pass through as reported, negative included
	assert.Equal(t, records[3].EnergyPJ, -12.5)
}

func TestParseRecordsNoHeader(t *testing.T) {
	records, err := ParseRecords(strings.NewReader("CRI,PWR,GEO,in,-3.1\n"))
	assert.NilError(t, err)
	assert.Equal(t, len(records), 1)
	assert.Equal(t, records[0].Region, "CRI")
}

func TestParseRecordsUnknownTech(t *testing.T) {
	src := "ARG,REF,CRU,in,35.0\nARG,XXX,CRU,in,1.0\n"

	records, err := ParseRecords(strings.NewReader(src))
	assert.Assert(t, records == nil)

	var malformed *MalformedRecordError
	assert.Assert(t, errors.As(err, &malformed))
	assert.Equal(t, malformed.Line, 2)

	var unknown *naming.UnknownCodeError
	assert.Assert(t, errors.As(err, &unknown))
	assert.Equal(t, unknown.Code, "XXX")
}

func TestParseRecordsUnknownRegion(t *testing.T) {
	_, err := ParseRecords(strings.NewReader("ZZZ,REF,CRU,in,35.0\n"))

	var malformed *MalformedRecordError
	assert.Assert(t, errors.As(err, &malformed))
	var unknown *naming.UnknownCodeError
	assert.Assert(t, errors.As(err, &unknown))
	assert.Equal(t, unknown.Kind, "region")
}

func TestParseRecordsUnknownFuel(t *testing.T) {
	_, err := ParseRecords(strings.NewReader("ARG,REF,OIL,in,35.0\n"))

	var unknown *naming.UnknownCodeError
	assert.Assert(t, errors.As(err, &unknown))
	assert.Equal(t, unknown.Kind, "fuel")
}

func TestParseRecordsBadDirection(t *testing.T) {
	records, err := ParseRecords(strings.NewReader("ARG,REF,CRU,sideways,35.0\n"))
	assert.Assert(t, records == nil)

	var malformed *MalformedRecordError
	assert.Assert(t, errors.As(err, &malformed))
}

func TestParseRecordsBadEnergy(t *testing.T) {
	records, err := ParseRecords(strings.NewReader("ARG,REF,CRU,in,lots\n"))
	assert.Assert(t, records == nil)

	var malformed *MalformedRecordError
	assert.Assert(t, errors.As(err, &malformed))
	assert.Equal(t, malformed.Line, 1)
}

func TestParseRecordsFieldCount(t *testing.T) {
	_, err := ParseRecords(strings.NewReader("ARG,REF,CRU,in\n"))

	var malformed *MalformedRecordError
	assert.Assert(t, errors.As(err, &malformed))
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("in")
	assert.NilError(t, err)
	assert.Equal(t, d, In)

	d, err = ParseDirection(" OUT ")
	assert.NilError(t, err)
	assert.Equal(t, d, Out)

	_, err = ParseDirection("both")
	assert.Assert(t, err != nil)

	assert.Equal(t, In.String(), "in")
	assert.Equal(t, Out.String(), "out")
}
