package webservice

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eperlab/res_core/internal/lib/webservice/models"
	"github.com/eperlab/res_core/internal/pkg/balance"
	"github.com/eperlab/res_core/internal/pkg/builder"
	"github.com/eperlab/res_core/internal/pkg/res"
	"gotest.tools/assert"
)

func testApp(t *testing.T) App {
	t.Helper()
	records := []balance.Record{
		{Region: "ARG", Tech: "REF", Fuel: "CRU", Direction: balance.In, EnergyPJ: 35.0},
		{Region: "ARG", Tech: "REF", Fuel: "GAS", Direction: balance.Out, EnergyPJ: 7.0},
		{Region: "BRA", Tech: "PWR", Fuel: "HYD", Direction: balance.In, EnergyPJ: -12.0},
		{Region: "BRA", Tech: "PWR", Fuel: "ELC", Direction: balance.Out, EnergyPJ: 10.0},
	}
	collection, err := builder.New(records).BuildRES()
	assert.NilError(t, err)
	return App{RES: collection}
}

func TestRegionsGet(t *testing.T) {
	app := testApp(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://example.com/res/regions", nil)

	app.Router().ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code, "get returned 200")
	assert.Equal(t, "application/json; charset=UTF-8", w.HeaderMap.Get("Content-Type"), "got expected Content-Type in response")

	regions := []string{}
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &regions))
	assert.Equal(t, len(regions), 2)
	assert.Equal(t, regions[0], "ARG")
	assert.Equal(t, regions[1], "BRA")
}

func TestTechnologiesGet(t *testing.T) {
	app := testApp(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://example.com/res/ARG/technologies", nil)

	app.Router().ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	techs := []res.Technology{}
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &techs))
	assert.Equal(t, len(techs), 1)
	assert.Equal(t, techs[0].Code, "REF")

	// unknown region is an empty list, not an error
	w = httptest.NewRecorder()
	r = httptest.NewRequest("GET", "http://example.com/res/CRI/technologies", nil)
	app.Router().ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &techs))
	assert.Equal(t, len(techs), 0)
}

func TestTechnologyGet(t *testing.T) {
	app := testApp(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://example.com/res/ARG/technology/REF", nil)

	app.Router().ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	tech := res.Technology{}
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &tech))
	assert.Equal(t, tech.Region, "ARG")
	assert.Equal(t, tech.Category, "UPS001")
	cru, ok := tech.InFuel("CRU")
	assert.Assert(t, ok)
	assert.Equal(t, cru.EnergyPJ, 35.0)

	w = httptest.NewRecorder()
	r = httptest.NewRequest("GET", "http://example.com/res/ARG/technology/PWR", nil)
	app.Router().ServeHTTP(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code, "missing technology returns 404")
}

func TestLabelGet(t *testing.T) {
	app := testApp(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://example.com/labels/ARGREFCRU", nil)

	app.Router().ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	info := labelInfo{}
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, info.Region, "ARG")
	assert.Equal(t, info.Tech, "REF")
	assert.Equal(t, info.Fuel, "CRU")
	assert.Equal(t, info.Category, "UPS001")
	assert.Equal(t, info.Sector, "FUE001")

	w = httptest.NewRecorder()
	r = httptest.NewRequest("GET", "http://example.com/labels/NONSENSE", nil)
	app.Router().ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code, "unresolvable label returns 400")
}

func TestArchivePost(t *testing.T) {
	app := testApp(t)

	flow := models.FlowRecord{
		Label:     "ARGREFCRU",
		Region:    "ARG",
		Tech:      "REF",
		Fuel:      "CRU",
		Direction: "in",
		EnergyPJ:  35.0,
	}
	reqBody, err := json.Marshal(flow)
	assert.NilError(t, err)

	// no archive store attached
	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "http://example.com/archive", bytes.NewBuffer(reqBody))
	app.Router().ServeHTTP(w, r)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestArchiveGet(t *testing.T) {
	app := testApp(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://example.com/archive/ARG", nil)
	app.Router().ServeHTTP(w, r)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code, "no archive store attached")
}
