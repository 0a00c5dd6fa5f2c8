// Package webservice serves a built Reference Energy System over HTTP. Read
// endpoints answer from the in-memory collection; the archive endpoint
// persists posted flow rows through the models store.
package webservice

import (
	"database/sql"
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"

	"github.com/eperlab/res_core/internal/lib/webservice/models"
	"github.com/eperlab/res_core/internal/pkg/naming"
	"github.com/eperlab/res_core/internal/pkg/query"
	"github.com/eperlab/res_core/internal/pkg/res"
	"github.com/gorilla/mux"
)

type Config struct {
	URL  string
	Port string
}

type App struct {
	DB     *sql.DB
	Config Config
	RES    *res.Collection
}

func (app *App) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", app.BaseHandler)
	r.HandleFunc("/res/regions", app.RegionsHandler).Methods("GET")
	r.HandleFunc("/res/{region}/technologies", app.TechnologiesHandler).Methods("GET")
	r.HandleFunc("/res/{region}/technology/{code}", app.TechnologyHandler).Methods("GET")
	r.HandleFunc("/labels/{label}", app.LabelHandler).Methods("GET")
	r.HandleFunc("/archive", app.ArchiveHandler).Methods("POST")
	r.HandleFunc("/archive/{region}", app.ArchivedFlowsHandler).Methods("GET")
	return r
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	body, err := json.Marshal(v)
	if err != nil {
		log.Println("malformed JSON:", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(code)
	w.Write(body)
}

func (app *App) BaseHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
}

// RegionsHandler lists the regions of the collection.
func (app *App) RegionsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, query.Regions(app.RES))
}

// TechnologiesHandler lists one region's technologies. An unknown region is
// an empty system, not an error.
func (app *App) TechnologiesHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	writeJSON(w, http.StatusOK, query.ByRegion(app.RES, vars["region"]))
}

// TechnologyHandler returns one technology by (region, code).
func (app *App) TechnologyHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tech, ok := query.Lookup(app.RES, vars["code"], vars["region"])
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tech)
}

type labelInfo struct {
	Label    string `json:"Label"`
	Region   string `json:"Region"`
	Tech     string `json:"Tech"`
	Fuel     string `json:"Fuel"`
	Category string `json:"Category"`
	Sector   string `json:"Sector"`
}

// LabelHandler decomposes a RES label into its registered parts.
func (app *App) LabelHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	region, tech, fuel, err := naming.Decompose(vars["label"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"Error": err.Error()})
		return
	}

	category, _ := naming.Category(tech)
	sector, _ := naming.Sector(fuel)
	writeJSON(w, http.StatusOK, labelInfo{
		Label:    vars["label"],
		Region:   region,
		Tech:     tech,
		Fuel:     fuel,
		Category: category,
		Sector:   sector,
	})
}

// ArchivedFlowsHandler returns one region's archived flow rows.
func (app *App) ArchivedFlowsHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if app.DB == nil {
		w.Header().Set("Content-Type", "application/json; charset=UTF-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	flows, err := models.SelectFlows(app.DB, vars["region"])
	if err != nil {
		log.Println("archive select:", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, flows)
}

// ArchiveHandler stores one posted flow row.
func (app *App) ArchiveHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	if app.DB == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	flow := models.FlowRecord{}
	if err := json.Unmarshal(body, &flow); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := models.InsertFlow(app.DB, flow); err != nil {
		log.Println("archive insert:", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	log.Println("POSTED to Archive:", flow.Label)
	w.WriteHeader(http.StatusCreated)
}
