package main

import (
	"log"
	"net/http"
	"os"

	"github.com/eperlab/res_core/internal/lib/webservice"
	"github.com/eperlab/res_core/internal/lib/webservice/models"
	"github.com/eperlab/res_core/internal/pkg/balance"
	"github.com/eperlab/res_core/internal/pkg/builder"
)

func buildCollection(path string) *webservice.App {
	f, err := os.Open(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	records, err := balance.ParseRecords(f)
	if err != nil {
		panic(err)
	}

	collection, err := builder.New(records).BuildRES()
	if err != nil {
		panic(err)
	}

	return &webservice.App{
		RES:    collection,
		Config: webservice.Config{URL: "localhost", Port: ":8080"},
	}
}

func linkArchive(app *webservice.App) {
	db, err := models.NewDB()
	if err != nil {
		log.Println("[Main] archive store unavailable:", err)
		return
	}
	if err := models.CreateTables(db); err != nil {
		log.Println("[Main] archive schema:", err)
		db.Close()
		return
	}
	app.DB = db
}

func main() {
	log.Println("[Main] Building RES collection")
	app := buildCollection("./data/balance_records.csv")

	log.Println("[Main] Connecting flow archive")
	linkArchive(app)

	r := app.Router()
	http.Handle("/", r)

	log.Println("Starting Server on Port", app.Config.Port)
	http.ListenAndServe(app.Config.Port, r)
}
