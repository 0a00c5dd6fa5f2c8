package models

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const (
	host     = "localhost"
	port     = 5432
	user     = "postgres"
	password = "postgres"
	dbname   = "res_test"
)

// FlowRecord is one archived fuel flow, addressed by its RES label and
// direction.
type FlowRecord struct {
	Label     string  `json:"Label"`
	Region    string  `json:"Region"`
	Tech      string  `json:"Tech"`
	Fuel      string  `json:"Fuel"`
	Direction string  `json:"Direction"`
	EnergyPJ  float64 `json:"EnergyPJ"`
}

// NewDB returns a database reference
func NewDB() (*sql.DB, error) {
	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s "+
		"password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", psqlInfo)

	return db, err
}

// CreateTables initializes the database schema
func CreateTables(db *sql.DB) error {
	flowTable := `
	CREATE TABLE IF NOT EXISTS flow_archive (
		label VARCHAR(16),
		region VARCHAR(3),
		tech VARCHAR(6),
		fuel VARCHAR(6),
		direction VARCHAR(3),
		energy_pj FLOAT,
		PRIMARY KEY (label, direction)
	);`
	_, err := db.Exec(flowTable)
	return err
}

// InsertFlow upserts one flow row into the archive.
func InsertFlow(db *sql.DB, flow FlowRecord) error {
	sqlStatement := `
	INSERT INTO flow_archive (label, region, tech, fuel, direction, energy_pj)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (label, direction) DO UPDATE SET energy_pj = EXCLUDED.energy_pj;`

	_, err := db.Exec(sqlStatement,
		flow.Label, flow.Region, flow.Tech, flow.Fuel, flow.Direction, flow.EnergyPJ)
	return err
}

// SelectFlows returns the archived flows of one region.
func SelectFlows(db *sql.DB, region string) ([]FlowRecord, error) {
	rows, err := db.Query(
		`SELECT label, region, tech, fuel, direction, energy_pj
		 FROM flow_archive WHERE region = $1`, region)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flows := []FlowRecord{}
	for rows.Next() {
		flow := FlowRecord{}
		err = rows.Scan(&flow.Label, &flow.Region, &flow.Tech,
			&flow.Fuel, &flow.Direction, &flow.EnergyPJ)
		if err != nil {
			return nil, err
		}
		flows = append(flows, flow)
	}
	return flows, rows.Err()
}
