// Package sqldb archives broadcast RES flows as rows in a MySQL table, one
// row per (technology, fuel, direction) slot. Re-broadcasts of the same
// system upsert in place, so the table always holds the latest build.
package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"sync"
	"time"

	"github.com/eperlab/res_core/internal/pkg/msg"
	"github.com/eperlab/res_core/internal/pkg/naming"
	"github.com/eperlab/res_core/internal/pkg/res"
	"github.com/google/uuid"

	_ "github.com/go-sql-driver/mysql"
)

type Handler struct {
	mux    *sync.Mutex
	inbox  <-chan msg.Msg
	pid    uuid.UUID
	config config
	stop   chan bool
}

type config struct {
	Server   string `json:"Server"`
	Port     int    `json:"Port"`
	Username string `json:"Username"`
	Password string `json:"Password"`
	Database string `json:"Database"`
}

func (h Handler) PID() uuid.UUID {
	return h.pid
}

func redirectMsg(chIn <-chan msg.Msg, chOut chan<- msg.Msg) {
	for m := range chIn {
		chOut <- m
	}
}

// New subscribes a Handler to the system's status and config broadcasts.
func New(configPath string, system msg.Publisher) (Handler, error) {
	jsonConfig, err := ioutil.ReadFile(configPath)
	if err != nil {
		return Handler{}, err
	}
	cfg := config{}
	if err := json.Unmarshal(jsonConfig, &cfg); err != nil {
		return Handler{}, err
	}

	pid, err := uuid.NewUUID()
	if err != nil {
		return Handler{}, err
	}

	inbox := make(chan msg.Msg, 50)

	chStatus, err := system.Subscribe(pid, msg.Status)
	if err != nil {
		return Handler{}, err
	}
	go redirectMsg(chStatus, inbox)

	chConfig, err := system.Subscribe(pid, msg.Config)
	if err != nil {
		return Handler{}, err
	}
	go redirectMsg(chConfig, inbox)

	return Handler{
		mux:    &sync.Mutex{},
		inbox:  inbox,
		pid:    pid,
		config: cfg,
		stop:   make(chan bool),
	}, nil
}

func (h *Handler) Stop() {
	h.stop <- true
}

func (h Handler) dsn() string {
	return fmt.Sprintf("%v:%v@tcp(%v:%v)/%v",
		h.config.Username, h.config.Password, h.config.Server, h.config.Port, h.config.Database)
}

func (h Handler) DB() (*sql.DB, error) {
	db, err := sql.Open("mysql", h.dsn())
	if err != nil {
		return nil, err
	}
	return db, nil
}

// flowRow is one archived fuel flow of a technology.
type flowRow struct {
	label     string
	region    string
	tech      string
	fuel      string
	direction string
	energyPJ  float64
}

// flowRows flattens a technology status into archive rows, one per fuel
// slot. Labels compose through the naming registry, so a payload carrying an
// unregistered code is rejected as a whole.
func flowRows(m msg.Msg) ([]flowRow, error) {
	tech, ok := m.Payload().(res.Technology)
	if !ok {
		return nil, fmt.Errorf("sqldb: payload is not a technology status: %v", m.Payload())
	}

	rows := []flowRow{}
	for _, f := range tech.InFuels {
		label, err := naming.Compose(tech.Region, tech.Code, f.Code)
		if err != nil {
			return nil, err
		}
		rows = append(rows, flowRow{label, tech.Region, tech.Code, f.Code, "in", f.EnergyPJ})
	}
	for _, f := range tech.OutFuels {
		label, err := naming.Compose(tech.Region, tech.Code, f.Code)
		if err != nil {
			return nil, err
		}
		rows = append(rows, flowRow{label, tech.Region, tech.Code, f.Code, "out", f.EnergyPJ})
	}
	return rows, nil
}

func initDBTables(db *sql.DB) error {
	sqlStatement := `CREATE TABLE IF NOT EXISTS flows(
		uuid VARCHAR(36) NOT NULL,
		label VARCHAR(16) NOT NULL,
		region VARCHAR(3) NOT NULL,
		tech VARCHAR(6) NOT NULL,
		fuel VARCHAR(6) NOT NULL,
		direction VARCHAR(3) NOT NULL,
		energy_pj DOUBLE NOT NULL,
		PRIMARY KEY (uuid, label, direction))`
	_, err := db.Exec(sqlStatement)
	return err
}

func updateRows(ctx context.Context, db *sql.DB, m msg.Msg) error {
	rows, err := flowRows(m)
	if err != nil {
		return err
	}

	sqlStatement := `INSERT INTO flows (uuid, label, region, tech, fuel, direction, energy_pj)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE energy_pj = VALUES(energy_pj)`
	for _, r := range rows {
		_, err := db.ExecContext(ctx, sqlStatement,
			m.PID().String(), r.label, r.region, r.tech, r.fuel, r.direction, r.energyPJ)
		if err != nil {
			return err
		}
	}
	return nil
}

func (h Handler) Process() {
	db, err := h.DB()
	if err != nil {
		log.Printf("[SQL client] open %v: %v", h.config.Server, err)
		return
	}
	defer db.Close()

	if err := initDBTables(db); err != nil {
		log.Printf("[SQL client] init tables: %v", err)
		return
	}

loop:
	for {
		select {
		case m := <-h.inbox:
			switch m.Topic() {
			case msg.Status:
				ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
				if err := updateRows(ctx, db, m); err != nil {
					log.Printf("error %s update db", err)
				}
				cancel()

			case msg.Config:
			}

		case <-h.stop:
			break loop
		}
	}
	log.Println("[SQL client] Process Shutdown")
}
