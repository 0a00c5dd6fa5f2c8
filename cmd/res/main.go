package main

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/eperlab/res_core/internal/pkg/balance"
	"github.com/eperlab/res_core/internal/pkg/builder"
	"github.com/eperlab/res_core/internal/pkg/database/mongodb"
	"github.com/eperlab/res_core/internal/pkg/datastreams/natshandler"
	"github.com/eperlab/res_core/internal/pkg/datastreams/sqldb"
	"github.com/eperlab/res_core/internal/pkg/query"
	"github.com/eperlab/res_core/internal/pkg/res"
	"github.com/eperlab/res_core/internal/pkg/root"
)

type pipelineConfig struct {
	RecordsPath string         `json:"RecordsPath"`
	Matrices    []matrixSource `json:"Matrices"`
	MergeLosses bool           `json:"MergeLosses"`
}

type matrixSource struct {
	Country string `json:"Country"`
	Path    string `json:"Path"`
}

func main() {
	log.Println("[Main] Starting RES_Core v0.1.0")
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	log.Println("[Main] Reading pipeline configuration")
	cfg, err := readConfig("./config/res/pipeline.json")
	if err != nil {
		panic(err)
	}

	log.Println("[Main] Loading balance records")
	records, err := loadRecords(cfg)
	if err != nil {
		panic(err)
	}

	log.Println("[Main] Building RES")
	collection, err := buildRES(records)
	if err != nil {
		panic(err)
	}

	if cfg.MergeLosses {
		log.Println("[Main] Merging loss technologies")
		builder.MergeLosses(collection)
	}

	log.Printf("[Main] Built %v technologies across %v regions",
		collection.Len(), len(query.Regions(collection)))

	log.Println("[Main] Assembling System")
	system, err := root.NewSystem(collection)
	if err != nil {
		panic(err)
	}

	log.Println("[Main] Connecting MongoDB Service")
	err = linkMongoDB(&system)
	if err != nil {
		panic(err)
	}

	log.Println("[Main] Connecting NATS Stream")
	err = linkNATS(&system)
	if err != nil {
		panic(err)
	}

	log.Println("[Main] Connecting SQL Archive")
	err = linkSQLArchive(&system)
	if err != nil {
		panic(err)
	}

	log.Println("[Main] Broadcasting RES")
	system.Broadcast()

	log.Println("[Main] Running until interrupt")
	<-sigs

	log.Println("[Main] Stopping system")
	system.Stop()
}

func readConfig(path string) (pipelineConfig, error) {
	cfg := pipelineConfig{}
	jsonConfig, err := ioutil.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = json.Unmarshal(jsonConfig, &cfg)
	return cfg, err
}

func loadRecords(cfg pipelineConfig) ([]balance.Record, error) {
	records := []balance.Record{}

	if cfg.RecordsPath != "" {
		f, err := os.Open(cfg.RecordsPath)
		if err != nil {
			return nil, err
		}
		parsed, err := balance.ParseRecords(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		records = append(records, parsed...)
	}

	for _, src := range cfg.Matrices {
		f, err := os.Open(src.Path)
		if err != nil {
			return nil, err
		}
		parsed, err := balance.ParseMatrix(src.Country, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		records = append(records, parsed...)
	}

	return records, nil
}

func buildRES(records []balance.Record) (*res.Collection, error) {
	return builder.New(records).BuildRES()
}

func linkMongoDB(sys *root.System) error {
	handler, err := mongodb.New("./config/database/mongodb_config.json", sys)
	if err != nil {
		return err
	}
	go handler.Process()
	return nil
}

func linkNATS(sys *root.System) error {
	handler, err := natshandler.New("./config/datastreams/nats.json", sys)
	if err != nil {
		return err
	}
	go handler.Process()
	return nil
}

func linkSQLArchive(sys *root.System) error {
	handler, err := sqldb.New("./config/datastreams/sqldb.json", sys)
	if err != nil {
		return err
	}
	go handler.Process()
	return nil
}
