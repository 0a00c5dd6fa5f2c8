// Package mongodb archives broadcast RES state as snapshot documents. Each
// technology node upserts into one document keyed by its PID, so a rebuilt
// system overwrites the previous snapshot instead of growing the collection.
package mongodb

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"log"
	"sync"

	"github.com/eperlab/res_core/internal/pkg/msg"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Handler struct {
	mux    *sync.Mutex
	inbox  <-chan msg.Msg
	pid    uuid.UUID
	config config
	stop   chan bool
}

type config struct {
	URI      string `json:"URI"`
	Database string `json:"Database"`
	Port     string `json:"Port"`
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

// PID is an accessor for the handler's process id.
func (h Handler) PID() uuid.UUID {
	return h.pid
}

func msgToBSON(m msg.Msg) bson.D {
	//TODO: PID should be written as a binary of subtype 0x04 (UUID standard).
	// currently written as a string.
	return bson.D{
		{Key: "$set", Value: bson.M{
			"pid":  m.PID().String(),
			"data": m.Payload(),
		}},
	}
}

func (h *Handler) StopProcess() {
	h.stop <- true
}

// Process drains the inbox into the database. Snapshot collections are
// dropped on startup so each run archives exactly one system state.
func (h Handler) Process() {
	//TODO: Handle reconnection to the MongoDB resource
	client, err := mongo.NewClient(options.Client().ApplyURI(h.config.URI + ":" + h.config.Port))
	if err != nil {
		log.Println("[Mongo] client:", err)
		return
	}

	ctx := context.TODO()
	err = client.Connect(ctx)
	if err != nil {
		log.Println(err)
	}
	defer client.Disconnect(ctx)

	client.Database(h.config.Database).Collection("technologyStatus").Drop(ctx)
	client.Database(h.config.Database).Collection("systemConfig").Drop(ctx)
loop:
	for {
		select {
		case m := <-h.inbox:
			switch m.Topic() {
			case msg.Status:
				opts := options.Update().SetUpsert(true)
				_, err = client.Database(h.config.Database).Collection("technologyStatus").UpdateOne(
					ctx,
					bson.M{"pid": m.PID().String()},
					msgToBSON(m),
					opts,
				)

				if err != nil {
					log.Println("[Mongo] Status upsert:", err)
				}

			case msg.Config:
				log.Println("[Mongo] Config:", m.Payload())
				opts := options.Update().SetUpsert(true)
				_, err = client.Database(h.config.Database).Collection("systemConfig").UpdateOne(
					ctx,
					bson.M{"pid": m.PID().String()},
					msgToBSON(m),
					opts,
				)

				if err != nil {
					log.Println("[Mongo] Config upsert:", err)
				}
			}
		case <-h.stop:
			break loop
		}
	}
	log.Println("[Mongo] Process Shutdown")
}
