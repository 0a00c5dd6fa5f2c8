// Package natshandler streams broadcast RES state to a NATS server. Each
// technology status publishes on the subject res.<region>.<code>, so
// downstream consumers can subscribe to one region, one technology, or the
// whole system with standard subject wildcards.
package natshandler

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"sync"

	"github.com/eperlab/res_core/internal/pkg/msg"
	"github.com/eperlab/res_core/internal/pkg/res"
	"github.com/google/uuid"

	nats "github.com/nats-io/nats.go"
)

type Handler struct {
	mux    *sync.Mutex
	inbox  <-chan msg.Msg
	pid    uuid.UUID
	config config
	stop   chan bool
}

type config struct {
	Server string `json:"Server"`
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
	if cfg.Server == "" {
		cfg.Server = nats.DefaultURL
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

// subject names the NATS stream for one message. Technology statuses map to
// res.<region>.<code>; anything else falls back to the sender's PID.
func subject(m msg.Msg) string {
	if tech, ok := m.Payload().(res.Technology); ok {
		return fmt.Sprintf("res.%v.%v", tech.Region, tech.Code)
	}
	return m.PID().String()
}

func (h Handler) Process() {
	log.Println("[NATS client] Process Started")
	nc, err := nats.Connect(h.config.Server)
	if err != nil {
		log.Printf("[NATS client] connect %v: %v", h.config.Server, err)
		return
	}
	defer nc.Close()

loop:
	for {
		select {
		case m := <-h.inbox:
			switch m.Topic() {
			case msg.Status:
				data, err := json.Marshal(m.Payload())
				if err != nil {
					continue
				}
				if err = nc.Publish(subject(m), data); err != nil {
					log.Printf("unable to publish to nats server: %v", err)
				}

			case msg.Config:
				data, err := json.Marshal(m.Payload())
				if err != nil {
					continue
				}
				if err = nc.Publish("res.config", data); err != nil {
					log.Printf("unable to publish to nats server: %v", err)
				}
			}

		case <-h.stop:
			break loop
		}
	}
	log.Println("[NATS client] Process Shutdown")
}
