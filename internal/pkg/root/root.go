package root

import (
	"github.com/eperlab/res_core/internal/pkg/msg"
	"github.com/eperlab/res_core/internal/pkg/query"
	"github.com/eperlab/res_core/internal/pkg/res"
	"github.com/google/uuid"
)

// System is the root node of the energy system network. It owns a built RES
// collection and broadcasts it over the messaging network to subscribed
// handlers. Every technology is represented as a node with its own PID, so
// downstream consumers can key on sender identity the way they would for any
// other publishing component.
type System struct {
	pid       uuid.UUID
	publisher *msg.PubSub
	res       *res.Collection
	nodes     map[res.Key]uuid.UUID
}

// Config describes a broadcast collection to subscribers.
type Config struct {
	Regions      []string `json:"Regions"`
	Technologies int      `json:"Technologies"`
}

// NewSystem returns a System publishing the collection's state.
func NewSystem(collection *res.Collection) (System, error) {
	pid, err := uuid.NewUUID()
	if err != nil {
		return System{}, err
	}

	nodes := make(map[res.Key]uuid.UUID)
	for _, tech := range collection.Technologies() {
		nodePID, err := uuid.NewUUID()
		if err != nil {
			return System{}, err
		}
		nodes[tech.Key()] = nodePID
	}

	return System{
		pid:       pid,
		publisher: msg.NewPublisher(pid),
		res:       collection,
		nodes:     nodes,
	}, nil
}

// PID is an accessor for the system's process id.
func (s *System) PID() uuid.UUID {
	return s.pid
}

// Collection is an accessor for the broadcast RES collection.
func (s *System) Collection() *res.Collection {
	return s.res
}

// NodePID returns the process id assigned to one technology node.
func (s *System) NodePID(k res.Key) (uuid.UUID, bool) {
	pid, ok := s.nodes[k]
	return pid, ok
}

// Subscribe returns a channel on which the specified topic is broadcast
func (s *System) Subscribe(pid uuid.UUID, topic msg.Topic) (<-chan msg.Msg, error) {
	return s.publisher.Subscribe(pid, topic)
}

// Unsubscribe pid from all topic broadcasts
func (s *System) Unsubscribe(pid uuid.UUID) {
	s.publisher.Unsubscribe(pid)
}

// Describe summarizes the collection for Config subscribers.
func (s *System) Describe() Config {
	return Config{
		Regions:      query.Regions(s.res),
		Technologies: s.res.Len(),
	}
}

// Broadcast publishes the collection state: one Status message per
// technology under that node's PID, then one Config message under the
// system PID.
func (s *System) Broadcast() {
	for _, tech := range s.res.Technologies() {
		pid, ok := s.nodes[tech.Key()]
		if !ok {
			pid = s.pid
		}
		s.publisher.Forward(msg.New(pid, msg.Status, *tech))
	}
	s.publisher.Publish(msg.Config, s.Describe())
}

// Stop closes all subscriber channels.
func (s *System) Stop() {
	s.publisher.Stop()
}
