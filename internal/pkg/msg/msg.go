package msg

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Topic partitions the broadcast streams of a publisher.
type Topic int

const (
	// Status messages carry a component's current state.
	Status Topic = iota
	// Config messages carry a component's configuration.
	Config
	// Control messages carry a command targeted at a component.
	Control
)

func (t Topic) String() string {
	switch t {
	case Status:
		return "status"
	case Config:
		return "config"
	case Control:
		return "control"
	}
	return "unknown"
}

// Publisher is an interface for objects that allow subscription to their events
type Publisher interface {
	Subscribe(uuid.UUID, Topic) (<-chan Msg, error)
	Unsubscribe(uuid.UUID)
}

// Msg is an immutable message in flight between system components.
type Msg struct {
	sender  uuid.UUID
	topic   Topic
	payload interface{}
}

// New is the Msg factory function
func New(sender uuid.UUID, topic Topic, payload interface{}) Msg {
	return Msg{sender, topic, payload}
}

// PID returns the sender's PID
func (v Msg) PID() uuid.UUID {
	return v.sender
}

// Topic returns the stream the message was broadcast on
func (v Msg) Topic() Topic {
	return v.topic
}

// Payload returns the message data
func (v Msg) Payload() interface{} {
	return v.payload
}

const subscriberBuffer = 50

// PubSub fans messages out to per-topic subscribers. A single PubSub backs
// one publishing component and carries that component's PID.
type PubSub struct {
	mux         *sync.Mutex
	pid         uuid.UUID
	subscribers map[Topic]map[uuid.UUID]chan Msg
}

// NewPublisher returns a PubSub publishing under the given PID.
func NewPublisher(pid uuid.UUID) *PubSub {
	return &PubSub{
		mux:         &sync.Mutex{},
		pid:         pid,
		subscribers: make(map[Topic]map[uuid.UUID]chan Msg),
	}
}

// PID returns the publishing component's process id.
func (p *PubSub) PID() uuid.UUID {
	return p.pid
}

// Subscribe returns a channel on which the topic is broadcast. One channel is
// issued per (subscriber, topic) pair; the channel is buffered so a slow
// subscriber does not stall the publisher until the buffer fills.
func (p *PubSub) Subscribe(pid uuid.UUID, topic Topic) (<-chan Msg, error) {
	p.mux.Lock()
	defer p.mux.Unlock()

	subs, ok := p.subscribers[topic]
	if !ok {
		subs = make(map[uuid.UUID]chan Msg)
		p.subscribers[topic] = subs
	}
	if _, ok := subs[pid]; ok {
		return nil, fmt.Errorf("pubsub %v: %v already subscribed to %v", p.pid, pid, topic)
	}

	ch := make(chan Msg, subscriberBuffer)
	subs[pid] = ch
	return ch, nil
}

// Unsubscribe closes and removes pid's channels on every topic.
func (p *PubSub) Unsubscribe(pid uuid.UUID) {
	p.mux.Lock()
	defer p.mux.Unlock()

	for _, subs := range p.subscribers {
		if ch, ok := subs[pid]; ok {
			close(ch)
			delete(subs, pid)
		}
	}
}

// Publish broadcasts a payload on a topic under the publisher's own PID.
func (p *PubSub) Publish(topic Topic, payload interface{}) {
	p.Forward(New(p.pid, topic, payload))
}

// Forward rebroadcasts a message, keeping the original sender's PID.
func (p *PubSub) Forward(m Msg) {
	p.mux.Lock()
	defer p.mux.Unlock()

	for _, ch := range p.subscribers[m.Topic()] {
		ch <- m
	}
}

// Stop closes every subscriber channel. Subscribers read the close as the
// end of the stream.
func (p *PubSub) Stop() {
	p.mux.Lock()
	defer p.mux.Unlock()

	for topic, subs := range p.subscribers {
		for pid, ch := range subs {
			close(ch)
			delete(subs, pid)
		}
		delete(p.subscribers, topic)
	}
}
