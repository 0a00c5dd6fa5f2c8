package natshandler

import (
	"testing"

	"github.com/eperlab/res_core/internal/pkg/msg"
	"github.com/eperlab/res_core/internal/pkg/res"
	"github.com/google/uuid"
	nats "github.com/nats-io/nats.go"
	"gotest.tools/v3/assert"
)

func newHandler() (Handler, error) {
	pid, _ := uuid.NewUUID()
	pub := msg.NewPublisher(pid)
	return New("./nats_config_test.json", pub)
}

func TestGetConfig(t *testing.T) {
	h, err := newHandler()
	assert.NilError(t, err)
	assert.Equal(t, h.config.Server, "nats://localhost:4222")
	assert.Assert(t, h.PID() != uuid.UUID{})
}

func TestRuntimeConfig(t *testing.T) {
	pid, _ := uuid.NewUUID()
	pub := msg.NewPublisher(pid)

	h, err := New("../../../../config/datastreams/nats.json", pub)
	assert.NilError(t, err)
	assert.Equal(t, h.config.Server, "nats://localhost:4222")
}

func TestDefaultServer(t *testing.T) {
	pid, _ := uuid.NewUUID()
	pub := msg.NewPublisher(pid)

	_, err := New("./no_such_config.json", pub)
	assert.Assert(t, err != nil)

	h, err := New("./empty_config_test.json", pub)
	assert.NilError(t, err)
	assert.Equal(t, h.config.Server, nats.DefaultURL)
}

func TestSubject(t *testing.T) {
	pid, _ := uuid.NewUUID()

	tech := res.NewTechnology("REF", "ARG", "UPS001")
	m := msg.New(pid, msg.Status, *tech)
	assert.Equal(t, subject(m), "res.ARG.REF")

	m = msg.New(pid, msg.Status, 42.0)
	assert.Equal(t, subject(m), pid.String())
}

func TestHandlerReceivesBroadcast(t *testing.T) {
	pid, _ := uuid.NewUUID()
	pub := msg.NewPublisher(pid)

	h, err := New("./nats_config_test.json", pub)
	assert.NilError(t, err)

	tech := res.NewTechnology("PWR", "BRA", "UPS003")
	pub.Publish(msg.Status, *tech)

	m := <-h.inbox
	assert.Equal(t, m.Payload().(res.Technology).Code, "PWR")
	assert.Equal(t, subject(m), "res.BRA.PWR")
}
