package sqldb

import (
	"testing"

	"github.com/eperlab/res_core/internal/pkg/msg"
	"github.com/eperlab/res_core/internal/pkg/res"
	"github.com/google/uuid"
	"gotest.tools/v3/assert"
)

func newHandler() (Handler, error) {
	pid, _ := uuid.NewUUID()
	pub := msg.NewPublisher(pid)
	return New("./db_config_test.json", pub)
}

func TestGetConfig(t *testing.T) {
	h, err := newHandler()
	assert.NilError(t, err)

	assert.Equal(t, h.config.Port, 3306)
	assert.Equal(t, h.config.Server, "localhost")
}

// the config shipped for the pipeline binary must parse the same way the
// local fixture does
func TestRuntimeConfig(t *testing.T) {
	pid, _ := uuid.NewUUID()
	pub := msg.NewPublisher(pid)

	h, err := New("../../../../config/datastreams/sqldb.json", pub)
	assert.NilError(t, err)
	assert.Equal(t, h.config.Port, 3306)
	assert.Equal(t, h.dsn(), "res:res@tcp(localhost:3306)/res_core")
}

func TestDSN(t *testing.T) {
	h, err := newHandler()
	assert.NilError(t, err)

	assert.Equal(t, h.dsn(), "res:res@tcp(localhost:3306)/res_core")
}

func TestDatabaseConnection(t *testing.T) {
	h, _ := newHandler()
	db, err := h.DB()
	assert.NilError(t, err)
	defer db.Close()
}

func TestFlowRows(t *testing.T) {
	tech := res.NewTechnology("REF", "ARG", "UPS001")
	assert.NilError(t, tech.AddInFuel(res.NewFuel("CRU", "ARG")))
	assert.NilError(t, tech.AddOutFuel(res.NewFuel("GAS", "ARG")))
	if f, ok := tech.InFuel("CRU"); ok {
		f.EnergyPJ = 35.0
	}

	pid, _ := uuid.NewUUID()
	rows, err := flowRows(msg.New(pid, msg.Status, *tech))
	assert.NilError(t, err)
	assert.Equal(t, len(rows), 2)

	assert.Equal(t, rows[0], flowRow{"ARGREFCRU", "ARG", "REF", "CRU", "in", 35.0})
	assert.Equal(t, rows[1], flowRow{"ARGREFGAS", "ARG", "REF", "GAS", "out", 0.0})
}

func TestFlowRowsRejectsForeignPayload(t *testing.T) {
	pid, _ := uuid.NewUUID()

	_, err := flowRows(msg.New(pid, msg.Status, 42.0))
	assert.Assert(t, err != nil)

	// unregistered codes cannot compose a label
	tech := res.NewTechnology("ZZZ", "ARG", "UPS001")
	assert.NilError(t, tech.AddInFuel(res.NewFuel("CRU", "ARG")))
	_, err = flowRows(msg.New(pid, msg.Status, *tech))
	assert.Assert(t, err != nil)
}

func TestHandlerReceivesBroadcast(t *testing.T) {
	pid, _ := uuid.NewUUID()
	pub := msg.NewPublisher(pid)

	h, err := New("./db_config_test.json", pub)
	assert.NilError(t, err)

	tech := res.NewTechnology("PWR", "BRA", "UPS003")
	assert.NilError(t, tech.AddOutFuel(res.NewFuel("ELC", "BRA")))
	pub.Publish(msg.Status, *tech)

	m := <-h.inbox
	rows, err := flowRows(m)
	assert.NilError(t, err)
	assert.Equal(t, rows[0].label, "BRAPWRELC")
}
