package submarine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tidewater-labs/submarine/errors"
)

type testMsg struct {
	Value string
	Err   error
}

func (m *testMsg) Path() string    { return "test/msg" }
func (m *testMsg) Validate() error { return m.Err }

type otherMsg struct{}

func (m *otherMsg) Path() string    { return "test/other" }
func (m *otherMsg) Validate() error { return nil }

type testTx struct {
	msg Msg
	err error
}

func (tx *testTx) GetMsg() (Msg, error) { return tx.msg, tx.err }

func TestLoadMsg(t *testing.T) {
	var dest testMsg
	tx := &testTx{msg: &testMsg{Value: "hello"}}
	assert.NoError(t, LoadMsg(tx, &dest))
	assert.Equal(t, "hello", dest.Value)
}

func TestLoadMsgErrors(t *testing.T) {
	cases := map[string]struct {
		tx      Tx
		dest    Msg
		wantErr *errors.Error
	}{
		"transaction failure": {
			tx:      &testTx{err: errors.ErrDatabase},
			dest:    &testMsg{},
			wantErr: errors.ErrDatabase,
		},
		"no message": {
			tx:      &testTx{},
			dest:    &testMsg{},
			wantErr: errors.ErrState,
		},
		"invalid message": {
			tx:      &testTx{msg: &testMsg{Err: errors.ErrAmount}},
			dest:    &testMsg{},
			wantErr: errors.ErrAmount,
		},
		"wrong destination type": {
			tx:      &testTx{msg: &testMsg{}},
			dest:    &otherMsg{},
			wantErr: errors.ErrType,
		},
		"nil destination": {
			tx:      &testTx{msg: &testMsg{}},
			dest:    (*testMsg)(nil),
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := LoadMsg(tc.tx, tc.dest)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %q, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "test/msg", GetPath(&testTx{msg: &testMsg{}}))
	assert.Equal(t, "(missing)", GetPath(&testTx{}))
	assert.Equal(t, "(missing)", GetPath(&testTx{err: errors.ErrDatabase}))
}
