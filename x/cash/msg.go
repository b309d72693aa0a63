package cash

import (
	"github.com/tidewater-labs/submarine"
	"github.com/tidewater-labs/submarine/coin"
	"github.com/tidewater-labs/submarine/errors"
)

var _ submarine.Msg = (*SendMsg)(nil)

// SendMsg transfers coins from one account to another.
type SendMsg struct {
	Source      submarine.Address `json:"source"`
	Destination submarine.Address `json:"destination"`
	Amount      *coin.Coin        `json:"amount"`
	// Memo is a free-form message attached to the transfer.
	Memo string `json:"memo,omitempty"`
}

// Path returns the routing path for this message.
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible.
func (m *SendMsg) Validate() error {
	var err error
	if coin.IsEmpty(m.Amount) || !m.Amount.IsPositive() {
		err = errors.Append(err, errors.Field("Amount", errors.ErrAmount, "must be positive"))
	} else {
		err = errors.Append(err, errors.Field("Amount", m.Amount.Validate(), "invalid amount"))
	}
	err = errors.Append(err, errors.Field("Source", m.Source.Validate(), "invalid source"))
	err = errors.Append(err, errors.Field("Destination", m.Destination.Validate(), "invalid destination"))
	if len(m.Memo) > maxMemoSize {
		err = errors.Append(err, errors.Field("Memo", errors.ErrState, "memo too long"))
	}
	return err
}

const maxMemoSize = 128
