package vault

import (
	"encoding/binary"
	"encoding/json"

	"github.com/tidewater-labs/submarine"
	"github.com/tidewater-labs/submarine/coin"
	"github.com/tidewater-labs/submarine/errors"
)

// BucketName is where we store the vaults
const BucketName = "vault"

// Vault is a custodial store of value with an attached fee schedule.
// Funds held by a vault live in the cash ledger under the vault
// condition address, so the usual ledger arithmetic applies.
type Vault struct {
	// Owner is the only identity allowed to withdraw or tick. It is
	// fixed at creation, there is no ownership transfer.
	Owner submarine.Address `json:"owner"`

	// FeeCollector receives the recurring fee payments.
	FeeCollector submarine.Address `json:"fee_collector"`

	// FeeInterval is the number of blocks between two fee payments.
	FeeInterval int64 `json:"fee_interval"`

	// FeeTicker is the currency the fee is paid in.
	FeeTicker string `json:"fee_ticker"`

	// LastPaymentMark is the block height of the most recent fee
	// payment. Zero means no payment was made yet, so the schedule
	// counts from height zero.
	LastPaymentMark int64 `json:"last_payment_mark"`
}

// FeeAmount returns the fixed fee payment: one whole unit of the vault
// currency.
func (v *Vault) FeeAmount() coin.Coin {
	return coin.NewCoin(1, 0, v.FeeTicker)
}

// NextDue returns the first height at which the next fee payment is
// due.
func (v *Vault) NextDue() int64 {
	return v.LastPaymentMark + v.FeeInterval
}

// Validate ensures the vault configuration is sensible.
func (v *Vault) Validate() error {
	var err error
	err = errors.Append(err, errors.Field("Owner", v.Owner.Validate(), "invalid owner"))
	if len(v.FeeCollector) == 0 {
		err = errors.Append(err, errors.Field("FeeCollector", ErrInvalidCollector, "empty collector"))
	} else {
		err = errors.Append(err, errors.Field("FeeCollector", v.FeeCollector.Validate(), "invalid collector"))
	}
	if v.FeeInterval <= 0 {
		err = errors.Append(err, errors.Field("FeeInterval", ErrInvalidInterval, "must be greater than zero"))
	}
	if !coin.IsCC(v.FeeTicker) {
		err = errors.Append(err, errors.Field("FeeTicker", errors.ErrCurrency, "invalid ticker"))
	}
	if v.LastPaymentMark < 0 {
		err = errors.Append(err, errors.Field("LastPaymentMark", errors.ErrState, "must not be negative"))
	}
	return err
}

// Condition returns the condition the vault funds are held under.
func Condition(vaultID []byte) submarine.Condition {
	return submarine.NewCondition("vault", "seq", vaultID)
}

// Bucket is the persistence layer of vaults, keyed by an 8 byte
// sequence value. A secondary index maps the treasury address of each
// vault back to its ID.
type Bucket struct {
	prefix  []byte
	addrIdx []byte
	idSeq   Sequence
}

// NewBucket initializes a vault.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		prefix:  []byte(BucketName + ":"),
		addrIdx: []byte("_i." + BucketName + "_address:"),
		idSeq:   NewSequence(BucketName, "id"),
	}
}

func (b Bucket) dbKey(vaultID []byte) []byte {
	return append(append([]byte{}, b.prefix...), vaultID...)
}

func (b Bucket) idxKey(addr submarine.Address) []byte {
	return append(append([]byte{}, b.addrIdx...), addr...)
}

// Create persists the vault under the next free sequence value and
// returns the assigned ID. The treasury address of the vault is
// indexed so incoming transfers can be resolved back to the vault.
func (b Bucket) Create(db submarine.KVStore, v *Vault) ([]byte, error) {
	vaultID, err := b.idSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire ID")
	}
	if err := b.Save(db, vaultID, v); err != nil {
		return nil, err
	}
	addr := Condition(vaultID).Address()
	if err := db.Set(b.idxKey(addr), vaultID); err != nil {
		return nil, errors.Wrap(err, "cannot index vault address")
	}
	return vaultID, nil
}

// ByAddress returns the ID of the vault whose treasury is the given
// address, or ErrNotFound for an address no vault holds funds under.
func (b Bucket) ByAddress(db submarine.ReadOnlyKVStore, addr submarine.Address) ([]byte, error) {
	raw, err := db.Get(b.idxKey(addr))
	if err != nil {
		return nil, errors.Wrap(err, "cannot load address index")
	}
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "no vault at %s", addr)
	}
	return raw, nil
}

// Get returns the vault with the given ID, or ErrNotFound.
func (b Bucket) Get(db submarine.ReadOnlyKVStore, vaultID []byte) (*Vault, error) {
	raw, err := db.Get(b.dbKey(vaultID))
	if err != nil {
		return nil, errors.Wrap(err, "cannot load vault")
	}
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "vault %x", vaultID)
	}
	var v Vault
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot decode vault: %s", err)
	}
	return &v, nil
}

// Save persists the vault under the given ID.
func (b Bucket) Save(db submarine.KVStore, vaultID []byte, v *Vault) error {
	if err := v.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot encode vault: %s", err)
	}
	return errors.Wrap(db.Set(b.dbKey(vaultID), raw), "cannot store vault")
}

// Sequence maintains a counter and generates a series of keys. Each
// key is greater than the last, both as int and under bytes.Compare.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. The counter state is stored
// under the key _s.<bucket>:<name>.
func NewSequence(bucket, name string) Sequence {
	return Sequence{
		id: []byte("_s." + bucket + ":" + name),
	}
}

// NextVal increments the sequence and returns its state as 8 bytes.
func (s Sequence) NextVal(db submarine.KVStore) ([]byte, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return nil, err
	}
	val := decodeSequence(raw) + 1
	raw = encodeSequence(val)
	if err := db.Set(s.id, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func decodeSequence(raw []byte) int64 {
	if raw == nil {
		return 0
	}
	return int64(binary.BigEndian.Uint64(raw))
}

func encodeSequence(val int64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(val))
	return raw
}
