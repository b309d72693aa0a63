package vault

import (
	"github.com/tidewater-labs/submarine"
	"github.com/tidewater-labs/submarine/errors"
)

// ScheduleTicker evaluates the fee schedule of every stored vault. It
// implements submarine.Ticker so the hosting environment can run all
// schedules at a block boundary, without enumerating vault IDs.
type ScheduleTicker struct {
	control Controller
}

var _ submarine.Ticker = ScheduleTicker{}

// NewScheduleTicker returns a ticker running all vault schedules with
// the given controller.
func NewScheduleTicker(control Controller) ScheduleTicker {
	return ScheduleTicker{control: control}
}

// Tick walks all vaults and evaluates each schedule in its own cache.
// A vault that fails is rolled back and skipped, the others still
// run. The height must be present in the context.
func (t ScheduleTicker) Tick(ctx submarine.Context, db submarine.CacheableKVStore) (*submarine.TickResult, error) {
	height, ok := submarine.GetHeight(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrState, "height not in context")
	}

	vaultIDs, err := listVaultIDs(db)
	if err != nil {
		return nil, err
	}

	logger := submarine.GetLogger(ctx)
	result := &submarine.TickResult{}
	for _, vaultID := range vaultIDs {
		cache := db.CacheWrap()
		paid, err := t.control.RunSchedule(cache, vaultID, height)
		if err != nil {
			cache.Discard()
			logger.Warn().
				Err(err).
				Hex("vault_id", vaultID).
				Int64("height", height).
				Msg("vault schedule failed, skipping")
			continue
		}
		if err := cache.Write(); err != nil {
			return result, errors.Wrap(err, "cannot write cache")
		}
		if paid {
			result.Paid = true
			tags, err := withFeeTags(result.Tags, true, db, t.control, vaultID, height)
			if err != nil {
				return result, err
			}
			result.Tags = tags
		}
	}
	return result, nil
}

// listVaultIDs returns the IDs of all stored vaults in creation order.
func listVaultIDs(db submarine.ReadOnlyKVStore) ([][]byte, error) {
	prefix := []byte(BucketName + ":")
	it, err := db.Iterator(prefix, prefixEnd(prefix))
	if err != nil {
		return nil, errors.Wrap(err, "cannot iterate vaults")
	}
	defer it.Close()

	var vaultIDs [][]byte
	for ; it.Valid(); it.Next() {
		key := it.Key()
		vaultIDs = append(vaultIDs, append([]byte{}, key[len(prefix):]...))
	}
	return vaultIDs, nil
}

// prefixEnd returns the key right after all keys with this prefix.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	// entire prefix is 0xff, iterate to the very end
	return nil
}
