package app

import (
	"github.com/tidewater-labs/submarine"
)

// ChainInitializers lets you initialize many extensions with one
// function
func ChainInitializers(inits ...submarine.Initializer) submarine.Initializer {
	return chainInitializer{inits: inits}
}

type chainInitializer struct {
	inits []submarine.Initializer
}

var _ submarine.Initializer = chainInitializer{}

// FromGenesis will pass opts to all the initializers in the list, and
// returns the first error
func (c chainInitializer) FromGenesis(opts submarine.Options, db submarine.KVStore) error {
	for _, init := range c.inits {
		if init == nil {
			continue
		}
		if err := init.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
