/*
Package cash defines a simple ledger of wallets, keyed by address.

It is the value-transfer collaborator used by the other extensions:
moving coins between two wallets either fully succeeds or fails with
no state change. Minting (issuing) coins is exposed for genesis
initialization and tests.
*/
package cash
