/*
Package keeper runs a background service that periodically evaluates
vault fee schedules.

Vault fees are only paid when something triggers an evaluation. A
vault that sees no deposits or withdrawals would never pay, so a
keeper watches a set of vaults and delivers a run_schedule message for
each of them on a fixed cadence. Anyone can run a keeper, the message
requires no signer.
*/
package keeper
