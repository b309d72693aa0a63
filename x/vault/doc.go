/*
Package vault implements custodial value vaults with a recurring fee
schedule.

A vault holds funds on behalf of a single owner. Attached to every
vault is a fee schedule: a fixed collector address receives one whole
unit of the vault currency once per configured block interval, funded
from the vault balance. The schedule is evaluated after every deposit
and withdrawal, and can be triggered explicitly by the owner (tick) or
by anyone (run_schedule) so that external keepers can enforce on-time
payment. Plain transfers into a vault treasury are implicit deposits:
the ReceiveDecorator resolves the destination back to its vault and
evaluates the schedule there too.

A fee that is not due, or due but not affordable, is a silent no-op.
A fee that is due and affordable advances the schedule mark and
transfers the payment in one atomic unit.
*/
package vault
