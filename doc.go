/*
Package submarine defines the common interfaces that tie the
subpackages together, as well as implementations of the simpler
shared components (where interfaces would be too much overhead).

The root package carries no business logic. It declares the identity
model (Address, Condition), the storage contracts implemented by the
store package, the message/handler contracts implemented by the
extensions under x/, and the context helpers used to pass
environment-provided values (block height, chain id, logger) between
layers.

We pass context through context.Context between the hosting
environment, middleware, and handlers. For every value XYZ of type T
supported in Context there are two functions:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)
*/
package submarine
