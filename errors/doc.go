/*
Package errors implements the coded error kernel used across the
module.

The idea is to reuse as many root errors from this package as possible
and define custom package errors only when necessary. Each extension
registers its own error codes in its own code range, so that a client
can distinguish error classes without parsing messages.

Create errors at the point of failure using Wrap or a root error's
New/Newf method, so that a stack trace is attached exactly once, at
the lowest frame. Test errors with the root's Is method:

	if ErrNotFound.Is(err) { ... }

Once you have an error, you can use fmt verbs to get more context:

	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
