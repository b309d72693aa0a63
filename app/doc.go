/*
Package app assembles handlers into an executable stack: a message
router plus a chain of decorators providing panic recovery, per
operation savepoints and request logging.
*/
package app
