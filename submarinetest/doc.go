/*
Package submarinetest provides mocks and fakes for testing handlers and
controllers without a full application wired up.
*/
package submarinetest
