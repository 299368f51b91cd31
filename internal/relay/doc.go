// Package relay publishes signed events to relay servers over websocket
// connections.
//
// Every operation opens its own short-lived connection so one slow or
// unreachable relay can never block another. PublishToAll fans out
// concurrently and treats the relay set as redundant: one acceptance makes
// the publish a success, and each relay's failure is recorded independently.
// Every network wait carries a deadline.
package relay
