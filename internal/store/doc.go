// Package store provides the encrypted file-backed secret store the account
// layer persists credentials through. The core only ever sees the
// get/set/delete contract; this is the concrete provider the CLI wires in.
package store
