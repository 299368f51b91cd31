// Package blossom uploads media blobs to a Blossom server, authorizing
// each upload with a signed nostr event.
package blossom
