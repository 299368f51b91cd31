// Package mastodon posts statuses to a Mastodon instance over its REST
// API using an access token.
package mastodon
