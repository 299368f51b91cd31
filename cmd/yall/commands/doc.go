// Package commands defines the yall CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init           Create the config directory and credential store
//   - keygen         Generate a nostr keypair (hex and bech32)
//   - account add    Store credentials for a platform account
//   - account list   Show stored accounts
//   - account remove Delete a stored account
//   - relay test     Probe the configured relays
//   - post           Publish content to selected platforms
//   - upload         Push a media file to the Blossom server
//
// # Implementation
//
// The root command builds a dependency graph (credential store, platform
// services, post orchestrator) before any subcommand runs, so handlers can
// use a shared app context with timeouts and connection pooling.
package commands
