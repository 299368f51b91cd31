// Package app wires application dependencies for the CLI.
//
// It builds the concrete stores, platform services and the post
// orchestrator from Config, exposing them via the Wire struct for
// commands to use.
package app
