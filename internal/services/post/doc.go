// Package post orchestrates publishing a single piece of content to
// several platform accounts at once, collecting per-target outcomes.
package post
