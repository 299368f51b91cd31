// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (accounts, results, error kinds) and contracts
// (interfaces) only.
package domain
