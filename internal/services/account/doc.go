// Package account manages the saved accounts behind the secret-store
// contract. Accounts are immutable values: updates replace the stored copy
// wholesale.
package account
