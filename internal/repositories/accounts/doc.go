// Package accounts persists local user accounts. Logins are unique across
// the store; the password column holds an encoded verifier, never plaintext.
package accounts
