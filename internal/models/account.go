package models

// Account is a registered user of the local journal.
type Account struct {
	ID    int64
	Name  string
	Login string

	// Password holds the encoded credential verifier, never the plaintext.
	Password string
}
