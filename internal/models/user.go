package models

// User represents the operator account.
//
// Users are provisioned outside the interactive session; the contact book only reads
// them at login and rewrites PasswordHash when the operator changes their password.
type User struct {
	// Username is the unique login name.
	Username string

	// PasswordHash is the self-describing encoded hash:
	// algorithm$iterations$saltHex$hashHex.
	PasswordHash string
}
