// Package models holds the records exchanged between the authenticator, the
// user directory and the transport layer. Values are copies: the directory
// owns the stored records.
package models

import "time"

// User is the identity record. ID is assigned by the directory.
type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
}

// Account is a credential joined with its owning user. Hash is the stored
// one-way hash; plaintext secrets never reach this type.
type Account struct {
	User User
	Hash string
}

// AuthResult is returned by registration and login.
type AuthResult struct {
	User  User
	Token string
}
