package models

import "time"

// User is a row in the PostgreSQL users table. Email is the primary identity
// and is stored lowercase/trimmed. Password only ever holds the argon2id hash.
type User struct {
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	Password     string    `json:"-"` // never serialized
	CreationDate time.Time `json:"creation_date"`
}

// Address is the one-to-one address row created alongside a User during
// registration. Country is mandatory, city and street are optional.
type Address struct {
	Email   string `json:"email"`
	Country string `json:"country"`
	City    string `json:"city,omitempty"`
	Street  string `json:"street,omitempty"`
}
