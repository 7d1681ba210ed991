package model

import "time"

type User struct {
	ID           int64     `json:"id"`
	Firstname    string    `json:"firstname"`
	Fullname     string    `json:"fullname"`
	Lastname     string    `json:"lastname"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserIdentity is the claim payload embedded in a bearer token. It is a
// snapshot taken at issuance time; the referenced user may be updated or
// deleted while a token carrying it is still unexpired.
type UserIdentity struct {
	ID       int64  `json:"id"`
	Fullname string `json:"fullname"`
	Lastname string `json:"lastname"`
}
