package models

// User exists only for the lifetime of a session; there is no real verification behind it.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
