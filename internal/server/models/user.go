package models

// User is a registered customer. Email is unique and compared exactly as
// stored; Username is derived from the email local part at signup.
type User struct {
	ID             int64
	Email          string
	HashedPassword string
	Username       string
}
