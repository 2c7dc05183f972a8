package entity

import "time"

type User struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string
	Password    string // bcrypt hash
	PhoneNumber string
	Address     string
	CreatedAt   time.Time
}
