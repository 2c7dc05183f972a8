package entity

import "time"

// ContactMessage is a message submitted through the public contact
// form. Status tracks the support workflow, starting at "new".
type ContactMessage struct {
	ID        string
	Name      string
	LastName  string
	Email     string
	Phone     string
	Subject   string
	Message   string
	Status    string
	CreatedAt time.Time
}
