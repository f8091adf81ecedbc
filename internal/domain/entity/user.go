package entity

import "time"

// User representa a un vendedor del CRM. Es dueño de sus Clients y Orders.
type User struct {
	ID           string
	Name         string
	LastName     string
	Email        string // único
	PasswordHash string // bcrypt hash, nunca se expone
	CreatedAt    time.Time
}
