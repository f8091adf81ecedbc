package dto

import (
	"strings"
	"time"
)

// CreateUserRequest entrada para registrar un vendedor (password en texto, se hashea en el use case).
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	LastName string `json:"lastName" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Normalize recorta espacios de los campos de texto.
func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// LoginRequest entrada para authenticateUser.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Normalize deja el email como se guardó en el registro.
func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// TokenResponse salida de authenticateUser.
type TokenResponse struct {
	Token string `json:"token"`
}
