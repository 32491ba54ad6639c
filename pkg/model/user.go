package model

// User mirrors a row in the hosted users table.
type User struct {
	ID           string `json:"id,omitempty"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash,omitempty"`
	IsAdmin      bool   `json:"is_admin"`
	CreatedAt    string `json:"created_at,omitempty"`
	LastLogin    string `json:"last_login,omitempty"`
}

type SignupInput struct {
	Email    string `json:"email" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ProfileUpdate struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}
