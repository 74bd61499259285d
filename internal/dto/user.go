package dto

import "github.com/noah-isme/school-inventory-api/internal/models"

// CreateUserRequest registers a new account.
type CreateUserRequest struct {
	Username string          `json:"username" validate:"required,max=100"`
	Password string          `json:"password" validate:"required,min=6"`
	FullName string          `json:"full_name" validate:"max=200"`
	Company  string          `json:"company" validate:"max=200"`
	Role     models.UserRole `json:"role" validate:"omitempty,oneof=user admin"`
}

// UpdateUserRequest edits the mutable profile fields of an account. Nil
// fields are left unchanged.
type UpdateUserRequest struct {
	FullName *string          `json:"full_name" validate:"omitempty,max=200"`
	Company  *string          `json:"company" validate:"omitempty,max=200"`
	Role     *models.UserRole `json:"role" validate:"omitempty,oneof=user admin"`
}
