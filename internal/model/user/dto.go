package user

import (
	"github.com/deppfellow/photogram/internal/validation"
)

// ------------------------------------------------------------

type CreateUserRequest struct {
	Login    string  `json:"login" validate:"required,min=3,max=32,alphanum"`
	Password string  `json:"password" validate:"required,min=6,maxbytes=72"`
	Email    *string `json:"email" validate:"omitempty,email,max=254"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=64"`
}

func (r *CreateUserRequest) Validate() error {
	return validation.Struct(r)
}

// ------------------------------------------------------------

type UpdateUserRequest struct {
	Login    *string `json:"login" validate:"omitempty,min=3,max=32,alphanum"`
	Password *string `json:"password" validate:"omitempty,min=6,maxbytes=72"`
	Email    *string `json:"email" validate:"omitempty,email,max=254"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=64"`
}

func (r *UpdateUserRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}

	if r.Login == nil && r.Password == nil && r.Email == nil && r.Name == nil {
		return validation.CustomValidationErrors{
			{Field: "body", Message: "must contain at least one of: login, password, email, name"},
		}
	}

	return nil
}
