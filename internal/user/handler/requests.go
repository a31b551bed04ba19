package handler

import "devconnect/pkg/validation"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Validate() []validation.Violation {
	var v validation.Result
	v.Require("name", r.Name, "Name is required")
	v.Email("email", r.Email, "Please include a valid email")
	v.MinLen("password", r.Password, 6, "Password must be at least 6 characters")
	return v.Violations()
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() []validation.Violation {
	var v validation.Result
	v.Email("email", r.Email, "Please include a valid email")
	v.Require("password", r.Password, "Password is required")
	return v.Violations()
}
