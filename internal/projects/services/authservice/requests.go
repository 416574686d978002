package authservice

type RegisterRequest struct {
	Username  string `json:"username"   validate:"required,alphanum,min=3,max=64"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"max=128"` //nolint:tagliatelle
	LastName  string `json:"last_name"  validate:"max=128"` //nolint:tagliatelle
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`              //nolint:tagliatelle
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"` //nolint:tagliatelle
}
