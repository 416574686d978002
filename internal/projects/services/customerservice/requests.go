package customerservice

type ListCustomersRequest struct {
	Search string
	Offset int `validate:"min=0"`
	Limit  int `validate:"min=0,max=500"`
}

type CustomerRequest struct {
	Name    string `json:"name"    validate:"required,max=255"`
	Email   string `json:"email"   validate:"omitempty,email"`
	Phone   string `json:"phone"   validate:"max=32"`
	Address string `json:"address" validate:"max=512"`
	Notes   string `json:"notes"`
}
