package parameterservice

import "time"

type ListParametersRequest struct {
	Key     string
	ValidAt *time.Time
	Offset  int `validate:"min=0"`
	Limit   int `validate:"min=0,max=500"`
}

// ParameterRequest with a nil ValidFrom starts now, a nil ValidTo is open ended.
type ParameterRequest struct {
	Key         string     `json:"key"         validate:"required,max=128,excludesall= "`
	Value       string     `json:"value"`
	Description string     `json:"description"`
	ValidFrom   *time.Time `json:"valid_from"` //nolint:tagliatelle
	ValidTo     *time.Time `json:"valid_to"`   //nolint:tagliatelle
}
