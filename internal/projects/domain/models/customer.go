package models

import "time"

type Customer struct {
	ID        int64     `json:"customer_id"` //nolint:tagliatelle
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"` //nolint:tagliatelle
	UpdatedAt time.Time `json:"updated_at"` //nolint:tagliatelle
}
