package models

import "time"

type Role string

const (
	RoleUser           Role = "ROLE_USER"
	RoleCustomer       Role = "ROLE_CUSTOMER"
	RoleEmployee       Role = "ROLE_EMPLOYEE"
	RoleProjectManager Role = "ROLE_PROJECT_MANAGER"
	RoleAdmin          Role = "ROLE_ADMIN"
	RoleSuperAdmin     Role = "ROLE_SUPER_ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleCustomer, RoleEmployee, RoleProjectManager, RoleAdmin, RoleSuperAdmin:
		return true
	}

	return false
}

type User struct {
	ID           int64      `json:"user_id"` //nolint:tagliatelle
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"first_name"` //nolint:tagliatelle
	LastName     string     `json:"last_name"`  //nolint:tagliatelle
	Role         Role       `json:"role"`
	CustomerID   *int64     `json:"customer_id"`   //nolint:tagliatelle
	Active       bool       `json:"is_active"`     //nolint:tagliatelle
	LastLoginAt  *time.Time `json:"last_login_at"` //nolint:tagliatelle
	CreatedAt    time.Time  `json:"created_at"`    //nolint:tagliatelle
	UpdatedAt    time.Time  `json:"updated_at"`    //nolint:tagliatelle
}

// Principal is the authenticated caller of an operation.
type Principal struct {
	UserID     int64  `json:"user_id"` //nolint:tagliatelle
	Username   string `json:"username"`
	Role       Role   `json:"role"`
	CustomerID *int64 `json:"customer_id,omitempty"` //nolint:tagliatelle
	TokenID    string `json:"-"`
}

func (u User) Principal() Principal {
	return Principal{
		UserID:     u.ID,
		Username:   u.Username,
		Role:       u.Role,
		CustomerID: u.CustomerID,
	}
}
