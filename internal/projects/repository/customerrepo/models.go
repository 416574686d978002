package customerrepo

import "errors"

var (
	ErrNotFound = errors.New("customer not found")
	ErrInUse    = errors.New("customer is referenced by projects")
)

type ListCustomersRequest struct {
	ID     *int64
	Search string
	Offset int
	Limit  int
}
