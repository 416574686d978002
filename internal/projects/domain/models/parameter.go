package models

import "time"

// Parameter is a key/value setting valid in [ValidFrom, ValidTo). A nil ValidTo is open ended.
type Parameter struct {
	ID          int64      `json:"parameter_id"` //nolint:tagliatelle
	Key         string     `json:"key"`
	Value       string     `json:"value"`
	Description string     `json:"description"`
	ValidFrom   time.Time  `json:"valid_from"` //nolint:tagliatelle
	ValidTo     *time.Time `json:"valid_to"`   //nolint:tagliatelle
	CreatedAt   time.Time  `json:"created_at"` //nolint:tagliatelle
	UpdatedAt   time.Time  `json:"updated_at"` //nolint:tagliatelle
}

func (p Parameter) ValidAt(t time.Time) bool {
	if t.Before(p.ValidFrom) {
		return false
	}

	return p.ValidTo == nil || t.Before(*p.ValidTo)
}

// Overlaps reports whether both parameters share a key and an instant of validity.
func (p Parameter) Overlaps(o Parameter) bool {
	if p.Key != o.Key {
		return false
	}

	if p.ValidTo != nil && !o.ValidFrom.Before(*p.ValidTo) {
		return false
	}

	if o.ValidTo != nil && !p.ValidFrom.Before(*o.ValidTo) {
		return false
	}

	return true
}
