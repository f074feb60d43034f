package models

import (
	"bytes"
	"errors"
	"strings"
)

// EntityID is an id exactly as Pipedrive returned it. Persons use numeric ids
// while leads use UUID strings, so the JSON literal is kept verbatim.
type EntityID string

// UnmarshalJSON stores the raw literal, rejecting null.
func (id *EntityID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return errors.New("entity id is null")
	}
	*id = EntityID(b)
	return nil
}

// MarshalJSON writes the literal back unchanged.
func (id EntityID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	return []byte(id), nil
}

func (id EntityID) String() string {
	return strings.Trim(string(id), `"`)
}

// ContactValue is one entry of Pipedrive's multi-value email/phone fields
type ContactValue struct {
	Value   string `json:"value"`
	Primary bool   `json:"primary"`
}

type PersonRequest struct {
	Name  string         `json:"name"`
	Email []ContactValue `json:"email"`
	Phone []ContactValue `json:"phone"`
}

type LeadValue struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type LeadRequest struct {
	Title    string    `json:"title"`
	PersonID EntityID  `json:"person_id"`
	Value    LeadValue `json:"value"`
	Status   string    `json:"status"`
	Label    string    `json:"label"`
}

type NoteRequest struct {
	Content string   `json:"content"`
	LeadID  EntityID `json:"lead_id"`
}

// CreateResponse is the part of Pipedrive's create response we read
type CreateResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		ID *EntityID `json:"id"`
	} `json:"data"`
}
