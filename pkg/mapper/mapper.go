// Package mapper turns the inbound form payloads of the supported form
// platforms into a models.Contact.
package mapper

import (
	"fmt"
	"strconv"
	"strings"

	"pipedrive-webhook/pkg/models"
)

// Variant identifies which inbound schema a submission follows
type Variant string

const (
	// {"data": {"name", "email_address", "contact_number", "preferred_call_time"}}
	VariantFlatEmailAddress Variant = "flat_email_address"
	// {"data": {"name", "email", "contact_number", "preferred_contact_time"}}
	VariantFlatEmail Variant = "flat_email"
	// {"payload": {"data": {"Name", "Email", "number", "Number 2"}}}
	VariantNested Variant = "nested"
	VariantUnknown Variant = "unknown"
)

// adapter lists, per canonical field, the source keys tried in order
type adapter struct {
	name      []string
	email     []string
	phone     []string
	preferred []string
}

var adapters = map[Variant]adapter{
	VariantFlatEmailAddress: {
		name:      []string{"name"},
		email:     []string{"email_address", "email"},
		phone:     []string{"contact_number"},
		preferred: []string{"preferred_call_time", "preferred_contact_time"},
	},
	VariantFlatEmail: {
		name:      []string{"name"},
		email:     []string{"email"},
		phone:     []string{"contact_number"},
		preferred: []string{"preferred_contact_time", "preferred_call_time"},
	},
	VariantNested: {
		name:      []string{"Name", "name"},
		email:     []string{"Email", "email"},
		phone:     []string{"number", "Number 2", "Phone"},
		preferred: []string{"Preferred Contact Time", "Preferred Call Time", "preferred_contact_time"},
	},
}

// Detect picks the adapter for a submission from the shape of its envelope.
func Detect(sub models.Submission) Variant {
	if payload, ok := object(sub["payload"]); ok {
		if _, ok := object(payload["data"]); ok {
			return VariantNested
		}
	}

	data, ok := object(sub["data"])
	if !ok {
		return VariantUnknown
	}
	if _, ok := data["email_address"]; ok {
		return VariantFlatEmailAddress
	}
	return VariantFlatEmail
}

// Map normalizes a submission. An unrecognized submission maps to an empty
// contact, which Validate rejects.
func Map(sub models.Submission) (Variant, models.Contact) {
	variant := Detect(sub)

	contact := models.Contact{PreferredContactTime: models.NotSpecified}
	a, ok := adapters[variant]
	if !ok {
		return variant, contact
	}

	fields := fieldsOf(sub, variant)
	contact.Name = lookup(fields, a.name)
	contact.Email = lookup(fields, a.email)
	contact.Phone = lookup(fields, a.phone)
	if preferred := lookup(fields, a.preferred); preferred != "" {
		contact.PreferredContactTime = preferred
	}

	return variant, contact
}

// ValidationError names the required fields that were missing after mapping
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Validate checks that name, email and phone are present.
func Validate(contact models.Contact) error {
	var missing []string
	if contact.Name == "" {
		missing = append(missing, "name")
	}
	if contact.Email == "" {
		missing = append(missing, "email")
	}
	if contact.Phone == "" {
		missing = append(missing, "phone")
	}

	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

func fieldsOf(sub models.Submission, variant Variant) map[string]interface{} {
	if variant == VariantNested {
		payload, _ := object(sub["payload"])
		data, _ := object(payload["data"])
		return data
	}
	data, _ := object(sub["data"])
	return data
}

func object(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case models.Submission:
		return m, true
	}
	return nil, false
}

func lookup(fields map[string]interface{}, keys []string) string {
	for _, key := range keys {
		if value := stringify(fields[key]); value != "" {
			return value
		}
	}
	return ""
}

// stringify accepts the scalar types form builders send; phone numbers in
// particular sometimes arrive as JSON numbers.
func stringify(v interface{}) string {
	switch value := v.(type) {
	case string:
		return strings.TrimSpace(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return ""
	}
}
