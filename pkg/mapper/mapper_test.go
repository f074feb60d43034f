package mapper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipedrive-webhook/pkg/models"
)

func decode(t *testing.T, body string) models.Submission {
	t.Helper()
	var sub models.Submission
	require.NoError(t, json.Unmarshal([]byte(body), &sub))
	return sub
}

func TestMap_Variants(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		variant  Variant
		expected models.Contact
	}{
		{
			name:    "flat email_address",
			body:    `{"data":{"name":"Jane Doe","email_address":"jane@example.com","contact_number":"0400000000","preferred_call_time":"Morning"}}`,
			variant: VariantFlatEmailAddress,
			expected: models.Contact{
				Name: "Jane Doe", Email: "jane@example.com", Phone: "0400000000", PreferredContactTime: "Morning",
			},
		},
		{
			name:    "flat email",
			body:    `{"data":{"name":"Jane Doe","email":"jane@example.com","contact_number":"0400000000"}}`,
			variant: VariantFlatEmail,
			expected: models.Contact{
				Name: "Jane Doe", Email: "jane@example.com", Phone: "0400000000", PreferredContactTime: models.NotSpecified,
			},
		},
		{
			name:    "nested payload",
			body:    `{"payload":{"data":{"Name":"  Jane Doe ","Email":"jane@example.com","number":"","Number 2":"0400000000"}}}`,
			variant: VariantNested,
			expected: models.Contact{
				Name: "Jane Doe", Email: "jane@example.com", Phone: "0400000000", PreferredContactTime: models.NotSpecified,
			},
		},
		{
			name:    "numeric phone",
			body:    `{"payload":{"data":{"Name":"Jane","Email":"jane@example.com","number":61400000000}}}`,
			variant: VariantNested,
			expected: models.Contact{
				Name: "Jane", Email: "jane@example.com", Phone: "61400000000", PreferredContactTime: models.NotSpecified,
			},
		},
		{
			name:     "unknown shape",
			body:     `{"name":"Jane Doe"}`,
			variant:  VariantUnknown,
			expected: models.Contact{PreferredContactTime: models.NotSpecified},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			variant, contact := Map(decode(t, tt.body))
			assert.Equal(t, tt.variant, variant)
			assert.Equal(t, tt.expected, contact)
		})
	}
}

func TestValidate(t *testing.T) {
	err := Validate(models.Contact{Name: "Jane", Email: "jane@example.com", Phone: "0400"})
	assert.NoError(t, err)

	err = Validate(models.Contact{Email: "jane@example.com"})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"name", "phone"}, validationErr.Missing)
	assert.Equal(t, "Missing required fields: name, phone", err.Error())
}

func TestValidate_PreferredTimeNeverRequired(t *testing.T) {
	_, contact := Map(decode(t, `{"data":{"name":"Jane","email":"j@example.com","contact_number":"1"}}`))
	assert.NoError(t, Validate(contact))
	assert.Equal(t, models.NotSpecified, contact.PreferredContactTime)
}

func TestMap_EmptyEmailAddressFallsBackToEmail(t *testing.T) {
	variant, contact := Map(decode(t, `{"data":{"name":"Jane","email_address":"","email":"j@x.com","contact_number":"0400000000"}}`))

	assert.Equal(t, VariantFlatEmailAddress, variant)
	assert.Equal(t, "j@x.com", contact.Email)
	assert.NoError(t, Validate(contact))
}
