package models

// Submission is the raw JSON body posted by the form builder. Its shape
// depends on which form platform sent it.
type Submission map[string]interface{}

// NotSpecified is used when the submitter left the preferred contact time empty
const NotSpecified = "Not specified"

// Contact is the normalized form submission, independent of the platform's
// field naming
type Contact struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	PreferredContactTime string `json:"preferred_contact_time"`
}
