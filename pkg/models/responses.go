package models

// SuccessResponse is returned once the note is attached
type SuccessResponse struct {
	Message string   `json:"message"`
	LeadID  EntityID `json:"leadId"`
}

// ValidationResponse echoes the body back when required fields are missing
type ValidationResponse struct {
	Message      string     `json:"message"`
	ReceivedData Submission `json:"receivedData"`
}

// ErrorResponse reports a failed Pipedrive call. LeadID is set when the lead
// was created before a later step failed.
type ErrorResponse struct {
	Message string   `json:"message"`
	Error   string   `json:"error"`
	LeadID  EntityID `json:"leadId,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
