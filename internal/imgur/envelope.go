package imgur

import "encoding/json"

// Envelope is the wrapper every v3 API response uses to signal outcome.
// On failure Data carries an object with an "error" field.
type Envelope struct {
	Success bool            `json:"success"`
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data"`
}

// ErrorMessage extracts data.error from a failed envelope.
func (e *Envelope) ErrorMessage() string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(e.Data, &payload); err != nil || payload.Error == "" {
		return "unknown error"
	}
	return payload.Error
}
