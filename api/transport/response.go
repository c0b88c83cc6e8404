package transport

import "encoding/json"

// Envelope is the standard API response wrapper used for both success and
// error payloads. Every endpoint uses the same error shape; the historical
// msg/message split is gone.
type Envelope struct {
	Status string       `json:"status"`
	Data   interface{}  `json:"data,omitempty"`
	Error  *ErrorDetail `json:"error,omitempty"`
	Meta   interface{}  `json:"meta,omitempty"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Kind    string            `json:"kind"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewError returns an error envelope.
func NewError(kind, message string, fields map[string]string) Envelope {
	return Envelope{
		Status: "error",
		Error: &ErrorDetail{
			Kind:    kind,
			Message: message,
			Fields:  fields,
		},
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
