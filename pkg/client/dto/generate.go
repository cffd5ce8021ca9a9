package dto

// GenerateResponse is the success body of GET /api/generate.
// Names is nil when the field is missing or null; an empty JSON array decodes to an empty, non-nil slice.
type GenerateResponse struct {
	Names []string `json:"names" yaml:"names"`
}

// ErrorResponse is the optional body of a failed request.
type ErrorResponse struct {
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}
