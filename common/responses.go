package common

type ErrorResponse struct {
	Code string `json:"code,omitempty"`
}
