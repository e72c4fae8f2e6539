package models

type ReviewResponse struct {
	Review *Review `json:"review"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
	Status  int    `json:"status,omitempty"`
	Raw     any    `json:"raw,omitempty"`
}
