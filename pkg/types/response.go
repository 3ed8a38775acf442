package types

// The dashboard clients key off resultCode, not the HTTP status, so every
// response body carries one of the two envelope shapes below.

type SuccessEnvelope struct {
	ResultCode string `json:"resultCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

type ErrorDetail struct {
	Error any `json:"error"`
}

type ErrorEnvelope struct {
	ResultCode string      `json:"resultCode"`
	Message    string      `json:"message"`
	Data       ErrorDetail `json:"data"`
}
