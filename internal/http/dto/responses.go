package dto

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type ChallengeResponse struct {
	Payload   string `json:"payload"`
	ExpiresAt string `json:"expires_at"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

type WalletResponse struct {
	Address string `json:"address"`
	Balance int64  `json:"balance"`
}

type ReleaseResponse struct {
	Released int64 `json:"released"`
}
