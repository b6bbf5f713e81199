package models

// NetworkInfo is a registry entry as exposed to the page.
type NetworkInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Symbol   string `json:"symbol"`
	ChainID  uint64 `json:"chainId"`
	Shortcut int    `json:"shortcut"`
	Active   bool   `json:"active"`
}

// SwitchNetworkRequest is the body of PUT /api/session/network.
type SwitchNetworkRequest struct {
	Network string `json:"network"`
}

// BalanceRequest is the body of POST /api/balance.
type BalanceRequest struct {
	Address string `json:"address"`
}

// APIResponse is the standard API response wrapper.
type APIResponse struct {
	Data interface{} `json:"data,omitempty"`
	Meta *APIMeta    `json:"meta,omitempty"`
}

// APIMeta contains execution metadata.
type APIMeta struct {
	ExecutionTime int64 `json:"executionTime,omitempty"`
}

// APIError is the standard error response.
type APIError struct {
	Error APIErrorDetail `json:"error"`
}

// APIErrorDetail contains error code and message.
type APIErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
