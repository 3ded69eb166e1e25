package dto

// NonceRequest asks for a sign-in challenge for a wallet address
type NonceRequest struct {
	Address string `json:"address" binding:"required" example:"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"`
}

// NonceResponse carries the challenge the wallet must personal-sign
type NonceResponse struct {
	Address string `json:"address"`
	Nonce   string `json:"nonce"`
	Message string `json:"message"`
}

// LoginRequest exchanges a signed challenge for a session token
type LoginRequest struct {
	Address   string `json:"address" binding:"required"`
	Signature string `json:"signature" binding:"required" example:"0x..."`
}

// LoginResponse carries the session token and the derived role
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
	Address   string `json:"address"`
	Role      string `json:"role" enums:"OWNER,STUDENT"`
}
