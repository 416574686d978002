package server

type TokenResponse struct {
	Token string `json:"token"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
