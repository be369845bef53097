package api

type ErrorResponse struct {
	Error  string `json:"error" example:"something went wrong"`
	Detail any    `json:"detail,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

type CheckoutResponse struct {
	PaymentURL string `json:"paymentUrl" example:"https://tripay.co.id/checkout/DEV-T123"`
}

type AckResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"ok"`
}
