package gateway

import "encoding/json"

type OrderItem struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// CreateRequest is the body of a create-transaction call. Signature must be
// CheckoutSignature over the merchant code, MerchantRef and Amount.
type CreateRequest struct {
	Method        string      `json:"method"`
	MerchantRef   string      `json:"merchant_ref"`
	Amount        int64       `json:"amount"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	OrderItems    []OrderItem `json:"order_items"`
	ReturnURL     string      `json:"return_url"`
	CallbackURL   string      `json:"callback_url"`
	ExpiredTime   int64       `json:"expired_time"`
	Signature     string      `json:"signature"`
}

// Transaction is the gateway's view of a payment.
type Transaction struct {
	Reference     string `json:"reference"`
	MerchantRef   string `json:"merchant_ref"`
	PaymentMethod string `json:"payment_method"`
	Amount        int64  `json:"amount"`
	Status        string `json:"status"`
	CheckoutURL   string `json:"checkout_url"`
	PaidAt        *int64 `json:"paid_at,omitempty"`
	ExpiredTime   int64  `json:"expired_time,omitempty"`
}

type Channel struct {
	Group  string `json:"group"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Active bool   `json:"active"`
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}
