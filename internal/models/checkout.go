package models

// CustomerInfo carries the contact fields collected at checkout.
// All three fields are required before any call leaves the service.
type CustomerInfo struct {
	Name  string `json:"customerName" validate:"required"`
	Email string `json:"customerEmail" validate:"required"`
	Phone string `json:"customerPhone" validate:"required"`
}

// CheckoutResult is the terminal outcome of a checkout attempt: on success
// PaymentLink holds the gateway URL the customer must be redirected to,
// verbatim and unrewritten.
type CheckoutResult struct {
	Reference   string `json:"reference"`
	PaymentLink string `json:"paymentLink"`
}
