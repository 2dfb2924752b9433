package checkout

// Stage tracks a visitor's progress through checkout.
type Stage string

const (
	StageShipping   Stage = "shipping"
	StagePayment    Stage = "payment"
	StageSubmitting Stage = "submitting"
	StageComplete   Stage = "complete"
	StageFailed     Stage = "failed"
)

// ShippingDetails captures the delivery form collected during checkout.
type ShippingDetails struct {
	CustomerName string
	Email        string
	Phone        string
	Address      string
	City         string
	ZipCode      *string
}

// Flow is one cart token's checkout state. Shipping data survives a failed
// submission so the visitor only retries payment.
type Flow struct {
	Stage    Stage
	Shipping ShippingDetails
}
