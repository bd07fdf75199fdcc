package payment

type CreateOrderDTO struct {
	Amount   float64 `json:"amount"   binding:"required,gt=0"`
	Currency string  `json:"currency"`
}

// VerifyDTO carries the gateway callback fields plus the checkout snapshot
// the client wants persisted once the signature checks out.
type VerifyDTO struct {
	RazorpayOrderID   string `json:"razorpay_order_id"   binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature"  binding:"required"`

	OrderItems    []VerifyItemDTO `json:"orderItems"`
	TotalPrice    float64         `json:"totalPrice"`
	CustomerEmail string          `json:"customerEmail"`
}

type VerifyItemDTO struct {
	Product string  `json:"product"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Qty     int     `json:"qty"`
}

// gatewayOrder is the subset of Razorpay's order object we surface.
type gatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}
