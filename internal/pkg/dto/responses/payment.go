package responses

type InitiatePayment struct {
	PayUrl  string `json:"payUrl"`
	OrderID string `json:"orderId"`
}

// MomoCreatePayment holds the fields read back from the MoMo create response.
type MomoCreatePayment struct {
	PartnerCode string
	OrderID     string
	RequestID   string
	ResultCode  int64
	Message     string
	PayUrl      string
}
