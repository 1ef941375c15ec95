package requests

type InitiatePayment struct {
	AppointmentID string `json:"appointmentId" validate:"required"`
	UserID        string `json:"-"`
}

type ConfirmPayment struct {
	AppointmentID string `json:"appointmentId"`
}

// MomoCreatePayment is the body posted to the MoMo create endpoint.
type MomoCreatePayment struct {
	PartnerCode string `json:"partnerCode"`
	AccessKey   string `json:"accessKey"`
	RequestID   string `json:"requestId"`
	Amount      int64  `json:"amount"`
	OrderID     string `json:"orderId"`
	OrderInfo   string `json:"orderInfo"`
	RedirectUrl string `json:"redirectUrl"`
	IpnUrl      string `json:"ipnUrl"`
	ExtraData   string `json:"extraData"`
	RequestType string `json:"requestType"`
	Signature   string `json:"signature"`
	Lang        string `json:"lang"`
}

// MomoNotification is the instant payment notification MoMo posts to ipnUrl.
type MomoNotification struct {
	PartnerCode  string `json:"partnerCode"`
	OrderID      string `json:"orderId"`
	RequestID    string `json:"requestId"`
	Amount       int64  `json:"amount"`
	OrderInfo    string `json:"orderInfo"`
	OrderType    string `json:"orderType"`
	TransID      int64  `json:"transId"`
	ResultCode   int    `json:"resultCode"`
	Message      string `json:"message"`
	PayType      string `json:"payType"`
	ResponseTime int64  `json:"responseTime"`
	ExtraData    string `json:"extraData"`
	Signature    string `json:"signature"`
}

type CreateGatewayPayment struct {
	AppointmentID string
	Amount        int64
}
