package constvars

const (
	MomoRequestTypeCaptureWallet = "captureWallet"
	MomoDefaultLanguage          = "vi"
	MomoResultCodeSuccess        = 0
	MomoOrderInfoFormat          = "Thanh toán lịch hẹn %s"
)

const (
	MomoFieldAccessKey    = "accessKey"
	MomoFieldAmount       = "amount"
	MomoFieldExtraData    = "extraData"
	MomoFieldIpnUrl       = "ipnUrl"
	MomoFieldMessage      = "message"
	MomoFieldOrderID      = "orderId"
	MomoFieldOrderInfo    = "orderInfo"
	MomoFieldOrderType    = "orderType"
	MomoFieldPartnerCode  = "partnerCode"
	MomoFieldPayType      = "payType"
	MomoFieldPayUrl       = "payUrl"
	MomoFieldRedirectUrl  = "redirectUrl"
	MomoFieldRequestID    = "requestId"
	MomoFieldRequestType  = "requestType"
	MomoFieldResponseTime = "responseTime"
	MomoFieldResultCode   = "resultCode"
	MomoFieldTransID      = "transId"
)
