package payment_gateway

import (
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

type signatureField struct {
	key   string
	value string
}

func joinSignatureFields(fields []signatureField) string {
	var builder strings.Builder
	for i, field := range fields {
		if i > 0 {
			builder.WriteByte('&')
		}
		builder.WriteString(field.key)
		builder.WriteByte('=')
		builder.WriteString(field.value)
	}
	return builder.String()
}

// BuildCreatePaymentRawSignature lists the create fields in the order MoMo signs them.
func BuildCreatePaymentRawSignature(accessKey string, request *requests.MomoCreatePayment) string {
	return joinSignatureFields([]signatureField{
		{constvars.MomoFieldAccessKey, accessKey},
		{constvars.MomoFieldAmount, strconv.FormatInt(request.Amount, 10)},
		{constvars.MomoFieldExtraData, request.ExtraData},
		{constvars.MomoFieldIpnUrl, request.IpnUrl},
		{constvars.MomoFieldOrderID, request.OrderID},
		{constvars.MomoFieldOrderInfo, request.OrderInfo},
		{constvars.MomoFieldPartnerCode, request.PartnerCode},
		{constvars.MomoFieldRedirectUrl, request.RedirectUrl},
		{constvars.MomoFieldRequestID, request.RequestID},
		{constvars.MomoFieldRequestType, request.RequestType},
	})
}

// BuildNotificationRawSignature lists the IPN fields in the order MoMo signs them.
func BuildNotificationRawSignature(accessKey string, notification *requests.MomoNotification) string {
	return joinSignatureFields([]signatureField{
		{constvars.MomoFieldAccessKey, accessKey},
		{constvars.MomoFieldAmount, strconv.FormatInt(notification.Amount, 10)},
		{constvars.MomoFieldExtraData, notification.ExtraData},
		{constvars.MomoFieldMessage, notification.Message},
		{constvars.MomoFieldOrderID, notification.OrderID},
		{constvars.MomoFieldOrderInfo, notification.OrderInfo},
		{constvars.MomoFieldOrderType, notification.OrderType},
		{constvars.MomoFieldPartnerCode, notification.PartnerCode},
		{constvars.MomoFieldPayType, notification.PayType},
		{constvars.MomoFieldRequestID, notification.RequestID},
		{constvars.MomoFieldResponseTime, strconv.FormatInt(notification.ResponseTime, 10)},
		{constvars.MomoFieldResultCode, strconv.Itoa(notification.ResultCode)},
		{constvars.MomoFieldTransID, strconv.FormatInt(notification.TransID, 10)},
	})
}

// Sign returns the lowercase hex HMAC-SHA256 of raw.
func Sign(secretKey, raw string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}

func VerifySignature(secretKey, raw, signature string) bool {
	expected := Sign(secretKey, raw)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}

func EncodeExtraData(appointmentID string) (string, error) {
	payload, err := json.Marshal(map[string]string{"appointmentId": appointmentID})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

func DecodeExtraData(extraData string) (string, error) {
	payload, err := base64.StdEncoding.DecodeString(extraData)
	if err != nil {
		return "", err
	}
	if !gjson.ValidBytes(payload) {
		return "", errors.New("extraData is not valid JSON")
	}
	appointmentID := gjson.GetBytes(payload, "appointmentId").String()
	if appointmentID == "" {
		return "", errors.New("extraData has no appointmentId")
	}
	return appointmentID, nil
}
