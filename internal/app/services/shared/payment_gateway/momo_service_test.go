package payment_gateway

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var fixedNow = time.UnixMilli(1710000000123)

func testMomoConfig(endpoint string) config.AppMomo {
	return config.AppMomo{
		PartnerCode: "MOMO",
		AccessKey:   "F8BBA842ECF85",
		SecretKey:   "K951B6PE1waDMi640xX08PD3vg6EkVlz",
		RedirectUrl: "http://localhost:5173/my-appointments",
		IpnUrl:      "http://localhost:4000/api/v1/payments/momo/ipn",
		Endpoint:    endpoint,
		Lang:        "vi",
	}
}

func referenceHMAC(secret, raw string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestBuildCreatePaymentRawSignature(t *testing.T) {
	request := &requests.MomoCreatePayment{
		PartnerCode: "MOMO",
		RequestID:   "MOMO1710000000123",
		Amount:      300000,
		OrderID:     "MOMO1710000000123",
		OrderInfo:   "Thanh toán lịch hẹn 65f1",
		RedirectUrl: "http://r",
		IpnUrl:      "http://i",
		ExtraData:   "eyJ9",
		RequestType: "captureWallet",
	}

	raw := BuildCreatePaymentRawSignature("AK", request)

	assert.Equal(t,
		"accessKey=AK&amount=300000&extraData=eyJ9&ipnUrl=http://i&orderId=MOMO1710000000123"+
			"&orderInfo=Thanh toán lịch hẹn 65f1&partnerCode=MOMO&redirectUrl=http://r"+
			"&requestId=MOMO1710000000123&requestType=captureWallet",
		raw,
	)
}

func TestBuildNotificationRawSignature(t *testing.T) {
	notification := &requests.MomoNotification{
		PartnerCode:  "MOMO",
		OrderID:      "MOMO1",
		RequestID:    "MOMO1",
		Amount:       1000,
		OrderInfo:    "info",
		OrderType:    "momo_wallet",
		TransID:      42,
		ResultCode:   0,
		Message:      "Successful.",
		PayType:      "qr",
		ResponseTime: 1710000001000,
		ExtraData:    "e30=",
	}

	assert.Equal(t,
		"accessKey=AK&amount=1000&extraData=e30=&message=Successful.&orderId=MOMO1&orderInfo=info"+
			"&orderType=momo_wallet&partnerCode=MOMO&payType=qr&requestId=MOMO1"+
			"&responseTime=1710000001000&resultCode=0&transId=42",
		BuildNotificationRawSignature("AK", notification),
	)
}

func TestSignAndVerify(t *testing.T) {
	raw := "accessKey=AK&amount=1"
	signature := Sign("secret", raw)

	assert.Equal(t, referenceHMAC("secret", raw), signature)
	assert.Equal(t, signature, Sign("secret", raw))
	assert.True(t, VerifySignature("secret", raw, signature))
	assert.False(t, VerifySignature("other", raw, signature))
	assert.False(t, VerifySignature("secret", raw+"0", signature))
}

func TestExtraDataRoundTrip(t *testing.T) {
	encoded, err := EncodeExtraData("65f1a2b3c4d5e6f708091a2b")
	require.NoError(t, err)

	decoded, err := DecodeExtraData(encoded)
	require.NoError(t, err)
	assert.Equal(t, "65f1a2b3c4d5e6f708091a2b", decoded)

	_, err = DecodeExtraData("%%%")
	assert.Error(t, err)
	_, err = DecodeExtraData("e30=")
	assert.Error(t, err)
}

func TestMomoService_CreatePayment(t *testing.T) {
	ctx := context.Background()
	payment := &requests.CreateGatewayPayment{AppointmentID: "65f1a2b3c4d5e6f708091a2b", Amount: 300000}

	t.Run("Posts Signed Request And Returns PayUrl", func(t *testing.T) {
		expectedOrderID := "MOMO1710000000123_" + payment.AppointmentID
		var captured []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured, _ = io.ReadAll(r.Body)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"partnerCode":"MOMO","orderId":"` + expectedOrderID + `","requestId":"` + expectedOrderID + `","resultCode":0,"message":"Successful.","payUrl":"https://test-payment.momo.vn/pay/abc"}`))
		}))
		defer server.Close()

		cfg := testMomoConfig(server.URL)
		service := newMomoService(cfg, zap.NewNop(), server.Client(), func() time.Time { return fixedNow })

		result, err := service.CreatePayment(ctx, payment)
		require.NoError(t, err)
		assert.Equal(t, "https://test-payment.momo.vn/pay/abc", result.PayUrl)
		assert.Equal(t, expectedOrderID, result.OrderID)

		body := gjson.ParseBytes(captured)
		assert.Equal(t, expectedOrderID, body.Get("orderId").String())
		assert.Equal(t, body.Get("orderId").String(), body.Get("requestId").String())
		assert.Equal(t, int64(300000), body.Get("amount").Int())
		assert.Equal(t, "captureWallet", body.Get("requestType").String())
		assert.Equal(t, "vi", body.Get("lang").String())
		assert.Equal(t, "Thanh toán lịch hẹn 65f1a2b3c4d5e6f708091a2b", body.Get("orderInfo").String())

		appointmentID, err := DecodeExtraData(body.Get("extraData").String())
		require.NoError(t, err)
		assert.Equal(t, payment.AppointmentID, appointmentID)

		expectedRaw := "accessKey=" + cfg.AccessKey +
			"&amount=300000" +
			"&extraData=" + body.Get("extraData").String() +
			"&ipnUrl=" + cfg.IpnUrl +
			"&orderId=" + expectedOrderID +
			"&orderInfo=Thanh toán lịch hẹn 65f1a2b3c4d5e6f708091a2b" +
			"&partnerCode=MOMO" +
			"&redirectUrl=" + cfg.RedirectUrl +
			"&requestId=" + expectedOrderID +
			"&requestType=captureWallet"
		assert.Equal(t, referenceHMAC(cfg.SecretKey, expectedRaw), body.Get("signature").String())
	})

	t.Run("Same Clock Produces Same Signature", func(t *testing.T) {
		service := newMomoService(testMomoConfig("http://unused"), zap.NewNop(), http.DefaultClient, func() time.Time { return fixedNow })

		first, err := service.buildCreatePayment(payment)
		require.NoError(t, err)
		second, err := service.buildCreatePayment(payment)
		require.NoError(t, err)

		assert.Equal(t, first.Signature, second.Signature)
	})

	t.Run("Same Millisecond Different Appointments Get Distinct Orders", func(t *testing.T) {
		service := newMomoService(testMomoConfig("http://unused"), zap.NewNop(), http.DefaultClient, func() time.Time { return fixedNow })

		first, err := service.buildCreatePayment(payment)
		require.NoError(t, err)
		second, err := service.buildCreatePayment(&requests.CreateGatewayPayment{AppointmentID: "65f1a2b3c4d5e6f708091a2c", Amount: payment.Amount})
		require.NoError(t, err)

		assert.NotEqual(t, first.OrderID, second.OrderID)
		assert.Equal(t, second.OrderID, second.RequestID)
	})

	gatewayErrorCases := []struct {
		name    string
		status  int
		payload string
	}{
		{"Non 2xx Status", http.StatusInternalServerError, `{"resultCode":0,"payUrl":"https://pay"}`},
		{"Non Zero Result Code", http.StatusOK, `{"resultCode":1001,"message":"Insufficient balance"}`},
		{"Missing PayUrl", http.StatusOK, `{"resultCode":0,"message":"Successful."}`},
		{"Invalid JSON", http.StatusOK, `<html>oops</html>`},
	}

	for _, tc := range gatewayErrorCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.payload))
			}))
			defer server.Close()

			service := newMomoService(testMomoConfig(server.URL), zap.NewNop(), server.Client(), func() time.Time { return fixedNow })

			result, err := service.CreatePayment(ctx, payment)
			assert.Nil(t, result)
			assert.Equal(t, constvars.ErrCodeGatewayError, exceptions.CodeOf(err))
		})
	}

	t.Run("Transport Error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		endpoint := server.URL
		server.Close()

		service := newMomoService(testMomoConfig(endpoint), zap.NewNop(), &http.Client{Timeout: time.Second}, func() time.Time { return fixedNow })

		_, err := service.CreatePayment(ctx, payment)
		assert.Equal(t, constvars.ErrCodeGatewayError, exceptions.CodeOf(err))
	})
}

func TestMomoService_VerifyNotification(t *testing.T) {
	ctx := context.Background()
	cfg := testMomoConfig("http://unused")
	service := newMomoService(cfg, zap.NewNop(), http.DefaultClient, time.Now)

	extraData, err := EncodeExtraData("65f1a2b3c4d5e6f708091a2b")
	require.NoError(t, err)

	signed := func() *requests.MomoNotification {
		notification := &requests.MomoNotification{
			PartnerCode:  cfg.PartnerCode,
			OrderID:      "MOMO1710000000123",
			RequestID:    "MOMO1710000000123",
			Amount:       300000,
			OrderInfo:    "Thanh toán lịch hẹn 65f1a2b3c4d5e6f708091a2b",
			OrderType:    "momo_wallet",
			TransID:      4088878653,
			ResultCode:   0,
			Message:      "Successful.",
			PayType:      "qr",
			ResponseTime: 1710000005000,
			ExtraData:    extraData,
		}
		notification.Signature = Sign(cfg.SecretKey, BuildNotificationRawSignature(cfg.AccessKey, notification))
		return notification
	}

	t.Run("Valid Signature", func(t *testing.T) {
		assert.True(t, service.VerifyNotification(ctx, signed()))
	})

	t.Run("Tampered Amount", func(t *testing.T) {
		notification := signed()
		notification.Amount = 1
		assert.False(t, service.VerifyNotification(ctx, notification))
	})

	t.Run("Foreign Partner Code", func(t *testing.T) {
		notification := signed()
		notification.PartnerCode = "OTHER"
		assert.False(t, service.VerifyNotification(ctx, notification))
	})
}
