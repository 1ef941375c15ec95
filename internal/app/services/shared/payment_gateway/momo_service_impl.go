package payment_gateway

import (
	"bytes"
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxGatewayResponseBytes = 1 << 20

var (
	momoServiceInstance contracts.PaymentGatewayService
	onceMomoService     sync.Once
)

type momoService struct {
	Log        *zap.Logger
	Config     config.AppMomo
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	now        func() time.Time
}

func NewMomoService(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PaymentGatewayService {
	onceMomoService.Do(func() {
		httpClient := &http.Client{
			Timeout: time.Duration(internalConfig.Momo.RequestTimeoutInSeconds) * time.Second,
		}
		momoServiceInstance = newMomoService(internalConfig.Momo, logger, httpClient, time.Now)
	})
	return momoServiceInstance
}

func newMomoService(cfg config.AppMomo, logger *zap.Logger, httpClient *http.Client, now func() time.Time) *momoService {
	limit := rate.Inf
	if cfg.MaxRequestsPerSecond > 0 {
		limit = rate.Limit(cfg.MaxRequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return &momoService{
		Log:        logger,
		Config:     cfg,
		HTTPClient: httpClient,
		Limiter:    rate.NewLimiter(limit, burst),
		now:        now,
	}
}

func (s *momoService) buildCreatePayment(request *requests.CreateGatewayPayment) (*requests.MomoCreatePayment, error) {
	extraData, err := EncodeExtraData(request.AppointmentID)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	// the appointment suffix keeps two payments created in the same millisecond apart
	orderID := s.Config.PartnerCode + strconv.FormatInt(utils.EpochMillis(s.now()), 10) + "_" + request.AppointmentID
	lang := s.Config.Lang
	if lang == "" {
		lang = constvars.MomoDefaultLanguage
	}

	body := &requests.MomoCreatePayment{
		PartnerCode: s.Config.PartnerCode,
		AccessKey:   s.Config.AccessKey,
		RequestID:   orderID,
		Amount:      request.Amount,
		OrderID:     orderID,
		OrderInfo:   fmt.Sprintf(constvars.MomoOrderInfoFormat, request.AppointmentID),
		RedirectUrl: s.Config.RedirectUrl,
		IpnUrl:      s.Config.IpnUrl,
		ExtraData:   extraData,
		RequestType: constvars.MomoRequestTypeCaptureWallet,
		Lang:        lang,
	}
	body.Signature = Sign(s.Config.SecretKey, BuildCreatePaymentRawSignature(s.Config.AccessKey, body))
	return body, nil
}

func (s *momoService) CreatePayment(ctx context.Context, request *requests.CreateGatewayPayment) (*responses.MomoCreatePayment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("momoService.CreatePayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
		zap.Int64(constvars.LoggingAmountKey, request.Amount),
	)

	if err := s.Limiter.Wait(ctx); err != nil {
		s.Log.Error("momoService.CreatePayment error waiting for rate limiter",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrGatewayRateLimiterWait(err)
	}

	body, err := s.buildCreatePayment(request)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		s.Log.Error("momoService.CreatePayment error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	httpRequest.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	httpRequest.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	httpResponse, err := s.HTTPClient.Do(httpRequest)
	if err != nil {
		s.Log.Error("momoService.CreatePayment error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer httpResponse.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(httpResponse.Body, maxGatewayResponseBytes))
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}

	if httpResponse.StatusCode < 200 || httpResponse.StatusCode > 299 {
		s.Log.Error("momoService.CreatePayment gateway returned non-2xx status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, httpResponse.StatusCode),
			zap.ByteString(constvars.LoggingResponseKey, responseBody),
		)
		return nil, exceptions.ErrGatewayBadStatus(nil, httpResponse.StatusCode)
	}

	if !gjson.ValidBytes(responseBody) {
		return nil, exceptions.ErrGatewayRejected(errors.New("response is not valid JSON"), -1, "")
	}

	parsed := gjson.ParseBytes(responseBody)
	result := &responses.MomoCreatePayment{
		PartnerCode: parsed.Get(constvars.MomoFieldPartnerCode).String(),
		OrderID:     parsed.Get(constvars.MomoFieldOrderID).String(),
		RequestID:   parsed.Get(constvars.MomoFieldRequestID).String(),
		Message:     parsed.Get(constvars.MomoFieldMessage).String(),
		PayUrl:      parsed.Get(constvars.MomoFieldPayUrl).String(),
	}

	resultCode := parsed.Get(constvars.MomoFieldResultCode)
	if !resultCode.Exists() {
		return nil, exceptions.ErrGatewayRejected(errors.New("response has no resultCode"), -1, result.Message)
	}
	result.ResultCode = resultCode.Int()
	if result.ResultCode != constvars.MomoResultCodeSuccess {
		s.Log.Error("momoService.CreatePayment gateway rejected payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingResultCodeKey, result.ResultCode),
			zap.String("gateway_message", result.Message),
		)
		return nil, exceptions.ErrGatewayRejected(nil, result.ResultCode, result.Message)
	}

	if result.PayUrl == "" {
		return nil, exceptions.ErrGatewayMissingPayURL(nil)
	}

	if result.OrderID == "" {
		result.OrderID = body.OrderID
	}

	s.Log.Info("momoService.CreatePayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, result.OrderID),
	)
	return result, nil
}

func (s *momoService) VerifyNotification(ctx context.Context, notification *requests.MomoNotification) bool {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if notification.PartnerCode != s.Config.PartnerCode {
		s.Log.Warn("momoService.VerifyNotification partner code mismatch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, notification.OrderID),
		)
		return false
	}

	raw := BuildNotificationRawSignature(s.Config.AccessKey, notification)
	if !VerifySignature(s.Config.SecretKey, raw, notification.Signature) {
		s.Log.Warn("momoService.VerifyNotification signature mismatch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, notification.OrderID),
		)
		return false
	}
	return true
}
