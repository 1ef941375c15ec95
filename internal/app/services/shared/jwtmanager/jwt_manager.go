package jwtmanager

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

const (
	AudiencePatient = "patient"
	AudienceDoctor  = "doctor"
)

// JWTManager signs and verifies HS256 session tokens for one audience.
// Patient and doctor tokens share the secret but are not interchangeable.
type JWTManager struct {
	log      *zap.Logger
	secret   []byte
	ttl      time.Duration
	audience string
	now      func() time.Time
	parser   *jwt.Parser
}

func NewJWTManager(secret string, ttl time.Duration, audience string, log *zap.Logger) contracts.TokenManager {
	return newJWTManager(secret, ttl, audience, log, time.Now)
}

func newJWTManager(secret string, ttl time.Duration, audience string, log *zap.Logger, now func() time.Time) *JWTManager {
	return &JWTManager{
		log:      log,
		secret:   []byte(secret),
		ttl:      ttl,
		audience: audience,
		now:      now,
		// expiry is checked against the injected clock below
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
}

func (j *JWTManager) Issue(ctx context.Context, subjectID string) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	j.log.Debug("JWTManager.Issue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("audience", j.audience),
	)

	if strings.TrimSpace(subjectID) == "" {
		return "", exceptions.ErrTokenGenerate(errors.New("subject is required"))
	}

	now := j.now()
	claims := jwt.MapClaims{
		constvars.JWTClaimSubjectID: subjectID,
		constvars.JWTClaimIssuedAt:  now.Unix(),
		constvars.JWTClaimExpiry:    now.Add(j.ttl).Unix(),
		"aud":                       j.audience,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		j.log.Error("JWTManager.Issue error signing token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrTokenGenerate(err)
	}
	return signed, nil
}

func (j *JWTManager) Verify(ctx context.Context, token string) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if strings.TrimSpace(token) == "" {
		return "", exceptions.ErrTokenMissing(nil)
	}

	claims := jwt.MapClaims{}
	_, err := j.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return j.secret, nil
	})
	if err != nil {
		j.log.Debug("JWTManager.Verify rejected token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrTokenInvalidOrExpired(err)
	}

	if !claims.VerifyExpiresAt(j.now().Unix(), true) {
		return "", exceptions.ErrTokenInvalidOrExpired(errors.New("token expired or has no expiry"))
	}
	if !claims.VerifyAudience(j.audience, true) {
		return "", exceptions.ErrTokenInvalidOrExpired(errors.New("token audience mismatch"))
	}

	subjectID, _ := claims[constvars.JWTClaimSubjectID].(string)
	if subjectID == "" {
		return "", exceptions.ErrTokenSubjectMissing(nil)
	}
	return subjectID, nil
}
