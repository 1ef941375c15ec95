package users

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type userUsecase struct {
	UserRepository contracts.UserRepository
	TokenManager   contracts.TokenManager
	Log            *zap.Logger
	now            func() time.Time
}

var (
	userUsecaseInstance contracts.UserUsecase
	onceUserUsecase     sync.Once
)

func NewUserUsecase(
	userRepository contracts.UserRepository,
	tokenManager contracts.TokenManager,
	logger *zap.Logger,
) contracts.UserUsecase {
	onceUserUsecase.Do(func() {
		userUsecaseInstance = newUserUsecase(userRepository, tokenManager, logger)
	})
	return userUsecaseInstance
}

func newUserUsecase(userRepository contracts.UserRepository, tokenManager contracts.TokenManager, logger *zap.Logger) *userUsecase {
	return &userUsecase{
		UserRepository: userRepository,
		TokenManager:   tokenManager,
		Log:            logger,
		now:            time.Now,
	}
}

func (uc *userUsecase) Register(ctx context.Context, request *requests.RegisterUser) (*responses.Login, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	email := strings.ToLower(strings.TrimSpace(request.Email))
	uc.Log.Info("userUsecase.Register called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, email),
	)

	existing, err := uc.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		uc.Log.Error("userUsecase.Register error calling UserRepository.FindByEmail",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrEmailAlreadyExist(nil)
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		uc.Log.Error("userUsecase.Register error hashing password",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrHashPassword(err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(request.Name),
		Email:    email,
		Password: hashedPassword,
	}
	user.SetCreatedAtUpdatedAt(uc.now())

	userID, err := uc.UserRepository.Insert(ctx, user)
	if err != nil {
		uc.Log.Error("userUsecase.Register error calling UserRepository.Insert",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	token, err := uc.TokenManager.Issue(ctx, userID)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("userUsecase.Register succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)
	return &responses.Login{Token: token}, nil
}

func (uc *userUsecase) Login(ctx context.Context, request *requests.LoginUser) (*responses.Login, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	email := strings.ToLower(strings.TrimSpace(request.Email))
	uc.Log.Info("userUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, email),
	)

	user, err := uc.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		uc.Log.Error("userUsecase.Login error calling UserRepository.FindByEmail",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	// same error for unknown email and wrong password
	if user == nil || !utils.CheckPasswordHash(request.Password, user.Password) {
		return nil, exceptions.ErrInvalidEmailOrPassword(nil)
	}

	token, err := uc.TokenManager.Issue(ctx, user.ID.Hex())
	if err != nil {
		return nil, err
	}

	uc.Log.Info("userUsecase.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID.Hex()),
	)
	return &responses.Login{Token: token}, nil
}
