package contracts

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"context"
)

type UserRepository interface {
	FindByID(ctx context.Context, userID string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (string, error)
}

type UserUsecase interface {
	Register(ctx context.Context, request *requests.RegisterUser) (*responses.Login, error)
	Login(ctx context.Context, request *requests.LoginUser) (*responses.Login, error)
}
