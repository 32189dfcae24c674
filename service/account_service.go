package application

import (
	"context"

	"booking_service/authorization"
	"booking_service/domain"
	"booking_service/errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type AccountService struct {
	store  domain.AccountStore
	jwtKey []byte
	tracer trace.Tracer
}

func NewAccountService(store domain.AccountStore, jwtKey []byte, tracer trace.Tracer) *AccountService {
	return &AccountService{
		store:  store,
		jwtKey: jwtKey,
		tracer: tracer,
	}
}

func (service *AccountService) Register(ctx context.Context, request *domain.RegisterRequest) (*domain.AuthResponse, error) {
	ctx, span := service.tracer.Start(ctx, "AccountService.Register")
	defer span.End()

	if err := request.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.NewValidationError(errors.EmailAndPasswordError)
	}

	existing, err := service.store.GetByEmail(ctx, request.Email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrEmailExists
	}

	hash, err := authorization.HashPassword(request.Password)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	account := &domain.Account{
		ID:        "u_" + uuid.NewString(),
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Email:     request.Email,
		Password:  hash,
	}

	if err := service.store.Insert(ctx, account); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	accessToken, err := authorization.GenerateJWT(account, service.jwtKey)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return &domain.AuthResponse{AccessToken: accessToken, User: account.Public()}, nil
}

// Login answers the same error for an unknown email and for a wrong password,
// a caller cannot probe which factor failed.
func (service *AccountService) Login(ctx context.Context, request *domain.LoginRequest) (*domain.AuthResponse, error) {
	ctx, span := service.tracer.Start(ctx, "AccountService.Login")
	defer span.End()

	account, err := service.store.GetByEmail(ctx, request.Email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if account == nil {
		return nil, errors.ErrInvalidCredentials
	}

	if !authorization.VerifyPassword(request.Password, account.Password) {
		return nil, errors.ErrInvalidCredentials
	}

	accessToken, err := authorization.GenerateJWT(account, service.jwtKey)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return &domain.AuthResponse{AccessToken: accessToken, User: account.Public()}, nil
}
