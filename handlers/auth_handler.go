package handlers

import (
	"net/http"

	"booking_service/domain"
	application "booking_service/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type AuthHandler struct {
	logger  *logrus.Logger
	service *application.AccountService
	tracer  trace.Tracer
}

func NewAuthHandler(logger *logrus.Logger, service *application.AccountService, tracer trace.Tracer) *AuthHandler {
	return &AuthHandler{
		logger:  logger,
		service: service,
		tracer:  tracer,
	}
}

func (handler *AuthHandler) Init(router *mux.Router) {
	router.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
}

func (handler *AuthHandler) Register(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "AuthHandler.Register")
	defer span.End()

	request := &domain.RegisterRequest{}
	if err := request.FromJSON(h.Body); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeMessage(rw, http.StatusBadRequest, "Unable to decode json")
		return
	}

	response, err := handler.service.Register(ctx, request)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Warn("Registration failed: ", err)
		writeError(rw, err)
		return
	}

	jsonResponse(response, rw)
}

func (handler *AuthHandler) Login(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "AuthHandler.Login")
	defer span.End()

	request := &domain.LoginRequest{}
	if err := request.FromJSON(h.Body); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeMessage(rw, http.StatusBadRequest, "Unable to decode json")
		return
	}

	response, err := handler.service.Login(ctx, request)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Warn("Login failed for ", request.Email)
		writeError(rw, err)
		return
	}

	jsonResponse(response, rw)
}
