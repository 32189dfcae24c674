package handlers

import (
	"context"
	"net/http"

	"booking_service/authorization"
	"booking_service/domain"
	"booking_service/errors"
	application "booking_service/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type ReservationHandler struct {
	logger  *logrus.Logger
	service *application.ReservationService
	tracer  trace.Tracer
}

func NewReservationHandler(logger *logrus.Logger, service *application.ReservationService, tracer trace.Tracer) *ReservationHandler {
	return &ReservationHandler{
		logger:  logger,
		service: service,
		tracer:  tracer,
	}
}

// Init puts every reservation route behind the authentication middleware,
// there is no public variant of this collection.
func (handler *ReservationHandler) Init(router *mux.Router, authenticate mux.MiddlewareFunc) {
	list := router.Methods(http.MethodGet).Subrouter()
	list.HandleFunc("/reservations", handler.GetAll)
	list.Use(authenticate)

	create := router.Methods(http.MethodPost).Subrouter()
	create.HandleFunc("/reservations", handler.Create)
	create.Use(authenticate)
	create.Use(handler.MiddlewareReservationDeserialization)

	update := router.Methods(http.MethodPut).Subrouter()
	update.HandleFunc("/reservations/{id}", handler.Update)
	update.Use(authenticate)
	update.Use(handler.MiddlewarePatchDeserialization)

	remove := router.Methods(http.MethodDelete).Subrouter()
	remove.HandleFunc("/reservations/{id}", handler.Delete)
	remove.Use(authenticate)
}

func (handler *ReservationHandler) GetAll(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "ReservationHandler.GetAll")
	defer span.End()

	identity := authorization.IdentityFromContext(ctx)
	if identity == nil {
		writeMessage(rw, http.StatusUnauthorized, errors.MissingTokenError)
		return
	}

	reservations, err := handler.service.GetAllByOwner(ctx, identity)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Error("Database exception: ", err)
		writeError(rw, err)
		return
	}

	jsonResponse(reservations, rw)
}

func (handler *ReservationHandler) Create(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "ReservationHandler.Create")
	defer span.End()

	identity := authorization.IdentityFromContext(ctx)
	if identity == nil {
		writeMessage(rw, http.StatusUnauthorized, errors.MissingTokenError)
		return
	}

	reservation := h.Context().Value(KeyProduct{}).(*domain.Reservation)

	created, err := handler.service.Create(ctx, identity, reservation)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusCreated)
	jsonResponse(created, rw)
}

func (handler *ReservationHandler) Update(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "ReservationHandler.Update")
	defer span.End()

	identity := authorization.IdentityFromContext(ctx)
	if identity == nil {
		writeMessage(rw, http.StatusUnauthorized, errors.MissingTokenError)
		return
	}

	id := mux.Vars(h)["id"]
	patch := h.Context().Value(KeyProduct{}).(*domain.ReservationPatch)

	updated, err := handler.service.Update(ctx, identity, id, patch)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(rw, err)
		return
	}

	jsonResponse(updated, rw)
}

func (handler *ReservationHandler) Delete(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "ReservationHandler.Delete")
	defer span.End()

	identity := authorization.IdentityFromContext(ctx)
	if identity == nil {
		writeMessage(rw, http.StatusUnauthorized, errors.MissingTokenError)
		return
	}

	id := mux.Vars(h)["id"]

	if err := handler.service.Delete(ctx, identity, id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusNoContent)
}

func (handler *ReservationHandler) MiddlewareReservationDeserialization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		reservation := &domain.Reservation{}
		if err := reservation.FromJSON(h.Body); err != nil {
			writeMessage(rw, http.StatusBadRequest, "Unable to decode json")
			handler.logger.Error(err)
			return
		}
		ctx := context.WithValue(h.Context(), KeyProduct{}, reservation)
		next.ServeHTTP(rw, h.WithContext(ctx))
	})
}

func (handler *ReservationHandler) MiddlewarePatchDeserialization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		patch := &domain.ReservationPatch{}
		if err := patch.FromJSON(h.Body); err != nil {
			writeMessage(rw, http.StatusBadRequest, "Unable to decode json")
			handler.logger.Error(err)
			return
		}
		ctx := context.WithValue(h.Context(), KeyProduct{}, patch)
		next.ServeHTTP(rw, h.WithContext(ctx))
	})
}
