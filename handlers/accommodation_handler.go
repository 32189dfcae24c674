package handlers

import (
	"context"
	"net/http"

	"booking_service/domain"
	application "booking_service/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type AccommodationHandler struct {
	logger  *logrus.Logger
	service *application.AccommodationService
	tracer  trace.Tracer
}

func NewAccommodationHandler(logger *logrus.Logger, service *application.AccommodationService, tracer trace.Tracer) *AccommodationHandler {
	return &AccommodationHandler{
		logger:  logger,
		service: service,
		tracer:  tracer,
	}
}

// Init registers the public listing on the router and the mutations behind the
// authentication middleware.
func (handler *AccommodationHandler) Init(router *mux.Router, authenticate mux.MiddlewareFunc) {
	router.HandleFunc("/accommodations", handler.GetAll).Methods(http.MethodGet)

	create := router.Methods(http.MethodPost).Subrouter()
	create.HandleFunc("/accommodations", handler.Create)
	create.Use(authenticate)
	create.Use(handler.MiddlewareAccommodationDeserialization)

	update := router.Methods(http.MethodPut).Subrouter()
	update.HandleFunc("/accommodations/{id}", handler.Update)
	update.Use(authenticate)
	update.Use(handler.MiddlewarePatchDeserialization)

	remove := router.Methods(http.MethodDelete).Subrouter()
	remove.HandleFunc("/accommodations/{id}", handler.Delete)
	remove.Use(authenticate)
}

func (handler *AccommodationHandler) GetAll(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "AccommodationHandler.GetAll")
	defer span.End()

	accommodations, err := handler.service.GetAll(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Error("Database exception: ", err)
		writeError(rw, err)
		return
	}

	jsonResponse(accommodations, rw)
}

func (handler *AccommodationHandler) Create(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "AccommodationHandler.Create")
	defer span.End()

	accommodation := h.Context().Value(KeyProduct{}).(*domain.Accommodation)

	created, err := handler.service.Create(ctx, accommodation)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Error("Database exception: ", err)
		writeError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusCreated)
	jsonResponse(created, rw)
}

func (handler *AccommodationHandler) Update(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "AccommodationHandler.Update")
	defer span.End()

	id := mux.Vars(h)["id"]
	patch := h.Context().Value(KeyProduct{}).(*domain.AccommodationPatch)

	updated, err := handler.service.Update(ctx, id, patch)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(rw, err)
		return
	}

	jsonResponse(updated, rw)
}

func (handler *AccommodationHandler) Delete(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "AccommodationHandler.Delete")
	defer span.End()

	id := mux.Vars(h)["id"]

	if err := handler.service.Delete(ctx, id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Error("Database exception: ", err)
		writeError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusNoContent)
}

func (handler *AccommodationHandler) MiddlewareAccommodationDeserialization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		accommodation := &domain.Accommodation{}
		if err := accommodation.FromJSON(h.Body); err != nil {
			writeMessage(rw, http.StatusBadRequest, "Unable to decode json")
			handler.logger.Error(err)
			return
		}
		ctx := context.WithValue(h.Context(), KeyProduct{}, accommodation)
		next.ServeHTTP(rw, h.WithContext(ctx))
	})
}

func (handler *AccommodationHandler) MiddlewarePatchDeserialization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		patch := &domain.AccommodationPatch{}
		if err := patch.FromJSON(h.Body); err != nil {
			writeMessage(rw, http.StatusBadRequest, "Unable to decode json")
			handler.logger.Error(err)
			return
		}
		ctx := context.WithValue(h.Context(), KeyProduct{}, patch)
		next.ServeHTTP(rw, h.WithContext(ctx))
	})
}
