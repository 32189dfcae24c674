package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"booking_service/authorization"
	"booking_service/errors"
	application "booking_service/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const maxImportSize = 16 << 20

// ReportHandler serves the spreadsheet import and the PDF/summary exports on
// top of the caller's reservations.
type ReportHandler struct {
	logger  *logrus.Logger
	reports *application.ReportService
	imports *application.ImportService
	tracer  trace.Tracer
}

func NewReportHandler(logger *logrus.Logger, reports *application.ReportService, imports *application.ImportService, tracer trace.Tracer) *ReportHandler {
	return &ReportHandler{
		logger:  logger,
		reports: reports,
		imports: imports,
		tracer:  tracer,
	}
}

func (handler *ReportHandler) Init(router *mux.Router, authenticate mux.MiddlewareFunc) {
	get := router.Methods(http.MethodGet).Subrouter()
	get.HandleFunc("/reservations/report", handler.Report)
	get.HandleFunc("/reservations/summary", handler.Summary)
	get.Use(authenticate)

	importRoute := router.Methods(http.MethodPost).Subrouter()
	importRoute.HandleFunc("/reservations/import", handler.Import)
	importRoute.Use(authenticate)
}

func (handler *ReportHandler) Import(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "ReportHandler.Import")
	defer span.End()

	identity := authorization.IdentityFromContext(ctx)
	if identity == nil {
		writeMessage(rw, http.StatusUnauthorized, errors.MissingTokenError)
		return
	}

	if err := h.ParseMultipartForm(maxImportSize); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeMessage(rw, http.StatusBadRequest, "Expected multipart upload")
		return
	}

	file, _, err := h.FormFile("file")
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeMessage(rw, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	result, err := handler.imports.ImportXLSX(ctx, identity, file)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Error("Import failed: ", err)
		writeError(rw, err)
		return
	}

	handler.logger.Info("Imported ", result.Imported, " rows, skipped ", result.Skipped)
	jsonResponse(result, rw)
}

func (handler *ReportHandler) Report(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "ReportHandler.Report")
	defer span.End()

	identity := authorization.IdentityFromContext(ctx)
	if identity == nil {
		writeMessage(rw, http.StatusUnauthorized, errors.MissingTokenError)
		return
	}

	query := h.URL.Query()

	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		writeMessage(rw, http.StatusBadRequest, "year query parameter required")
		return
	}

	month := -1
	if raw := query.Get("month"); raw != "" {
		month, err = strconv.Atoi(raw)
		if err != nil || month < 0 || month > 11 {
			writeMessage(rw, http.StatusBadRequest, "month must be between 0 and 11")
			return
		}
	}

	pdfBytes, err := handler.reports.Report(ctx, identity, year, month, query.Get("unterkunft"))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(rw, err)
		return
	}

	filename := fmt.Sprintf("reservierungen_%d.pdf", year)
	if month >= 0 {
		filename = fmt.Sprintf("reservierungen_%d_%02d.pdf", year, month+1)
	}

	rw.Header().Set("Content-Type", "application/pdf")
	rw.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	rw.WriteHeader(http.StatusOK)
	_, _ = rw.Write(pdfBytes)
}

func (handler *ReportHandler) Summary(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "ReportHandler.Summary")
	defer span.End()

	identity := authorization.IdentityFromContext(ctx)
	if identity == nil {
		writeMessage(rw, http.StatusUnauthorized, errors.MissingTokenError)
		return
	}

	summary, err := handler.reports.Summary(ctx, identity)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Error("Database exception: ", err)
		writeError(rw, err)
		return
	}

	jsonResponse(summary, rw)
}
