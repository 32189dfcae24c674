package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"booking_service/authorization"
	"booking_service/casbinAuthorization"
	"booking_service/domain"
	"booking_service/handlers"
	application "booking_service/service"
	store2 "booking_service/store"

	"github.com/casbin/casbin"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/trace"
)

var testKey = []byte("test-secret")

// newTestRouter wires the full request path the way the server does, backed by
// a throwaway file database.
func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	tracer := trace.NewNoopTracerProvider().Tracer("test")

	db, err := store2.NewFileDatabase(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	accountStore := store2.NewAccountFileStore(db)
	accommodationStore := store2.NewAccommodationFileStore(db)
	reservationStore := store2.NewReservationFileStore(db)

	accountService := application.NewAccountService(accountStore, testKey, tracer)
	accommodationService := application.NewAccommodationService(accommodationStore, tracer)
	reservationService := application.NewReservationService(reservationStore, tracer)
	reportService := application.NewReportService(reservationStore, tracer)
	importService := application.NewImportService(reservationService, tracer)

	enforcer, err := casbin.NewEnforcerSafe(
		"../casbinAuthorization/rbac_model.conf",
		"../casbinAuthorization/policy.csv",
	)
	require.NoError(t, err)

	authenticate := authorization.Authenticate(testKey)

	router := mux.NewRouter()
	router.Use(casbinAuthorization.CasbinMiddleware(enforcer, testKey, logger))

	handlers.NewAuthHandler(logger, accountService, tracer).Init(router)
	handlers.NewAccommodationHandler(logger, accommodationService, tracer).Init(router, authenticate)
	handlers.NewReservationHandler(logger, reservationService, tracer).Init(router, authenticate)
	handlers.NewReportHandler(logger, reportService, importService, tracer).Init(router, authenticate)

	return router
}

func doJSON(t *testing.T, router *mux.Router, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	request := httptest.NewRequest(method, path, body)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func registerAccount(t *testing.T, router *mux.Router, email string) *domain.AuthResponse {
	t.Helper()

	recorder := doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]string{
		"firstName": "Test",
		"lastName":  "User",
		"email":     email,
		"password":  "pw123",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	response := &domain.AuthResponse{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), response))
	require.NotEmpty(t, response.AccessToken)
	return response
}

func TestBookingFlow(t *testing.T) {
	router := newTestRouter(t)

	alice := registerAccount(t, router, "alice@example.com")

	recorder := doJSON(t, router, http.MethodPost, "/accommodations", alice.AccessToken, map[string]string{
		"name":     "Cabin A",
		"standort": "Lot 1",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	// The listing is public, no token needed.
	recorder = doJSON(t, router, http.MethodGet, "/accommodations", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var accommodations []*domain.Accommodation
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &accommodations))
	require.Len(t, accommodations, 1)
	require.Equal(t, "Cabin A", accommodations[0].Name)

	recorder = doJSON(t, router, http.MethodPost, "/reservations", alice.AccessToken, map[string]interface{}{
		"vorname":    "Max",
		"nachname":   "Muster",
		"startdatum": "2024-03-01",
		"enddatum":   "2024-03-04",
		"preis":      250.5,
		"unterkunft": "Cabin A",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	created := &domain.Reservation{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), created))
	require.Equal(t, "3 Tage", created.Dauer)
	require.Equal(t, alice.User.ID, created.OwnerID)

	recorder = doJSON(t, router, http.MethodGet, "/reservations", alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var reservations []*domain.Reservation
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &reservations))
	require.Len(t, reservations, 1)

	// A second account starts with an empty collection.
	bob := registerAccount(t, router, "bob@example.com")
	recorder = doJSON(t, router, http.MethodGet, "/reservations", bob.AccessToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	reservations = nil
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &reservations))
	require.Empty(t, reservations)
}

func TestProtectedRoutesRejectMissingOrBadToken(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodGet, "/reservations", "", nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = doJSON(t, router, http.MethodPost, "/accommodations", "", map[string]string{"name": "X"})
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = doJSON(t, router, http.MethodGet, "/reservations", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestCrossUserReservationLooksMissing(t *testing.T) {
	router := newTestRouter(t)

	alice := registerAccount(t, router, "alice@example.com")
	bob := registerAccount(t, router, "bob@example.com")

	recorder := doJSON(t, router, http.MethodPost, "/reservations", alice.AccessToken, map[string]string{
		"startdatum": "2024-03-01",
		"enddatum":   "2024-03-04",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	created := &domain.Reservation{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), created))

	recorder = doJSON(t, router, http.MethodPut, "/reservations/"+created.ID, bob.AccessToken, map[string]string{"vorname": "X"})
	require.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = doJSON(t, router, http.MethodDelete, "/reservations/"+created.ID, bob.AccessToken, nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)

	// Alice can still delete her own record.
	recorder = doJSON(t, router, http.MethodDelete, "/reservations/"+created.ID, alice.AccessToken, nil)
	require.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router := newTestRouter(t)

	registerAccount(t, router, "alice@example.com")

	recorder := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "ghost@example.com",
		"password": "pw123",
	})
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router := newTestRouter(t)

	registerAccount(t, router, "alice@example.com")

	recorder := doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "alice@example.com",
		"password": "other",
	})
	require.Equal(t, http.StatusConflict, recorder.Code)
}

func TestReservationValidation(t *testing.T) {
	router := newTestRouter(t)
	alice := registerAccount(t, router, "alice@example.com")

	recorder := doJSON(t, router, http.MethodPost, "/reservations", alice.AccessToken, map[string]string{
		"startdatum": "2024-03-04",
		"enddatum":   "2024-03-01",
	})
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestImportReportAndSummary(t *testing.T) {
	router := newTestRouter(t)
	alice := registerAccount(t, router, "alice@example.com")

	// No data yet, nothing to export.
	recorder := doJSON(t, router, http.MethodGet, "/reservations/report?year=2024", alice.AccessToken, nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = doJSON(t, router, http.MethodGet, "/reservations/report", alice.AccessToken, nil)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	header := []interface{}{"Vorname", "Nachname", "Ausweisnummer", "Telefonnummer", "Startdatum", "Enddatum", "Preis", "Unterkunft", "Standort"}
	row := []interface{}{"Max", "Muster", "L01X", "0176", "2024-03-01", "2024-03-04", 250.5, "Cabin A", "Lot 1"}
	require.NoError(t, workbook.SetSheetRow(sheet, "A1", &header))
	require.NoError(t, workbook.SetSheetRow(sheet, "A2", &row))
	workbookBuf, err := workbook.WriteToBuffer()
	require.NoError(t, err)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "reservierungen.xlsx")
	require.NoError(t, err)
	_, err = part.Write(workbookBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, form.Close())

	request := httptest.NewRequest(http.MethodPost, "/reservations/import", &body)
	request.Header.Set("Authorization", "Bearer "+alice.AccessToken)
	request.Header.Set("Content-Type", form.FormDataContentType())
	importRecorder := httptest.NewRecorder()
	router.ServeHTTP(importRecorder, request)

	require.Equal(t, http.StatusOK, importRecorder.Code)
	result := &domain.ImportResult{}
	require.NoError(t, json.Unmarshal(importRecorder.Body.Bytes(), result))
	require.Equal(t, 1, result.Imported)
	require.Zero(t, result.Skipped)

	recorder = doJSON(t, router, http.MethodGet, "/reservations/report?year=2024&month=2", alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "application/pdf", recorder.Header().Get("Content-Type"))
	require.Equal(t, fmt.Sprintf("attachment; filename=%q", "reservierungen_2024_03.pdf"), recorder.Header().Get("Content-Disposition"))
	require.Equal(t, "%PDF", recorder.Body.String()[:4])

	recorder = doJSON(t, router, http.MethodGet, "/reservations/summary", alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	summary := &domain.RevenueSummary{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), summary))
}
