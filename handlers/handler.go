package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"booking_service/errors"
)

// KeyProduct carries the deserialized request payload through the context,
// set by the per-route deserialization middleware.
type KeyProduct struct{}

type messageResponse struct {
	Message string `json:"message"`
}

func jsonResponse(payload interface{}, rw http.ResponseWriter) {
	if err := json.NewEncoder(rw).Encode(payload); err != nil {
		http.Error(rw, errors.InternalServerErrorText, http.StatusInternalServerError)
	}
}

func writeMessage(rw http.ResponseWriter, status int, message string) {
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(messageResponse{Message: message})
}

// writeError converts the service error taxonomy into a status and message at
// the request boundary. Unexpected failures answer a generic 500 and stay
// fatal to this request only.
func writeError(rw http.ResponseWriter, err error) {
	var validationErr *errors.ValidationError

	switch {
	case stderrors.As(err, &validationErr):
		writeMessage(rw, http.StatusBadRequest, validationErr.Message)
	case stderrors.Is(err, errors.ErrInvalidCredentials):
		writeMessage(rw, http.StatusUnauthorized, errors.InvalidCredentials)
	case stderrors.Is(err, errors.ErrMissingToken), stderrors.Is(err, errors.ErrInvalidToken):
		writeMessage(rw, http.StatusUnauthorized, err.Error())
	case stderrors.Is(err, errors.ErrEmailExists):
		writeMessage(rw, http.StatusConflict, errors.EmailAlreadyExist)
	case stderrors.Is(err, errors.ErrNotFound), stderrors.Is(err, errors.ErrNoReportData):
		writeMessage(rw, http.StatusNotFound, err.Error())
	default:
		writeMessage(rw, http.StatusInternalServerError, errors.InternalServerErrorText)
	}
}
