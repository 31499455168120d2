package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Error   string            `json:"error,omitempty"`
}

func ParseBody(body io.Reader, out interface{}) error {
	return json.NewDecoder(body).Decode(out)
}

func RespondJSON(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	writeJSON(w, statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondError answers with the failure envelope. The raw error text is
// attached for server-side failures, matching what clients already expect.
func RespondError(w http.ResponseWriter, statusCode int, err error, message string) {
	resp := Response{
		Success: false,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	if statusCode >= http.StatusInternalServerError {
		logrus.WithError(err).Error(message)
	}
	writeJSON(w, statusCode, resp)
}

// RespondValidationError turns validator failures into field-level messages.
func RespondValidationError(w http.ResponseWriter, err error) {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		RespondError(w, http.StatusBadRequest, err, "Validation failed")
		return
	}
	fields := make(map[string]string, len(vErrs))
	for _, fe := range vErrs {
		fields[strings.ToLower(fe.Field())] = "failed on the '" + fe.Tag() + "' rule"
	}
	writeJSON(w, http.StatusBadRequest, Response{
		Success: false,
		Message: "Validation failed",
		Errors:  fields,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}
