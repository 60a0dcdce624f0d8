// internal/app/system/respond/respond.go

// Package respond renders the uniform JSON envelope used by every API
// handler: {"success": bool, "message": string, "data": …}. It also owns
// request-body decoding so unknown JSON keys are rejected everywhere.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/skillforge/skillforge/internal/app/system/apperr"
	"go.uber.org/zap"
)

// Envelope is the wire shape of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

var validate = validator.New()

// OK writes a 200 with the given message and optional data.
func OK(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 with the given message and data.
func Created(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Err classifies err via apperr, logs non-client failures, and writes the
// failure envelope. Internal detail is only attached for non-5xx kinds.
func Err(w http.ResponseWriter, log *zap.Logger, err error) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError && log != nil {
		log.Error("request failed", zap.Error(err))
	}
	JSON(w, status, Envelope{Success: false, Message: apperr.MessageOf(err)})
}

// JSON writes any payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// DecodeJSON decodes the request body into dst, rejecting unknown keys, and
// runs validator tags. Returns an apperr validation error on any failure.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Wrap(apperr.KindValidation, decodeMessage(err), err)
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apperr.Validation(validationMessage(verrs))
		}
		return apperr.Wrap(apperr.KindValidation, "invalid request body", err)
	}
	return nil
}

// ValidateStruct runs validator tags on an already-populated struct, such as
// one built from multipart form fields.
func ValidateStruct(dst any) error {
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apperr.Validation(validationMessage(verrs))
		}
		return apperr.Wrap(apperr.KindValidation, "invalid request", err)
	}
	return nil
}

func decodeMessage(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "unknown field") {
		return "request body contains an " + msg[strings.Index(msg, "unknown field"):]
	}
	return "invalid request body"
}

func validationMessage(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "email":
			parts = append(parts, fe.Field()+" must be a valid email address")
		case "min":
			parts = append(parts, fe.Field()+" is too short")
		case "gt", "gte":
			parts = append(parts, fe.Field()+" must be positive")
		default:
			parts = append(parts, fe.Field()+" is invalid")
		}
	}
	return strings.Join(parts, ", ")
}
