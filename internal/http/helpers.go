package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/gurukulhq/gurukul/internal/auth"
	"github.com/gurukulhq/gurukul/internal/blog"
	"github.com/gurukulhq/gurukul/internal/catalog"
	"github.com/gurukulhq/gurukul/internal/generator"
	"github.com/gurukulhq/gurukul/internal/i18n"
	"github.com/gurukulhq/gurukul/internal/landing"
	"github.com/gurukulhq/gurukul/internal/media"
	"github.com/gurukulhq/gurukul/internal/notice"
	"github.com/gurukulhq/gurukul/internal/referral"
	schemavalidation "github.com/gurukulhq/gurukul/internal/validation"
)

type errorResponse struct {
	Error   string                             `json:"error"`
	Message string                             `json:"message,omitempty"`
	Issues  []schemavalidation.ValidationIssue `json:"issues,omitempty"`
	Fields  map[string]string                  `json:"fields,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	return decoder.Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var catalogNotFound *catalog.NotFoundError
	var blogNotFound *blog.NotFoundError
	var landingNotFound *landing.NotFoundError
	var referralNotFound *referral.NotFoundError
	var localeNotFound *i18n.NotFoundError
	if errors.As(err, &catalogNotFound) ||
		errors.As(err, &blogNotFound) ||
		errors.As(err, &landingNotFound) ||
		errors.As(err, &referralNotFound) ||
		errors.As(err, &localeNotFound) ||
		errors.Is(err, notice.ErrNotConfigured) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: err.Error(),
		}
	}

	if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrInvalidToken) {
		return http.StatusUnauthorized, errorResponse{
			Error:   "unauthorized",
			Message: err.Error(),
		}
	}

	if errors.Is(err, catalog.ErrSlugExists) ||
		errors.Is(err, catalog.ErrCategoryExists) ||
		errors.Is(err, blog.ErrSlugExists) ||
		errors.Is(err, landing.ErrSlugExists) ||
		errors.Is(err, referral.ErrCodeExists) {
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}
	}

	var fieldErrors validation.Errors
	if errors.As(err, &fieldErrors) {
		fields := make(map[string]string, len(fieldErrors))
		for name, fieldErr := range fieldErrors {
			fields[name] = fieldErr.Error()
		}
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Fields:  fields,
		}
	}

	if goerrors.IsCategory(err, goerrors.CategoryValidation) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
		}
	}

	if errors.Is(err, landing.ErrContentInvalid) || errors.Is(err, schemavalidation.ErrSchemaValidation) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Issues:  schemavalidation.Issues(err),
		}
	}

	if errors.Is(err, generator.ErrGenerationFailed) {
		return http.StatusBadGateway, errorResponse{
			Error:   "generation_failed",
			Message: err.Error(),
		}
	}

	if errors.Is(err, landing.ErrGenerationInFlight) {
		return http.StatusConflict, errorResponse{
			Error:   "generation_in_flight",
			Message: err.Error(),
		}
	}

	if errors.Is(err, catalog.ErrTitleRequired) ||
		errors.Is(err, catalog.ErrSlugRequired) ||
		errors.Is(err, catalog.ErrSlugInvalid) ||
		errors.Is(err, catalog.ErrIDRequired) ||
		errors.Is(err, catalog.ErrNamespaceInvalid) ||
		errors.Is(err, catalog.ErrNameRequired) ||
		errors.Is(err, blog.ErrTitleRequired) ||
		errors.Is(err, blog.ErrSlugRequired) ||
		errors.Is(err, blog.ErrSlugInvalid) ||
		errors.Is(err, blog.ErrIDRequired) ||
		errors.Is(err, notice.ErrTitleRequired) ||
		errors.Is(err, notice.ErrWindowInvalid) ||
		errors.Is(err, landing.ErrSlugRequired) ||
		errors.Is(err, landing.ErrSlugInvalid) ||
		errors.Is(err, landing.ErrStatusInvalid) ||
		errors.Is(err, landing.ErrIDRequired) ||
		errors.Is(err, landing.ErrWizardClosed) ||
		errors.Is(err, landing.ErrNotInPreview) ||
		errors.Is(err, landing.ErrUnknownField) ||
		errors.Is(err, referral.ErrCodeRequired) ||
		errors.Is(err, referral.ErrNameRequired) ||
		errors.Is(err, referral.ErrIDRequired) ||
		errors.Is(err, referral.ErrStatusInvalid) ||
		errors.Is(err, media.ErrFilenameRequired) ||
		errors.Is(err, media.ErrUnsupportedType) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

func parseUUID(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
