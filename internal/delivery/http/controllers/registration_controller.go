package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventsite/internal/delivery/http/helpers"
	"eventsite/internal/delivery/http/middleware"
	"eventsite/internal/domain"
)

type RegistrationController struct {
	Logger        *slog.Logger
	Events        domain.EventService
	Registrations domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, events domain.EventService, registrations domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:        logger,
		Events:        events,
		Registrations: registrations,
	}
}

// RegisterRequest is the request body for POST /events/{slug}/register.
type RegisterRequest struct {
	Comment string `json:"comment"`
}

// Register godoc
// @Summary Register for an event
// @Description Registers the authenticated user for the event addressed by slug, with an optional comment. A second registration for the same event is rejected with a field error.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Param body body RegisterRequest true "Optional comment"
// @Success 201 {object} helpers.APIResponse "data contains the registration"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed, error.fields set"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/register [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	eventSlug := r.PathValue("slug")
	if eventSlug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	var req RegisterRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Events.GetBySlug(r.Context(), eventSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	reg, verrs, err := c.Registrations.Register(r.Context(), event, claims.UserID, req.Comment)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if len(verrs) > 0 {
		helpers.WriteValidationError(w, verrs)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}

// DropRegistrations godoc
// @Summary Drop the caller's registrations
// @Description Removes every registration the authenticated user holds, across all events. This endpoint is intentionally not scoped to one event; dropping is all-or-nothing.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Success 204 "dropped"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations [delete]
func (c *RegistrationController) DropRegistrations(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Registrations.Drop(r.Context(), claims.UserID); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
