package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ignitecapital/funding-platform/internal/core/domain"
	"github.com/ignitecapital/funding-platform/internal/core/ports"
)

// ContactHandler handles the public contact form and its admin triage views.
type ContactHandler struct {
	service ports.ContactService
}

func NewContactHandler(service ports.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// Submit handles POST /contact. No authentication.
//
// @Summary      Submit a contact message
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      contactRequest  true  "Contact message"
// @Success      201   {object}  domain.ContactMessage
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	msg, err := h.service.Submit(c.Request().Context(), ports.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

// List handles GET /contact (admin).
//
// @Summary      List contact messages (admin)
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ContactMessage
// @Failure      403  {object}  errorResponse
// @Router       /contact [get]
func (h *ContactHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	msgs, err := h.service.List(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	if msgs == nil {
		msgs = []*domain.ContactMessage{}
	}
	return c.JSON(http.StatusOK, msgs)
}

// Get handles GET /contact/:id (admin).
//
// @Summary      Get a contact message (admin)
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Message id"
// @Success      200  {object}  domain.ContactMessage
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /contact/{id} [get]
func (h *ContactHandler) Get(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	msg, err := h.service.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msg)
}

// SetResponded handles PATCH /contact/:id/respond (admin).
//
// @Summary      Mark a contact message responded (admin)
// @Tags         contact
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Message id"
// @Param        body  body      respondRequest  true  "Responded flag"
// @Success      200   {object}  domain.ContactMessage
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /contact/{id}/respond [patch]
func (h *ContactHandler) SetResponded(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req respondRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	msg, err := h.service.SetResponded(c.Request().Context(), caller, c.Param("id"), *req.Responded)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msg)
}
