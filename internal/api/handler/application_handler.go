package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ignitecapital/funding-platform/internal/core/domain"
	"github.com/ignitecapital/funding-platform/internal/core/ports"
)

// maxUploadBytes caps a single document upload at 10 MiB.
const maxUploadBytes = 10 << 20

// ApplicationHandler handles HTTP requests for fund applications.
type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Create handles POST /applications.
//
// @Summary      Create a new fund application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createApplicationRequest  true  "Application details"
// @Success      201   {object}  domain.Application
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /applications [post]
func (h *ApplicationHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req createApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	app, err := h.service.Create(c.Request().Context(), caller, ports.CreateApplicationInput{
		FundType: domain.FundType(req.FundType),
		Fields:   req.Fields.toDomain(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, app)
}

// ListMine handles GET /applications/my-applications.
//
// @Summary      List own applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Application
// @Failure      401  {object}  errorResponse
// @Router       /applications/my-applications [get]
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	apps, err := h.service.ListMine(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	if apps == nil {
		apps = []*domain.Application{}
	}
	return c.JSON(http.StatusOK, apps)
}

// Get handles GET /applications/:id.
//
// @Summary      Get an application by id
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application id"
// @Success      200  {object}  domain.Application
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /applications/{id} [get]
func (h *ApplicationHandler) Get(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	app, err := h.service.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}

// Update handles PUT /applications/:id.
//
// @Summary      Update an application's form fields
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Application id"
// @Param        body  body      updateApplicationRequest  true  "New field values"
// @Success      200   {object}  domain.Application
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /applications/{id} [put]
func (h *ApplicationHandler) Update(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req updateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	app, err := h.service.Update(c.Request().Context(), caller, c.Param("id"), req.Fields.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}

// Upload handles POST /applications/:id/upload (multipart fields: document, documentType).
//
// @Summary      Attach a document to an application
// @Tags         applications
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id            path      string  true  "Application id"
// @Param        document      formData  file    true  "File to attach"
// @Param        documentType  formData  string  true  "Business document category"
// @Success      201  {object}  domain.Document
// @Failure      403  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /applications/{id}/upload [post]
func (h *ApplicationHandler) Upload(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	docType := domain.DocumentType(c.FormValue("documentType"))
	if !docType.Valid() {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "documentType must be one of: BUSINESS_PLAN, FINANCIAL_STATEMENTS, PITCH_DECK, ID_DOCUMENT, OTHER")
	}

	fh, err := c.FormFile("document")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "document file is required")
	}
	if fh.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "document exceeds upload limit")
	}

	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded file")
	}

	doc, err := h.service.AttachDocument(c.Request().Context(), caller, ports.AttachDocumentInput{
		ApplicationID: c.Param("id"),
		Type:          docType,
		FileName:      fh.Filename,
		Data:          data,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, doc)
}

// Submit handles POST /applications/:id/submit.
//
// @Summary      Submit an application for review
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application id"
// @Success      200  {object}  domain.Application
// @Failure      403  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /applications/{id}/submit [post]
func (h *ApplicationHandler) Submit(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	app, err := h.service.Submit(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}

// ListAll handles GET /applications/admin/all.
//
// @Summary      List all applications (admin)
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        status    query  string  false  "Filter by status"
// @Param        fundType  query  string  false  "Filter by fund type"
// @Param        search    query  string  false  "Partial match on business name"
// @Param        page      query  int     false  "Page number (1-based)"
// @Param        limit     query  int     false  "Rows per page (max 100)"
// @Success      200  {object}  listApplicationsResponse
// @Failure      403  {object}  errorResponse
// @Router       /applications/admin/all [get]
func (h *ApplicationHandler) ListAll(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListAll(c.Request().Context(), caller, ports.ListApplicationsInput{
		Status:   c.QueryParam("status"),
		FundType: c.QueryParam("fundType"),
		Search:   c.QueryParam("search"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	data := result.Items
	if data == nil {
		data = []*domain.Application{}
	}
	return c.JSON(http.StatusOK, listApplicationsResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// SetStatus handles PATCH /applications/:id/status.
//
// @Summary      Apply a review status transition (admin)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Application id"
// @Param        body  body      setStatusRequest  true  "Target status and optional review notes"
// @Success      200   {object}  domain.Application
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /applications/{id}/status [patch]
func (h *ApplicationHandler) SetStatus(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	app, err := h.service.SetStatus(c.Request().Context(), caller, ports.SetStatusInput{
		ApplicationID: c.Param("id"),
		Status:        domain.ApplicationStatus(req.Status),
		ReviewNotes:   req.ReviewNotes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}

// Delete handles DELETE /applications/:id.
//
// @Summary      Delete an application and its documents (admin)
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /applications/{id} [delete]
func (h *ApplicationHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "application deleted"})
}
