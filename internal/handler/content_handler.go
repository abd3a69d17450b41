package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cms/internal/service"
	"cms/internal/storage"
)

// ContentHandler handles content item endpoints.
type ContentHandler struct {
	contentService service.ContentService
	files          *storage.FileStore
}

// NewContentHandler creates a new content handler.
func NewContentHandler(contentService service.ContentService, files *storage.FileStore) *ContentHandler {
	return &ContentHandler{contentService: contentService, files: files}
}

// ContentRequest represents a content payload. All fields are optional at the
// binding layer; create-time requirements are enforced by the service so the
// same shape serves both create and partial update.
type ContentRequest struct {
	Title      *string `json:"title" form:"title"`
	Body       *string `json:"body" form:"body"`
	Summary    *string `json:"summary" form:"summary"`
	Categories *string `json:"categories" form:"categories"`
}

func (h *ContentHandler) contentID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// bindPDF stores an attached PDF when the request is multipart and carries one.
// Returns nil when no file was attached.
func (h *ContentHandler) bindPDF(c echo.Context) (*string, error) {
	fileHeader, err := c.FormFile("pdf_file")
	if err != nil {
		return nil, nil
	}
	src, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	stored, err := h.files.SavePDF(src, fileHeader.Filename)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// Get godoc
// @Summary Fetch one content item
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Content ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /content/{id}/ [get]
func (h *ContentHandler) Get(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}
	id, ok := h.contentID(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "content ID is mandatory.")
	}

	item, err := h.contentService.Get(c.Request().Context(), user, id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondSuccess(c, http.StatusOK, newContentResponse(item), "content details retrieved.")
}

// GetAll godoc
// @Summary List the caller's content items, offset-paginated
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number, 1-based"
// @Param items query int false "Items per page"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /content/all/ [get]
func (h *ContentHandler) GetAll(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}

	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		page = 1
	}
	items, err := strconv.Atoi(c.QueryParam("items"))
	if err != nil {
		items = 10
	}

	results, pagination, err := h.contentService.ListForAuthor(c.Request().Context(), user, page, items)
	if err != nil {
		return respondDomainError(c, err)
	}
	if len(results) == 0 {
		return respondSuccess(c, http.StatusOK, []ContentResponse{}, "Auther currently have no content.")
	}

	body := echo.Map{
		"status": http.StatusOK,
		"success": echo.Map{
			"user":            newUserResponse(user),
			"content_details": newContentResponses(results),
		},
		"page_details": pagination,
		"message":      "contents details retrieved.",
	}
	return c.JSON(http.StatusOK, body)
}

// Add godoc
// @Summary Create a content item authored by the caller
// @Tags content
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param request body ContentRequest true "Content data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /content/add/ [post]
func (h *ContentHandler) Add(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}

	var req ContentRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	pdf, err := h.bindPDF(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	input := service.CreateContentInput{}
	if req.Title != nil {
		input.Title = *req.Title
	}
	if req.Body != nil {
		input.Body = *req.Body
	}
	if req.Summary != nil {
		input.Summary = *req.Summary
	}
	if req.Categories != nil {
		input.Categories = *req.Categories
	}
	if pdf != nil {
		input.PDFFile = *pdf
	}

	item, err := h.contentService.Create(c.Request().Context(), user, input)
	if err != nil {
		if pdf != nil {
			_ = h.files.Remove(*pdf)
		}
		return respondDomainError(c, err)
	}
	return respondSuccess(c, http.StatusCreated, newContentResponse(item), "content details added.")
}

// Update godoc
// @Summary Partially update a content item
// @Tags content
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Content ID"
// @Param request body ContentRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /content/update/{id}/ [put]
func (h *ContentHandler) Update(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}
	id, ok := h.contentID(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "content ID is mandatory.")
	}

	var req ContentRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	pdf, err := h.bindPDF(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	item, err := h.contentService.Update(c.Request().Context(), user, id, service.UpdateContentInput{
		Title:      req.Title,
		Body:       req.Body,
		Summary:    req.Summary,
		Categories: req.Categories,
		PDFFile:    pdf,
	})
	if err != nil {
		if pdf != nil {
			_ = h.files.Remove(*pdf)
		}
		return respondDomainError(c, err)
	}
	return respondSuccess(c, http.StatusOK, newContentResponse(item), "content details updated")
}

// Delete godoc
// @Summary Delete a content item
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Content ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /content/delete/{id}/ [get]
func (h *ContentHandler) Delete(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}
	id, ok := h.contentID(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "content ID is mandatory.")
	}

	if err := h.contentService.Delete(c.Request().Context(), user, id); err != nil {
		return respondDomainError(c, err)
	}
	return respondSuccess(c, http.StatusOK, []string{}, "content deleted successfully.")
}
