package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"books-api/internal/domains/book/model"
	"books-api/internal/domains/book/service"
	"books-api/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Handler - HTTP handler cho /books
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListBooks - GET /books
func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.service.ListBooks(c.Request.Context())
	if model.HandleBookError(c, err) {
		return
	}
	c.JSON(http.StatusOK, books)
}

// GetBook - GET /books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), id)
	if model.HandleBookError(c, err) {
		return
	}
	c.JSON(http.StatusOK, book)
}

// GetBookDetail - GET /books/:id/details
func (h *Handler) GetBookDetail(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	detail, err := h.service.GetBookDetail(c.Request.Context(), id)
	if model.HandleBookError(c, err) {
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GetBooksByDate - GET /books/date/*pubdate
// Accepts 2024-03-01 and 2024/03/01.
func (h *Handler) GetBooksByDate(c *gin.Context) {
	raw := strings.Trim(c.Param("pubdate"), "/")
	date, err := parsePathDate(raw)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	books, err := h.service.GetBooksByDate(c.Request.Context(), date)
	if model.HandleBookError(c, err) {
		return
	}
	c.JSON(http.StatusOK, books)
}

// CreateBook - POST /books
func (h *Handler) CreateBook(c *gin.Context) {
	var req model.BookDetailDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_BODY", "Request body is not a valid book", err.Error())
		return
	}

	created, err := h.service.CreateBook(c.Request.Context(), req)
	if model.HandleBookError(c, err) {
		return
	}

	c.Header("Location", fmt.Sprintf("/books/%d", created.ID))
	c.JSON(http.StatusCreated, created)
}

// UpdateBook - PUT /books/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	var req model.BookDetailDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_BODY", "Request body is not a valid book", err.Error())
		return
	}

	if model.HandleBookError(c, h.service.UpdateBook(c.Request.Context(), id, req)) {
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteBook - DELETE /books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	if model.HandleBookError(c, h.service.DeleteBook(c.Request.Context(), id)) {
		return
	}
	c.Status(http.StatusOK)
}

func parseBookID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "book id must be an integer")
		return 0, false
	}
	return id, true
}

func parsePathDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006/01/02", raw); err == nil {
		return t, nil
	}
	t, err := model.ParsePublishDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-MM-dd or yyyy/MM/dd", raw)
	}
	return t, nil
}
