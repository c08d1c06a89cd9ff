package model

import (
	"errors"
	"net/http"

	"books-api/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrIDMismatch          = errors.New("id in path does not match id in body")
	ErrBookNotFound        = errors.New("book not found")
	ErrDuplicateExternalID = errors.New("a book with this id already exists")
	ErrAuthorNotFound      = errors.New("author not found")
	ErrAmbiguousAuthor     = errors.New("author name matches more than one author")
	ErrConcurrencyConflict = errors.New("book was modified by another request")
)

// ValidationError carries the per-field messages from ozzo-validation.
// errors.Is(err, ErrValidation) holds for it.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

type bookError struct {
	Err     error
	Status  int
	Code    string
	Message string
}

// bookErrors is matched top to bottom with errors.Is.
var bookErrors = []bookError{
	{ErrIDMismatch, http.StatusBadRequest, "ID_MISMATCH", "The id in the path does not match the id in the body"},
	{ErrBookNotFound, http.StatusNotFound, "BOOK_NOT_FOUND", "The specified book does not exist"},
	{ErrDuplicateExternalID, http.StatusConflict, "DUPLICATE_EXTERNAL_ID", "A book with this id already exists"},
	{ErrAuthorNotFound, http.StatusUnprocessableEntity, "AUTHOR_NOT_FOUND", "The specified author does not exist"},
	{ErrAmbiguousAuthor, http.StatusUnprocessableEntity, "AMBIGUOUS_AUTHOR", "The author name matches more than one author"},
	{ErrConcurrencyConflict, http.StatusConflict, "CONCURRENT_MODIFICATION", "The book has been modified by another request. Reload it and resubmit"},
}

// ToHTTPStatus maps a service error to its status code and error code.
func ToHTTPStatus(err error) (int, string) {
	if errors.Is(err, ErrValidation) {
		return http.StatusBadRequest, "VALIDATION_FAILED"
	}
	for _, e := range bookErrors {
		if errors.Is(err, e.Err) {
			return e.Status, e.Code
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// HandleBookError writes the error envelope for err. Returns false when err is nil.
func HandleBookError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", vErr.Err)
		return true
	}

	for _, e := range bookErrors {
		if errors.Is(err, e.Err) {
			response.ErrorResponse(c, e.Status, e.Code, e.Message)
			return true
		}
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.Request.URL.Path).
		Msg("unhandled book error")
	response.InternalServerError(c, "Internal server error")
	return true
}
