package handler

import (
	"errors"
	"net/http"
	"time"

	"familytree/internal/family"
	"familytree/internal/service"

	"github.com/gin-gonic/gin"
)

// Response wraps every API payload. Errors is set only on 400 replies.
type Response struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Errors    []ErrorItem `json:"errors,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// ErrorItem names one rejected request field.
type ErrorItem struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func reply(c *gin.Context, code int, message string, data interface{}, items []ErrorItem) {
	c.JSON(code, Response{
		Code:      code,
		Message:   message,
		Data:      data,
		Errors:    items,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Success writes a 200 response.
func Success(c *gin.Context, data interface{}) {
	reply(c, http.StatusOK, "success", data, nil)
}

// Created writes a 201 response.
func Created(c *gin.Context, data interface{}) {
	reply(c, http.StatusCreated, "created", data, nil)
}

// Error writes a response carrying only a message.
func Error(c *gin.Context, code int, message string) {
	reply(c, code, message, nil, nil)
}

// ValidationError writes a 400 listing every rejected field.
func ValidationError(c *gin.Context, items []ErrorItem) {
	reply(c, http.StatusBadRequest, "validation failed", nil, items)
}

// Fail writes err with the status its sentinel maps to. Validation errors
// keep their per-field detail.
func Fail(c *gin.Context, err error) {
	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		Error(c, statusOf(err), err.Error())
		return
	}
	items := make([]ErrorItem, len(verr.Fields))
	for i, f := range verr.Fields {
		items[i] = ErrorItem(f)
	}
	ValidationError(c, items)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, family.ErrPersonNotFound):
		return http.StatusNotFound
	case errors.Is(err, family.ErrDuplicatePerson):
		return http.StatusConflict
	case errors.Is(err, family.ErrInvalidGender),
		errors.Is(err, family.ErrTypeMismatch),
		errors.Is(err, family.ErrInvalidID),
		errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
