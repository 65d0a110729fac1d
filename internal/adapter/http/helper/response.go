package helper

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapi/internal/core/domain"
)

// build assembles a response envelope. The status tag is part of the
// contract and anything outside "success" and "fail" is a programming
// error, surfaced as an opaque 500 by the caller.
func build(status string, payload gin.H) (gin.H, error) {
	switch status {
	case "success":
		return gin.H{"status": status, "data": payload["data"]}, nil
	case "fail":
		errs := payload["errors"]

		if errs == nil {
			errs = []any{}
		}

		return gin.H{"status": status, "message": payload["message"], "errors": errs}, nil
	default:
		return nil, errors.New("unknown response status: " + status)
	}
}

func Success(c *gin.Context, statusCode int, data any) {
	body, err := build("success", gin.H{"data": data})

	if err != nil {
		internalError(c)
		return
	}

	c.JSON(statusCode, body)
}

func Fail(c *gin.Context, statusCode int, message string, errs any) {
	body, err := build("fail", gin.H{"message": message, "errors": errs})

	if err != nil {
		internalError(c)
		return
	}

	c.JSON(statusCode, body)
}

// RenderError is the single boundary between domain errors and HTTP.
// Handlers hand every error here instead of picking status codes
// themselves.
func RenderError(c *gin.Context, err error) {
	var domainErr *domain.Error

	if errors.As(err, &domainErr) {
		switch domainErr.Kind {
		case domain.ErrorValidation:
			Fail(c, http.StatusUnprocessableEntity, "form validation error", domainErr.Fields)
			return
		case domain.ErrorNotFound:
			Fail(c, http.StatusNotFound, "not found error", nil)
			return
		case domain.ErrorUnauthorized:
			Fail(c, http.StatusUnauthorized, "unauthorized error", nil)
			return
		}
	}

	internalError(c)
}

// internalError deliberately leaks nothing about the underlying cause.
func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  "fail",
		"message": "internal server error",
		"errors":  []any{},
	})
}
