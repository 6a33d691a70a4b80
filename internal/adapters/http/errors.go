package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/xup/internal/adapters/http/dto"
	"github.com/jsamuelsen/xup/internal/domain"
	"github.com/jsamuelsen/xup/internal/platform/logging"
	"github.com/jsamuelsen/xup/internal/platform/telemetry"
)

// MapDomainError maps a domain error to an HTTP status code and error response.
// Unknown errors are mapped to 500 Internal Server Error with a generic message.
func MapDomainError(err error) (int, *dto.ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, dto.NewErrorResponse(dto.ErrorCodeNotFound, err.Error())

	case domain.IsValidation(err):
		resp := dto.NewErrorResponse(dto.ErrorCodeValidation, err.Error())

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			resp.WithDetail(validationErr.Field, validationErr.Message)
		}

		return http.StatusBadRequest, resp

	case domain.IsInvalidDocument(err):
		resp := dto.NewErrorResponse(dto.ErrorCodeInvalidDocument, err.Error())

		var parseErr *domain.ParseError
		if errors.As(err, &parseErr) {
			withParseDetails(resp, parseErr)
		}

		return http.StatusUnprocessableEntity, resp

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, dto.NewErrorResponse(dto.ErrorCodeUnavailable, err.Error())

	default:
		return http.StatusInternalServerError, dto.NewErrorResponse(
			dto.ErrorCodeInternal,
			"an internal error occurred",
		)
	}
}

func withParseDetails(resp *dto.ErrorResponse, e *domain.ParseError) {
	line := ""
	if e.Line > 0 {
		line = strconv.Itoa(e.Line)
	}

	resp.WithDetail("path", e.Path).
		WithDetail("line", line).
		WithDetail("field", e.Field).
		WithDetail("expected", e.Expected)
}

// RespondWithError writes an error response to the gin.Context.
// It maps domain errors to HTTP responses and includes the trace ID if available.
func RespondWithError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)
	errResp.TraceID = telemetry.TraceID(c.Request.Context())

	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("internal error",
			"error", err.Error(),
			"trace_id", errResp.TraceID,
		)
	}

	c.JSON(status, errResp)
}
