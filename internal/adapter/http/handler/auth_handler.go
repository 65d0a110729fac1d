package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	. "todoapi/internal/adapter/http/helper"
	"todoapi/internal/adapter/http/middleware"
	. "todoapi/internal/adapter/http/validation"
	"todoapi/internal/adapter/telemetry"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/model/response"
	"todoapi/internal/core/port"
	"todoapi/internal/core/util"
	. "todoapi/pkg/tracing"
)

type AuthHandler struct {
	svc     port.AuthService
	logger  *telemetry.Logger
	metrics *telemetry.AppMetrics
}

func NewAuthHandler(svc port.AuthService, logger *telemetry.Logger, metrics *telemetry.AppMetrics) *AuthHandler {
	return &AuthHandler{
		svc:     svc,
		logger:  logger,
		metrics: metrics,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.auth.Register", []attribute.KeyValue{
		attribute.String("handler.operation", "Register"),
	})
	defer span.End()

	params, err := util.ParamsToMap[request.RegisterRequest](c)

	if err != nil {
		Fail(c, http.StatusBadRequest, "malformed request body", nil)
		return
	}

	if err := Validator.Struct(params); err != nil {
		RenderError(c, domain.Validation(FormatValidationErrors(err)))
		return
	}

	user, token, err := h.svc.Register(ctx, &params)

	if err != nil {
		AddSpanError(span, err)

		h.logger.Logger.Ctx(ctx).Warn("registration rejected",
			zap.String("email", params.Email),
			zap.Error(err))

		RenderError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordAuthOperation(ctx, "register")
	}

	Success(c, http.StatusCreated, gin.H{
		"user":  response.NewUserResponse(user),
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.auth.Login", []attribute.KeyValue{
		attribute.String("handler.operation", "Login"),
	})
	defer span.End()

	params, err := util.ParamsToMap[request.LoginRequest](c)

	if err != nil {
		Fail(c, http.StatusBadRequest, "malformed request body", nil)
		return
	}

	// Field validation runs before the credential check, so a missing
	// password is a 422 rather than a 401.
	if err := Validator.Struct(params); err != nil {
		RenderError(c, domain.Validation(FormatValidationErrors(err)))
		return
	}

	user, token, err := h.svc.Login(ctx, &params)

	if err != nil {
		AddSpanError(span, err)
		RenderError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordAuthOperation(ctx, "login")
	}

	Success(c, http.StatusOK, gin.H{
		"user":  response.NewUserResponse(user),
		"token": token,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)

	if !ok {
		RenderError(c, domain.Unauthorized())
		return
	}

	Success(c, http.StatusOK, gin.H{"user": response.NewUserResponse(user)})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.auth.Logout", []attribute.KeyValue{
		attribute.String("handler.operation", "Logout"),
	})
	defer span.End()

	user, ok := middleware.CurrentUser(c)

	if !ok {
		RenderError(c, domain.Unauthorized())
		return
	}

	if err := h.svc.Logout(ctx, user.ID); err != nil {
		AddSpanError(span, err)

		h.logger.Logger.Ctx(ctx).Error("logout failed",
			zap.Int64("user_id", user.ID),
			zap.Error(err))

		RenderError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordAuthOperation(ctx, "logout")
	}

	c.Status(http.StatusNoContent)
}
