package handler

import (
	"context"
	"net/http"
	"strconv"

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

type TodoHandler struct {
	svc     port.TodoService
	logger  *telemetry.Logger
	metrics *telemetry.AppMetrics
}

func NewTodoHandler(svc port.TodoService, logger *telemetry.Logger, metrics *telemetry.AppMetrics) *TodoHandler {
	return &TodoHandler{
		svc:     svc,
		logger:  logger,
		metrics: metrics,
	}
}

func (h *TodoHandler) Index(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.Index", []attribute.KeyValue{
		attribute.String("handler.operation", "Index"),
	})
	defer span.End()

	user, ok := middleware.CurrentUser(c)

	if !ok {
		RenderError(c, domain.Unauthorized())
		return
	}

	filters := map[string]any{}

	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			filters[key] = values[0]
		}
	}

	todos, err := h.svc.All(ctx, user.ID, filters)

	if err != nil {
		AddSpanError(span, err)

		h.logger.Logger.Ctx(ctx).Error("failed to list todos",
			zap.Int64("user_id", user.ID),
			zap.Error(err))

		RenderError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordTodoOperation(ctx, "index")
	}

	Success(c, http.StatusOK, gin.H{"todos": response.NewTodoListResponse(todos)})
}

func (h *TodoHandler) Create(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.Create", []attribute.KeyValue{
		attribute.String("handler.operation", "Create"),
	})
	defer span.End()

	user, ok := middleware.CurrentUser(c)

	if !ok {
		RenderError(c, domain.Unauthorized())
		return
	}

	params, err := util.ParamsToMap[request.TodoCreateRequest](c)

	if err != nil {
		Fail(c, http.StatusBadRequest, "malformed request body", nil)
		return
	}

	if err := Validator.Struct(params); err != nil {
		RenderError(c, domain.Validation(FormatValidationErrors(err)))
		return
	}

	todo, err := h.svc.Create(ctx, user.ID, &params)

	if err != nil {
		AddSpanError(span, err)

		h.logger.Logger.Ctx(ctx).Error("failed to create todo",
			zap.Int64("user_id", user.ID),
			zap.Error(err))

		RenderError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordTodoOperation(ctx, "create")
	}

	Success(c, http.StatusCreated, gin.H{"todo": response.NewTodoResponse(todo)})
}

func (h *TodoHandler) Show(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.Show", []attribute.KeyValue{
		attribute.String("handler.operation", "Show"),
	})
	defer span.End()

	id, err := todoID(c)

	if err != nil {
		RenderError(c, domain.NotFound())
		return
	}

	todo, err := h.svc.GetByID(ctx, id)

	if err != nil {
		AddSpanError(span, err)
		RenderError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordTodoOperation(ctx, "show")
	}

	Success(c, http.StatusOK, gin.H{"todo": response.NewTodoResponse(todo)})
}

func (h *TodoHandler) Done(c *gin.Context) {
	h.setDone(c, "done", h.svc.Done)
}

func (h *TodoHandler) Undone(c *gin.Context) {
	h.setDone(c, "undone", h.svc.Undone)
}

func (h *TodoHandler) Destroy(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.Destroy", []attribute.KeyValue{
		attribute.String("handler.operation", "Destroy"),
	})
	defer span.End()

	id, err := todoID(c)

	if err != nil {
		RenderError(c, domain.NotFound())
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		AddSpanError(span, err)
		RenderError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordTodoOperation(ctx, "destroy")
	}

	c.Status(http.StatusNoContent)
}

// setDone backs both transitions; they differ only in the service call.
func (h *TodoHandler) setDone(c *gin.Context, operation string, fn func(ctx context.Context, id int64) error) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo."+operation, []attribute.KeyValue{
		attribute.String("handler.operation", operation),
	})
	defer span.End()

	id, err := todoID(c)

	if err != nil {
		RenderError(c, domain.NotFound())
		return
	}

	if err := fn(ctx, id); err != nil {
		AddSpanError(span, err)
		RenderError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordTodoOperation(ctx, operation)
	}

	Success(c, http.StatusOK, []any{})
}

func todoID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
