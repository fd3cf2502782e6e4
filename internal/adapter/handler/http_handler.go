package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rl1809/order-fulfillment/internal/core/service"
)

const (
	msgExecutionStarted = "Execution started successfully"
	msgExecutionFailed  = "Error starting execution"
	msgMissingFields    = "Missing fields"
	msgInvalidBody      = "Invalid Request Body"
	msgProcessingError  = "Error Processing Request"
	msgUserFailed       = "Error Creating the User"
)

type HTTPHandler struct {
	orders  *service.OrderIntake
	uploads *service.UploadService
	users   *service.UserService
	logger  *slog.Logger
}

type MessageResponse struct {
	Message     string `json:"message"`
	ExecutionID string `json:"executionId,omitempty"`
}

type UploadResponse struct {
	UploadURL string `json:"uploadUrl"`
}

func NewHTTPHandler(orders *service.OrderIntake, uploads *service.UploadService, users *service.UserService, logger *slog.Logger) *HTTPHandler {
	return &HTTPHandler{
		orders:  orders,
		uploads: uploads,
		users:   users,
		logger:  logger,
	}
}

// NewRouter mounts every route on a gin engine with panic recovery and
// request logging.
func NewRouter(h *HTTPHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger))

	r.GET("/health", h.HealthCheck)
	r.POST("/orders", h.SubmitOrder)
	r.POST("/uploads", h.RegisterUpload)
	r.POST("/hooks/post-confirmation", h.PostConfirmation)
	return r
}

// SubmitOrder answers as soon as a run has started. Decode failures and start
// failures share one response.
func (h *HTTPHandler) SubmitOrder(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: msgExecutionFailed})
		return
	}

	exec, err := h.orders.Submit(c.Request.Context(), body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: msgExecutionFailed})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{
		Message:     msgExecutionStarted,
		ExecutionID: exec.WorkflowID,
	})
}

func (h *HTTPHandler) RegisterUpload(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: msgProcessingError})
		return
	}

	res, err := h.uploads.Register(c.Request.Context(), body)
	switch {
	case errors.Is(err, service.ErrMissingFields):
		c.JSON(http.StatusBadRequest, MessageResponse{Message: msgMissingFields})
		return
	case errors.Is(err, service.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, MessageResponse{Message: msgInvalidBody})
		return
	case err != nil:
		h.logger.Error("upload registration failed", "error", err)
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: msgProcessingError})
		return
	}

	c.JSON(http.StatusOK, UploadResponse{UploadURL: res.Upload.URL})
}

// PostConfirmation returns the identity provider's event unchanged once the
// user is recorded.
func (h *HTTPHandler) PostConfirmation(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: msgUserFailed})
		return
	}

	var event service.PostConfirmationEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: msgUserFailed})
		return
	}

	if err := h.users.Confirm(c.Request.Context(), event); err != nil {
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: msgUserFailed})
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

func (h *HTTPHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
