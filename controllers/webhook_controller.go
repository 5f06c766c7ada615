package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/meveto/meveto-go-sdk/authenticator"
	"github.com/meveto/meveto-go-sdk/models"
	"github.com/meveto/meveto-go-sdk/repositories"
	"github.com/meveto/meveto-go-sdk/services"
)

// maxWebhookBody caps the webhook request body
const maxWebhookBody = 64 << 10

// WebhookController handles events Meveto posts to the application
type WebhookController struct {
	services *services.Services
	logger   *slog.Logger
}

// NewWebhookController creates a new webhook controller
func NewWebhookController(services *services.Services, logger *slog.Logger) *WebhookController {
	return &WebhookController{
		services: services,
		logger:   logger,
	}
}

// webhookResponse is the JSON body returned to Meveto
type webhookResponse struct {
	Status     string   `json:"status"`
	DeliveryID string   `json:"delivery_id,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

// Handle handles POST /meveto/webhook
func (c *WebhookController) Handle(w http.ResponseWriter, r *http.Request) {
	var event models.WebhookEvent

	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBody)
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeJSON(w, http.StatusBadRequest, webhookResponse{
			Status: "invalid",
			Errors: []string{"Failed to decode event: " + err.Error()},
		})
		return
	}

	event.Type = strings.TrimSpace(event.Type)
	if errs := event.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, webhookResponse{Status: "invalid", Errors: errs})
		return
	}

	result, err := c.services.Session.HandleWebhook(r.Context(), event)
	if err != nil {
		status := webhookErrorStatus(err)
		c.logger.WarnContext(r.Context(), "webhook event failed",
			slog.String("event_type", event.Type),
			slog.Int("status", status),
			slog.String("error", err.Error()),
		)
		writeJSON(w, status, webhookResponse{Status: "error", Errors: []string{err.Error()}})
		return
	}

	status := "ignored"
	if result.Handled {
		status = "handled"
	}
	writeJSON(w, http.StatusOK, webhookResponse{Status: status, DeliveryID: result.DeliveryID})
}

// webhookErrorStatus maps a webhook failure to a response status
func webhookErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidWebhookEvent):
		return http.StatusBadRequest
	case errors.Is(err, repositories.ErrUserNotFound):
		return http.StatusNotFound
	case authenticator.KindOf(err) != "":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
