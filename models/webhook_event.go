package models

import "strings"

// Webhook event types sent by Meveto
const (
	EventUserLoggedOut = "User_Logged_Out"
)

// WebhookEvent is the body Meveto posts to the application's webhook
type WebhookEvent struct {
	Type      string `json:"type"`
	UserToken string `json:"user_token"`
	// DeliveryID is optional; a generated id is used when missing
	DeliveryID string `json:"delivery_id,omitempty"`
}

// Validate validates the webhook event
func (e *WebhookEvent) Validate() []string {
	var errors []string

	if strings.TrimSpace(e.Type) == "" {
		errors = append(errors, "Event type is required")
	}

	if strings.TrimSpace(e.UserToken) == "" {
		errors = append(errors, "User token is required")
	}

	return errors
}
