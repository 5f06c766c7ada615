package controllers

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/meveto/meveto-go-sdk/services"
)

//go:embed templates/*.html
var templatesFS embed.FS

// pageData is the data shared by every rendered page
type pageData struct {
	Title       string
	CurrentPage string
	Error       string
	UserID      string
	DisplayName string
}

// renderTemplate creates a template set and renders it with the provided data
func renderTemplate(w http.ResponseWriter, templateName string, pageTemplate string, data interface{}) error {
	return renderTemplateWithStatus(w, http.StatusOK, templateName, pageTemplate, data)
}

// renderTemplateWithStatus creates a template set and renders it with the provided data and status code
func renderTemplateWithStatus(w http.ResponseWriter, statusCode int, templateName string, pageTemplate string, data interface{}) error {
	// Create a new template set with only the templates we need
	tmpl := template.New(templateName)

	// Parse layout and page template
	_, err := tmpl.ParseFS(templatesFS, "templates/layout.html", pageTemplate)
	if err != nil {
		http.Error(w, "Failed to parse template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	// Set status code if not OK
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}

	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	return nil
}

// Controllers holds all controller instances
type Controllers struct {
	Auth      *AuthController
	Dashboard *DashboardController
	Webhook   *WebhookController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services, logger *slog.Logger, stateLength int) *Controllers {
	return &Controllers{
		Auth:      NewAuthController(services, logger, stateLength),
		Dashboard: NewDashboardController(services),
		Webhook:   NewWebhookController(services, logger),
	}
}
