package controllers

import (
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/meveto/meveto-go-sdk/middleware"
	"github.com/meveto/meveto-go-sdk/services"
	"github.com/meveto/meveto-go-sdk/userctx"
)

// DashboardController handles dashboard-related requests
type DashboardController struct {
	services *services.Services
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(services *services.Services) *DashboardController {
	return &DashboardController{
		services: services,
	}
}

// Index handles GET / and shows the landing page or the signed in user
func (c *DashboardController) Index(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	userID, _ := sess.Get(middleware.SessionUserIDKey).(string)
	displayName, _ := sess.Get(middleware.SessionDisplayNameKey).(string)

	renderTemplate(w, "index", "templates/index.html", pageData{
		Title:       "Meveto Example",
		CurrentPage: "home",
		UserID:      userID,
		DisplayName: displayName,
	})
}

// Show handles GET /dashboard. RequireAuth has already resolved the user.
func (c *DashboardController) Show(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "dashboard", "templates/dashboard.html", pageData{
		Title:       "Dashboard",
		CurrentPage: "dashboard",
		UserID:      userctx.GetUserID(r.Context()),
		DisplayName: userctx.GetDisplayName(r.Context()),
	})
}
