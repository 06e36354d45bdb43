package controllers

import (
	"net/http"
	"time"

	"post-pilot/helpers"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Session cookie lifetimes: the access token is short-lived, the refresh
// token long-lived and scoped to the token endpoint. Refresh exchange itself
// belongs to the identity provider, not this service.
const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func SetupAuthRoutes(se *core.ServeEvent, app *pocketbase.PocketBase) {
	se.Router.POST("/api/token", func(e *core.RequestEvent) error {
		IssueToken(e, app)
		return nil
	})
}

// IssueToken validates credentials against the users auth collection and
// sets httpOnly SameSite=Lax session cookies alongside the JSON body.
func IssueToken(e *core.RequestEvent, app *pocketbase.PocketBase) {
	var req tokenRequest
	if err := e.BindBody(&req); err != nil {
		helpers.Error(e, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		helpers.Error(e, http.StatusBadRequest, "Username and password are required")
		return
	}

	record, err := app.FindAuthRecordByEmail("users", req.Username)
	if err != nil || !record.ValidatePassword(req.Password) {
		helpers.Error(e, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	access, err := record.NewStaticAuthToken(accessTokenTTL)
	if err != nil {
		helpers.Error(e, http.StatusInternalServerError, "Failed to issue access token")
		return
	}
	refresh, err := record.NewStaticAuthToken(refreshTokenTTL)
	if err != nil {
		helpers.Error(e, http.StatusInternalServerError, "Failed to issue refresh token")
		return
	}

	http.SetCookie(e.Response, &http.Cookie{
		Name:     "access",
		Value:    access,
		Path:     "/",
		MaxAge:   int(accessTokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(e.Response, &http.Cookie{
		Name:     "refresh",
		Value:    refresh,
		Path:     "/api/token",
		MaxAge:   int(refreshTokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	e.JSON(http.StatusOK, tokenResponse{Access: access, Refresh: refresh})
}
