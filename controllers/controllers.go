package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"post-pilot/generation"
	"post-pilot/scheduler"
	"post-pilot/store"
	"post-pilot/topics"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

// RequireSession authenticates protected routes. PocketBase's default
// middleware already loads the Authorization header; this adds the access
// cookie as a second source and turns a missing session into a 401.
func RequireSession(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if e.Auth == nil {
			if cookie, err := e.Request.Cookie("access"); err == nil && cookie.Value != "" {
				if record, err := app.FindAuthRecordByToken(cookie.Value, core.TokenTypeAuth); err == nil {
					e.Auth = record
				}
			}
		}
		if e.Auth == nil {
			return apis.NewUnauthorizedError("Missing or expired session.", nil)
		}
		return e.Next()
	}
}

// statusFor maps the typed core errors onto HTTP statuses: validation 400,
// illegal transitions 409, unknown records 404.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, topics.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, store.ErrPastTimestamp),
		errors.Is(err, store.ErrEmptyPlatform),
		errors.Is(err, generation.ErrEmptyPrompt),
		errors.Is(err, scheduler.ErrEmptyBatch),
		errors.Is(err, topics.ErrDuplicateTopic),
		errors.Is(err, topics.ErrEmptyName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func pathId(e *core.RequestEvent) (uint, error) {
	id, err := strconv.ParseUint(e.Request.PathValue("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseTimestamp accepts RFC3339 and the timezone-less form the schedule UI
// sends; the latter is taken as UTC.
func parseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", value)
}
