package controllers

import (
	"net/http"
	"time"

	"post-pilot/generation"
	"post-pilot/helpers"
	"post-pilot/models"
	"post-pilot/reveal"
	"post-pilot/scheduler"
	"post-pilot/store"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type createPostRequest struct {
	Platform string `json:"platform"`
	Content  string `json:"content"`
}

type generateRequest struct {
	Prompt          string `json:"prompt"`
	Platform        string `json:"platform"`
	Tone            string `json:"tone"`
	IncludeHashtags bool   `json:"include_hashtags"`
	Slot            string `json:"slot"`
}

type generateResponse struct {
	Success  bool         `json:"success"`
	Post     *models.Post `json:"post"`
	Fallback bool         `json:"fallback"`
	Notice   string       `json:"notice,omitempty"`
}

type scheduleRequest struct {
	ScheduledFor string `json:"scheduled_for"`
}

type scheduleBatchRequest struct {
	StartTime       string   `json:"start_time"`
	IntervalMinutes int      `json:"interval_minutes"`
	Platforms       []string `json:"platforms"`
}

type updateContentRequest struct {
	Content string `json:"content"`
}

func SetupPostRoutes(se *core.ServeEvent, app *pocketbase.PocketBase, posts *store.PostStore, engine *scheduler.Engine, gateway *generation.Gateway) {
	auth := RequireSession(app)

	se.Router.GET("/api/content/posts", func(e *core.RequestEvent) error {
		ListPosts(e, posts)
		return nil
	}).BindFunc(auth)

	se.Router.POST("/api/content/posts", func(e *core.RequestEvent) error {
		CreatePost(e, posts)
		return nil
	}).BindFunc(auth)

	se.Router.POST("/api/content/posts/generate", func(e *core.RequestEvent) error {
		GeneratePost(e, gateway)
		return nil
	}).BindFunc(auth)

	se.Router.POST("/api/content/posts/schedule_batch", func(e *core.RequestEvent) error {
		ScheduleBatch(e, posts, engine)
		return nil
	}).BindFunc(auth)

	se.Router.POST("/api/content/posts/{id}/schedule", func(e *core.RequestEvent) error {
		SchedulePost(e, engine)
		return nil
	}).BindFunc(auth)

	se.Router.POST("/api/content/posts/{id}/unschedule", func(e *core.RequestEvent) error {
		UnschedulePost(e, posts)
		return nil
	}).BindFunc(auth)

	se.Router.GET("/api/content/posts/{id}/reveal", func(e *core.RequestEvent) error {
		RevealPost(e, posts)
		return nil
	}).BindFunc(auth)

	se.Router.PATCH("/api/content/posts/{id}", func(e *core.RequestEvent) error {
		UpdatePostContent(e, posts)
		return nil
	}).BindFunc(auth)

	se.Router.DELETE("/api/content/posts/{id}", func(e *core.RequestEvent) error {
		DeletePost(e, posts)
		return nil
	}).BindFunc(auth)
}

func ListPosts(e *core.RequestEvent, posts *store.PostStore) {
	status := e.Request.URL.Query().Get("status")

	var list []models.Post
	var err error
	if status != "" {
		list, err = posts.ListByStatus(e.Request.Context(), status)
	} else {
		list, err = posts.List(e.Request.Context())
	}
	if err != nil {
		helpers.Error(e, statusFor(err), err.Error())
		return
	}
	e.JSON(http.StatusOK, list)
}

func CreatePost(e *core.RequestEvent, posts *store.PostStore) {
	var req createPostRequest
	if err := e.BindBody(&req); err != nil {
		helpers.Error(e, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := posts.Create(e.Request.Context(), req.Platform, req.Content)
	if err != nil {
		helpers.Error(e, statusFor(err), err.Error())
		return
	}
	helpers.Success(e, "Post created", post)
}

// GeneratePost never fails on a dead AI backend: the gateway degrades to
// placeholder content and the response carries the fallback flag.
func GeneratePost(e *core.RequestEvent, gateway *generation.Gateway) {
	var req generateRequest
	if err := e.BindBody(&req); err != nil {
		helpers.Error(e, http.StatusBadRequest, "Invalid request body")
		return
	}

	genReq := generation.Request{
		Platform:        req.Platform,
		Prompt:          req.Prompt,
		Tone:            req.Tone,
		IncludeHashtags: req.IncludeHashtags,
	}

	var result *generation.Result
	var err error
	if req.Slot != "" {
		result, err = gateway.GenerateForSlot(e.Request.Context(), req.Slot, genReq)
	} else {
		result, err = gateway.Generate(e.Request.Context(), genReq)
	}
	if err != nil {
		helpers.Error(e, statusFor(err), err.Error())
		return
	}

	e.JSON(http.StatusOK, generateResponse{
		Success:  true,
		Post:     result.Post,
		Fallback: result.Fallback,
		Notice:   result.Notice,
	})
}

func SchedulePost(e *core.RequestEvent, engine *scheduler.Engine) {
	id, err := pathId(e)
	if err != nil {
		helpers.Error(e, http.StatusBadRequest, "Invalid post id")
		return
	}

	var req scheduleRequest
	if err := e.BindBody(&req); err != nil {
		helpers.Error(e, http.StatusBadRequest, "Invalid request body")
		return
	}
	at, err := parseTimestamp(req.ScheduledFor)
	if err != nil {
		helpers.Error(e, http.StatusBadRequest, "Invalid scheduled_for timestamp")
		return
	}

	post, err := engine.SchedulePost(e.Request.Context(), id, at)
	if err != nil {
		helpers.Error(e, statusFor(err), err.Error())
		return
	}
	helpers.Success(e, "Post scheduled", post)
}

// ScheduleBatch plans all currently ready posts (optionally filtered by
// platform) at fixed spacing and returns the per-post outcomes.
func ScheduleBatch(e *core.RequestEvent, posts *store.PostStore, engine *scheduler.Engine) {
	var req scheduleBatchRequest
	if err := e.BindBody(&req); err != nil {
		helpers.Error(e, http.StatusBadRequest, "Invalid request body")
		return
	}
	start, err := parseTimestamp(req.StartTime)
	if err != nil {
		helpers.Error(e, http.StatusBadRequest, "Invalid start_time timestamp")
		return
	}

	ready, err := posts.ListByStatus(e.Request.Context(), models.StatusReady)
	if err != nil {
		helpers.Error(e, statusFor(err), err.Error())
		return
	}

	interval := time.Duration(req.IntervalMinutes) * time.Minute
	results, err := engine.ScheduleBatch(e.Request.Context(), ready, start, interval, req.Platforms)
	if err != nil {
		helpers.Error(e, statusFor(err), err.Error())
		return
	}
	helpers.Success(e, "Batch scheduled", results)
}

func UnschedulePost(e *core.RequestEvent, posts *store.PostStore) {
	id, err := pathId(e)
	if err != nil {
		helpers.Error(e, http.StatusBadRequest, "Invalid post id")
		return
	}

	post, err := posts.Unschedule(e.Request.Context(), id)
	if err != nil {
		helpers.Error(e, statusFor(err), err.Error())
		return
	}
	helpers.Success(e, "Post unscheduled", post)
}

// RevealPost streams the post text character by character, the typing effect
// the composer shows. Closing the connection cancels the stream.
func RevealPost(e *core.RequestEvent, posts *store.PostStore) {
	id, err := pathId(e)
	if err != nil {
		helpers.Error(e, http.StatusBadRequest, "Invalid post id")
		return
	}

	post, err := posts.Get(e.Request.Context(), id)
	if err != nil {
		helpers.Error(e, statusFor(err), err.Error())
		return
	}

	interval := reveal.DefaultInterval
	if ms := e.Request.URL.Query().Get("interval_ms"); ms != "" {
		if parsed, err := time.ParseDuration(ms + "ms"); err == nil && parsed > 0 {
			interval = parsed
		}
	}

	e.Response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	e.Response.Header().Set("Cache-Control", "no-store")
	flusher, _ := e.Response.(http.Flusher)

	for r := range reveal.Stream(e.Request.Context(), post.Content, interval) {
		if _, err := e.Response.Write([]byte(string(r))); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

func UpdatePostContent(e *core.RequestEvent, posts *store.PostStore) {
	id, err := pathId(e)
	if err != nil {
		helpers.Error(e, http.StatusBadRequest, "Invalid post id")
		return
	}

	var req updateContentRequest
	if err := e.BindBody(&req); err != nil {
		helpers.Error(e, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := posts.UpdateContent(e.Request.Context(), id, req.Content)
	if err != nil {
		helpers.Error(e, statusFor(err), err.Error())
		return
	}
	helpers.Success(e, "Post updated", post)
}

func DeletePost(e *core.RequestEvent, posts *store.PostStore) {
	id, err := pathId(e)
	if err != nil {
		helpers.Error(e, http.StatusBadRequest, "Invalid post id")
		return
	}

	if err := posts.Delete(e.Request.Context(), id); err != nil {
		helpers.Error(e, statusFor(err), err.Error())
		return
	}
	helpers.Success(e, "Post deleted", nil)
}
