package controllers

import (
	"net/http"

	"post-pilot/helpers"
	"post-pilot/models"
	"post-pilot/topics"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type createTopicRequest struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

type fetchTrendingRequest struct {
	Count    int    `json:"count"`
	Category string `json:"category"`
}

type fetchTrendingResponse struct {
	Success       bool           `json:"success"`
	CreatedTopics []models.Topic `json:"created_topics"`
	Degraded      bool           `json:"degraded"`
	Notice        string         `json:"notice,omitempty"`
}

func SetupTopicRoutes(se *core.ServeEvent, app *pocketbase.PocketBase, service *topics.Service) {
	auth := RequireSession(app)

	se.Router.GET("/api/content/topics", func(e *core.RequestEvent) error {
		ListTopics(e, service)
		return nil
	}).BindFunc(auth)

	se.Router.POST("/api/content/topics", func(e *core.RequestEvent) error {
		CreateTopic(e, service)
		return nil
	}).BindFunc(auth)

	se.Router.POST("/api/content/topics/fetch_trending", func(e *core.RequestEvent) error {
		FetchTrendingTopics(e, service)
		return nil
	}).BindFunc(auth)

	se.Router.DELETE("/api/content/topics/{id}", func(e *core.RequestEvent) error {
		DeleteTopic(e, service)
		return nil
	}).BindFunc(auth)
}

func ListTopics(e *core.RequestEvent, service *topics.Service) {
	list, err := service.List(e.Request.Context())
	if err != nil {
		helpers.Error(e, statusFor(err), err.Error())
		return
	}
	e.JSON(http.StatusOK, list)
}

func CreateTopic(e *core.RequestEvent, service *topics.Service) {
	var req createTopicRequest
	if err := e.BindBody(&req); err != nil {
		helpers.Error(e, http.StatusBadRequest, "Invalid request body")
		return
	}

	topic, err := service.AddTopic(e.Request.Context(), req.Name, req.Source)
	if err != nil {
		helpers.Error(e, statusFor(err), err.Error())
		return
	}
	helpers.Success(e, "Topic created", topic)
}

// FetchTrendingTopics merges trending suggestions into the working set. A
// dead trending source is not an error: the fallback list is merged instead
// and the response flags degraded mode.
func FetchTrendingTopics(e *core.RequestEvent, service *topics.Service) {
	var req fetchTrendingRequest
	if err := e.BindBody(&req); err != nil {
		helpers.Error(e, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := service.FetchTrending(e.Request.Context(), req.Category, req.Count)
	if err != nil {
		helpers.Error(e, statusFor(err), err.Error())
		return
	}

	e.JSON(http.StatusOK, fetchTrendingResponse{
		Success:       true,
		CreatedTopics: result.Created,
		Degraded:      result.Degraded,
		Notice:        result.Notice,
	})
}

func DeleteTopic(e *core.RequestEvent, service *topics.Service) {
	id, err := pathId(e)
	if err != nil {
		helpers.Error(e, http.StatusBadRequest, "Invalid topic id")
		return
	}

	if err := service.DeleteTopic(e.Request.Context(), id); err != nil {
		helpers.Error(e, statusFor(err), err.Error())
		return
	}
	helpers.Success(e, "Topic deleted", nil)
}
