package main

import (
	"context"
	"log"
	"os"

	"post-pilot/controllers"
	"post-pilot/generation"
	"post-pilot/helpers"
	"post-pilot/models"
	"post-pilot/publisher"
	"post-pilot/scheduler"
	"post-pilot/store"
	"post-pilot/topics"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

var app *pocketbase.PocketBase

func main() {
	app = helpers.CreateApp()

	godotenv.Load()

	env := os.Getenv("ENV")
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		models.ConnectDatabase(dsn, env)
	}
	if redisHost := os.Getenv("REDIS_HOST"); redisHost != "" {
		models.ConnectRedis(
			redisHost,
			os.Getenv("REDIS_PORT"),
			os.Getenv("REDIS_USER"),
			os.Getenv("REDIS_PASSWORD"),
			os.Getenv("REDIS_DB"),
			env,
		)
	}

	// without a DSN everything runs on the in-memory repositories
	var postRepo store.Repository = store.NewMemoryRepository()
	var topicRepo topics.Repository = topics.NewMemoryRepository()
	if models.DB != nil {
		postRepo = store.NewGormRepository(models.DB)
		topicRepo = topics.NewGormRepository(models.DB)
	}

	posts := store.New(postRepo)
	engine := scheduler.New(posts)

	apiKey := os.Getenv("CHAT_GPT_KEY")
	gateway := generation.NewGateway(generation.NewOpenRouterBackend("", apiKey), posts, app.Logger())
	topicService := topics.NewService(topicRepo, topics.NewAiTrendingClient("", apiKey), models.Redis, app.Logger())

	registry := publisher.NewRegistry()
	if token := os.Getenv("TWITTER_ACCESS_TOKEN"); token != "" {
		registry.Register(models.PlatformTwitter, publisher.NewTwitterPublisher(token, os.Getenv("TWITTER_ACCESS_SECRET")))
	}
	dispatcher := publisher.NewDispatcher(posts, registry, app.Logger())

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		controllers.SetupAuthRoutes(se, app)
		controllers.SetupPostRoutes(se, app, posts, engine, gateway)
		controllers.SetupTopicRoutes(se, app, topicService)
		se.Router.GET("/ping", func(e *core.RequestEvent) error {
			controllers.Ping(e)
			return nil
		})
		return se.Next()
	})

	app.Cron().MustAdd("Publish Scheduled Posts", "* * * * *", func() {
		dispatcher.PublishDue(context.Background())
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
