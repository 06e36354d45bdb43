package models

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"post-pilot/helpers"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB
var Redis *redis.Client
var ctx = context.Background()

func ConnectDatabase(dsn_url, env string) {

	// Configure logger
	var logLevel logger.LogLevel
	if env == "prod" {
		logLevel = logger.Error
	} else {
		logLevel = logger.Info
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logLevel,
			Colorful:      true,
		},
	)

	database, db_err := gorm.Open(postgres.Open(dsn_url), &gorm.Config{
		Logger: newLogger,
	})
	if db_err != nil {
		helpers.Logging("error", db_err.Error())
		return
	}
	db_migrate := os.Getenv("DB_MIGRATE")
	if db_migrate == "true" {
		err := database.AutoMigrate(&Post{}, &Topic{})
		if err != nil {
			helpers.Logging("error", err.Error())
			return
		}
	}

	getDb, err := database.DB()
	if err != nil {
		helpers.Logging("error", err.Error())
		return
	}
	getDb.SetMaxIdleConns(10)
	getDb.SetMaxOpenConns(100)
	getDb.SetConnMaxLifetime(time.Hour)
	DB = database
}

func ConnectRedis(host, port, user, password, db, env string) {
	dbInt, _ := strconv.Atoi(db)
	options := &redis.Options{
		Addr:        fmt.Sprintf("%s:%s", host, port),
		Password:    password,
		DB:          dbInt,
		Username:    user,
		ReadTimeout: -1,
	}

	// Apply TLS configuration if environment is "prod"
	if env == "prod" {
		options.TLSConfig = &tls.Config{
			ServerName: host,
		}
	}

	rdb := redis.NewClient(options)

	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		fmt.Println("Error connecting to Redis:", err)
	}

	Redis = rdb
}
