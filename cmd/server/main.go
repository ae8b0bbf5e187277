package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/nightjar-labs/marquee/internal/db"
	"github.com/nightjar-labs/marquee/internal/hub"
	"github.com/nightjar-labs/marquee/internal/redis"
)

func main() {
	env := loadEnvironment()
	setupLogging(env.AppEnv)

	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	store := db.NewStore()

	if env.RedisAddress != "" {
		redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	}

	storageSystem := initStorage(env)

	hubOpts := []hub.Option{
		hub.WithPresence(func(deviceKey string) {
			redis.SetPresence(context.Background(), deviceKey)
		}),
	}
	if env.MQTTBrokerURL != "" {
		relay, err := hub.NewMQTTRelay(env.MQTTBrokerURL, "marquee-server")
		if err != nil {
			log.Error().Err(err).Msg("MQTT relay unavailable, continuing without it")
		} else {
			defer relay.Close()
			hubOpts = append(hubOpts, hub.WithRelay(relay))
		}
	}
	h := hub.New(store, hubOpts...)

	if env.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	registerRoutes(router, env, store, h, storageSystem)

	log.Info().Str("address", env.ServerAddress).Msg("starting server")
	if err := router.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
