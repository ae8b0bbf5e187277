package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Environment struct {
	AppEnv        string
	ServerAddress string
	JWTSecret     string

	DatabaseURL    string
	MigrationsPath string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	MQTTBrokerURL string

	UseSpaces       bool
	SpacesEndpoint  string
	SpacesRegion    string
	SpacesBucket    string
	SpacesCDNURL    string
	SpacesAccessKey string
	SpacesSecretKey string

	UploadDir string
}

func loadEnvironment() Environment {
	// .env is optional; container deployments inject real env vars
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}

	env := Environment{
		AppEnv:        getEnv("APP_ENV", "development"),
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		JWTSecret:     os.Getenv("JWT_SECRET"),

		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),

		UseSpaces:       os.Getenv("USE_SPACES") == "true",
		SpacesEndpoint:  os.Getenv("SPACES_ENDPOINT"),
		SpacesRegion:    getEnv("SPACES_REGION", "nyc3"),
		SpacesBucket:    os.Getenv("SPACES_BUCKET"),
		SpacesCDNURL:    os.Getenv("SPACES_CDN_URL"),
		SpacesAccessKey: os.Getenv("SPACES_ACCESS_KEY"),
		SpacesSecretKey: os.Getenv("SPACES_SECRET_KEY"),

		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
	}

	if env.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}
	if env.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}
	return env
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupLogging(appEnv string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if appEnv == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
