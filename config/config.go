package config

import (
	"log"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port      string `env:"PORT" env-default:"8080"`
	MongoURI  string `env:"MONGODB_URI" env-required:"true"`
	MongoDB   string `env:"MONGODB_DB" env-default:"eventdb"`
	RedisAddr string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	JWTSecret string `env:"JWT_SECRET" env-default:"dev_secret_change_me"`
}

// Load reads .env when present, then the environment. A missing MONGODB_URI
// is a startup fault, not a per-request one.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
