package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress = ":8080"
	defaultMigrations = "migrations"
)

type Config struct {
	Env    string
	DB     db
	Server server
	Logger logger
	Crypto crypto
}

type db struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type crypto struct {
	// Key is the hex-encoded 32-byte key used to encrypt dataset
	// credentials at rest. The server refuses to start without it.
	Key string `env:"CRYPTO_KEY"`
}

// MustLoad reads configuration from the environment (optionally seeded
// from a .env file) and exits the process when a required value is
// missing. A missing cipher key is a startup error, never a per-request
// condition.
func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()

	config := Config{
		Env: viper.GetString("app_env"),
		DB: db{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
		},
		Server: server{RunAddress: viper.GetString("run_address")},
		Logger: logger{LogLevel: viper.GetString("log_level")},
		Crypto: crypto{Key: viper.GetString("crypto_key")},
	}

	if config.Server.RunAddress == "" {
		config.Server.RunAddress = defaultRunAddress
	}
	if config.DB.Migrations == "" {
		config.DB.Migrations = defaultMigrations
	}
	if config.Env == "" {
		config.Env = EnvLocal
	}

	if config.Crypto.Key == "" {
		log.Fatalln("CRYPTO_KEY is not set; refusing to start without a credential encryption key")
	}

	return &config
}
