package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// UserConfig holds the environment configuration for the user service.
type UserConfig struct {
	Port               string `envconfig:"PORT" default:"8003"`
	JWTSecret          string `envconfig:"JWT_SECRET_KEY" default:"your-secret-key"`
	JWTAlgorithm       string `envconfig:"JWT_ALGORITHM" default:"HS256"`
	TokenExpireMinutes int    `envconfig:"TOKEN_EXPIRE_MINUTES" default:"60"`
	CORSOrigins        string `envconfig:"CORS_ORIGINS" default:"http://localhost:8080,http://localhost:3000"`
	LogLevel           string `envconfig:"LOG_LEVEL" default:"info"`
}

// ProductConfig holds the environment configuration for the product service.
type ProductConfig struct {
	Port           string `envconfig:"PORT" default:"8001"`
	DBPath         string `envconfig:"PRODUCTS_DB_PATH" default:"./products.db"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH" default:"./internal/product/repository/migrations"`
	CORSOrigins    string `envconfig:"CORS_ORIGINS" default:"http://localhost:8080,http://localhost:3000"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
}

// OrderConfig holds the environment configuration for the order service.
type OrderConfig struct {
	Port              string `envconfig:"PORT" default:"8080"`
	JWTSecret         string `envconfig:"JWT_SECRET_KEY" default:"your-super-secret-key-change-this-in-production"`
	JWTAlgorithm      string `envconfig:"JWT_ALGORITHM" default:"HS256"`
	ProductServiceURL string `envconfig:"PRODUCT_SERVICE_URL" default:"http://localhost:8001"`
	UserServiceURL    string `envconfig:"USER_SERVICE_URL" default:"http://localhost:8003"`

	MongoURI    string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDBName string `envconfig:"MONGO_DB_NAME" default:"cartdb"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`

	DBHost         string `envconfig:"DB_HOST" default:"localhost"`
	DBPort         int    `envconfig:"DB_PORT" default:"5432"`
	DBUser         string `envconfig:"DB_USER" default:"postgres"`
	DBPassword     string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName         string `envconfig:"DB_NAME" default:"orders"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH" default:"./internal/order/orders/migrations"`

	// Empty brokers disable event publication.
	KafkaBrokers string `envconfig:"KAFKA_BROKERS" default:""`

	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"http://localhost:8080,http://localhost:3000"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

func LoadUser() (*UserConfig, error) {
	var cfg UserConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func LoadProduct() (*ProductConfig, error) {
	var cfg ProductConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func LoadOrder() (*OrderConfig, error) {
	var cfg OrderConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SplitOrigins turns the comma separated CORS_ORIGINS value into a slice.
func SplitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
