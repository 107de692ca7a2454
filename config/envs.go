package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP         string // Host IP for the server
	RESTPort       int    // Port for the REST API
	GinMode        string // Mode for the Gin framework (e.g., release, debug, test)
	DBHost         string // Hostname or IP address for the database
	DBPort         int    // Port number for the database
	DBUser         string // Username for the database
	DBPassword     string // Password for the database
	DBName         string // Name of the database
	RedisAddr      string // host:port of the Redis server backing the maze pool
	RedisPassword  string // Password for Redis, empty for none
	PoolTTLSeconds int    // Lifetime of an idle maze pool queue
	PoolSize       int    // Mazes generated per pool refill
	JWTSecret      string // Secret key for JWT signing
	JWTIssuer      string // Issuer claim for JWTs
	MazeWorkers    int    // Parallel carving workers per generation request
}

// Load reads the configuration from the environment, after loading a .env
// file when one is present.
func Load() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:         getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:       getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:        getEnvWithDefault("GIN_MODE", "release"),
		DBHost:         getEnvWithDefault("DB_HOST", "localhost"),
		DBPort:         getEnvAsIntWithDefault("DB_PORT", 27017),
		DBUser:         mustGetEnv("DB_USER"),
		DBPassword:     mustGetEnv("DB_PASS"),
		DBName:         getEnvWithDefault("DB_NAME", "qmaze"),
		RedisAddr:      getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnvWithDefault("REDIS_PASSWORD", ""),
		PoolTTLSeconds: getEnvAsIntWithDefault("POOL_TTL_SECONDS", 3600),
		PoolSize:       getEnvAsIntWithDefault("POOL_SIZE", 10),
		JWTSecret:      mustGetEnv("JWT_SECRET"),
		JWTIssuer:      getEnvWithDefault("JWT_ISSUER", "qmaze"),
		MazeWorkers:    getEnvAsIntWithDefault("MAZE_WORKERS", 1),
	}
}

// LoadTokenConfig reads only the settings needed to sign tokens.
func LoadTokenConfig() (secret, issuer string) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}
	return mustGetEnv("JWT_SECRET"), getEnvWithDefault("JWT_ISSUER", "qmaze")
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// getEnvAsIntWithDefault retrieves the value of an environment variable as an integer,
// or returns a default value if not set. A value that cannot be parsed is fatal.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
