package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP      string        // Host IP for the server
	RESTPort    int           // Port for the REST API
	GinMode     string        // Mode for the Gin framework (e.g., release, debug, test)
	LogLevel    string        // Minimum log level (debug, info, warning, error)
	MazeRows    int           // Number of maze rows
	MazeCols    int           // Number of maze columns
	CellSize    int           // Rendered cell size in pixels
	StartRow    int           // Row of the solver's start cell
	StartCol    int           // Column of the solver's start cell
	MazeSeed    uint64        // Generator seed, 0 picks a random seed per maze
	StepDelay   time.Duration // Pause between search steps
	RevealDelay time.Duration // Pause between path reveal ticks
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:      getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:    getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:     getEnvWithDefault("GIN_MODE", "release"),
		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		MazeRows:    getEnvAsIntWithDefault("MAZE_ROWS", Medium.Rows),
		MazeCols:    getEnvAsIntWithDefault("MAZE_COLS", Medium.Cols),
		CellSize:    getEnvAsIntWithDefault("MAZE_CELL_SIZE", Medium.CellSize),
		StartRow:    getEnvAsIntWithDefault("MAZE_START_ROW", 0),
		StartCol:    getEnvAsIntWithDefault("MAZE_START_COL", 0),
		MazeSeed:    uint64(getEnvAsIntWithDefault("MAZE_SEED", 0)),
		StepDelay:   time.Duration(getEnvAsIntWithDefault("SOLVE_STEP_DELAY_MS", 50)) * time.Millisecond,
		RevealDelay: time.Duration(getEnvAsIntWithDefault("SOLVE_REVEAL_DELAY_MS", 25)) * time.Millisecond,
	}
}

// getEnvAsIntWithDefault retrieves the value of an environment variable as an integer or returns a default value if not set.
// It logs a fatal error if the value is set but cannot be parsed.
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
