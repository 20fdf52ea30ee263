package main

import (
	"fmt"
	"os"

	"github.com/beka-birhanu/vinom-maze/api"
	api_i "github.com/beka-birhanu/vinom-maze/api/i"
	mazeapi "github.com/beka-birhanu/vinom-maze/api/maze"
	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/logger"
	"github.com/beka-birhanu/vinom-maze/metrics"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/solver"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global variables for dependencies
var (
	appLogger      *logger.Logger
	solveMetrics   *metrics.Metrics
	solveSession   *service.SolveSession
	mazeController api_i.Controller
	router         *api.Router
)

func initLogger() {
	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating app logger: %v\n", err)
		os.Exit(1)
	}
	if err := appLogger.SetLevel(config.Envs.LogLevel); err != nil {
		appLogger.Warning(fmt.Sprintf("Keeping default log level: %v", err))
	}
}

func initMetrics() {
	solveMetrics = metrics.New(prometheus.DefaultRegisterer)
	appLogger.Info("Metrics initialized")
}

func initSolveSession() {
	sessionLogger, err := logger.New("SOLVE-SESSION", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating solve session logger: %v", err))
		os.Exit(1)
	}
	_ = sessionLogger.SetLevel(config.Envs.LogLevel)

	solveSession, err = service.NewSolveSession(&service.Config{
		Maze:        config.Envs.MazeConfig(),
		Chooser:     chooserFor(config.Envs.MazeSeed),
		StepPacer:   solver.Delay(config.Envs.StepDelay),
		RevealPacer: solver.Delay(config.Envs.RevealDelay),
		Logger:      sessionLogger,
		Metrics:     solveMetrics,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating solve session: %v", err))
		os.Exit(1)
	}

	appLogger.Info("Solve session initialized")
}

func initMazeController() {
	controllerLogger, err := logger.New("MAZE-API", config.ColorBlue, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller logger: %v", err))
		os.Exit(1)
	}

	mazeController, err = mazeapi.NewController(solveSession, controllerLogger)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initRouter() {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:           fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:        "/api",
		Controllers:    []api_i.Controller{mazeController},
		MetricsHandler: promhttp.Handler(),
	})
	appLogger.Info("Router initialized")
}

// serve wires the dependencies and blocks on the HTTP server.
func serve() error {
	initMetrics()
	initSolveSession()
	defer solveSession.Stop()

	initMazeController()
	initRouter()

	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		return err
	}
	return nil
}

func main() {
	initLogger()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
