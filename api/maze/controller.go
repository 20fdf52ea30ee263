package mazeapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
)

var ErrNoSession = errors.New("solve session is required")

// Session is the controller surface the endpoints drive.
type Session interface {
	Start() error
	Stop()
	Reset() error
	Configure(maze.Config) error
	Snapshot() service.State
	Maze() (*maze.Grid, maze.Config)
	Subscribe() (<-chan service.State, func())
}

// Controller exposes the solve session over HTTP and a websocket stream.
type Controller struct {
	session Session
	logger  i.Logger
}

// NewController initializes a Controller.
func NewController(s Session, l i.Logger) (*Controller, error) {
	if s == nil {
		return nil, ErrNoSession
	}
	if l == nil {
		return nil, service.ErrNoLogger
	}
	return &Controller{
		session: s,
		logger:  l,
	}, nil
}

// Register registers the maze routes.
func (c *Controller) Register(route *gin.RouterGroup) {
	m := route.Group("/maze")
	{
		m.GET("", c.mazeInfo)
		m.GET("/state", c.stateInfo)
		m.GET("/stream", c.stream)
		m.POST("/solve", c.solve)
		m.POST("/stop", c.stop)
		m.POST("/reset", c.reset)
		m.PUT("/config", c.configure)
	}
}

// mazeInfo returns the current grid.
func (c *Controller) mazeInfo(ctx *gin.Context) {
	grid, cfg := c.session.Maze()
	ctx.JSON(http.StatusOK, newMazeResponse(grid, cfg))
}

// stateInfo returns the current solve state.
func (c *Controller) stateInfo(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.session.Snapshot())
}

// solve starts a solve over the current maze.
func (c *Controller) solve(ctx *gin.Context) {
	if err := c.session.Start(); err != nil {
		if errors.Is(err, service.ErrAlreadySolving) {
			ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.logger.Error(fmt.Sprintf("starting solve: %s", err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while starting solve"})
		return
	}

	ctx.Status(http.StatusAccepted)
}

// stop cancels the running solve.
func (c *Controller) stop(ctx *gin.Context) {
	c.session.Stop()
	ctx.Status(http.StatusAccepted)
}

// reset regenerates the maze with the current configuration.
func (c *Controller) reset(ctx *gin.Context) {
	if err := c.session.Reset(); err != nil {
		c.logger.Error(fmt.Sprintf("resetting maze: %s", err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while generating maze"})
		return
	}

	c.mazeInfo(ctx)
}

// configure applies a preset or explicit dimensions and regenerates the maze.
func (c *Controller) configure(ctx *gin.Context) {
	var request ConfigRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, current := c.session.Maze()
	cfg, err := request.apply(current, config.Preset)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.session.Configure(cfg); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.mazeInfo(ctx)
}
