package mazeapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// stream upgrades to a websocket and writes the current state followed by every change.
// Messages from the client are ignored; the stream ends when either side closes.
func (c *Controller) stream(ctx *gin.Context) {
	ws, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error(fmt.Sprintf("upgrading state stream: %s", err))
		return
	}
	defer ws.Close()

	updates, unsubscribe := c.session.Subscribe()
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := ws.NextReader(); err != nil {
				return
			}
		}
	}()

	if err := ws.WriteJSON(c.session.Snapshot()); err != nil {
		c.logger.Warning(fmt.Sprintf("writing state: %s", err))
		return
	}

	for {
		select {
		case <-closed:
			return
		case <-ctx.Request.Context().Done():
			return
		case st, ok := <-updates:
			if !ok {
				return
			}
			if err := ws.WriteJSON(st); err != nil {
				c.logger.Warning(fmt.Sprintf("writing state: %s", err))
				return
			}
		}
	}
}
