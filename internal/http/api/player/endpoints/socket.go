package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/nightjar-labs/marquee/internal/db"
	"github.com/nightjar-labs/marquee/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the player runs on screens, not browsers; origin is not a credential here
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SocketHandler upgrades GET /ws/:access_code and attaches the connection to
// the hub. The access code is validated before the upgrade so a bad code gets
// a clean HTTP status instead of a dead socket.
func SocketHandler(store db.Store, h *hub.Hub) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		code := ctx.Param("access_code")

		dev, err := store.GetDeviceByAccessCode(code)
		if err != nil {
			if err == db.ErrNotFound {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "invalid access code"})
				return
			}
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !dev.IsActive {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "device is disabled"})
			return
		}

		ws, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			log.Warn().Err(err).Str("access_code", code).Msg("websocket upgrade failed")
			return
		}

		h.Attach(code, ws)
	}
}
