package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/sunfrisky19/model-meals-workouts/middlewares"
	"github.com/sunfrisky19/model-meals-workouts/services"
	"github.com/sunfrisky19/model-meals-workouts/utils"
)

const pingInterval = 25 * time.Second

type RealtimeController struct {
	Hub      *services.PredictionHub
	Sessions *services.DietSessions
}

func NewRealtimeController(hub *services.PredictionHub, sessions *services.DietSessions) *RealtimeController {
	return &RealtimeController{Hub: hub, Sessions: sessions}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /ws/predictions
func (rc *RealtimeController) PredictionsWS(c *gin.Context) {
	sid := middlewares.SessionID(c)
	if _, ok := rc.Sessions.Lookup(sid); !ok {
		utils.Fail(c, http.StatusBadRequest, noActiveDietMsg)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{SessionID: sid, Conn: conn}
	rc.Hub.Register(cl)

	done := make(chan struct{})
	defer close(done)

	// keep connections alive through proxies
	utils.SafeGo("ws-ping", func() {
		t := time.NewTicker(pingInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := cl.Write(websocket.PingMessage, nil); err != nil {
					rc.Hub.Unregister(cl)
					return
				}
			}
		}
	})

	// read loop ends on client close/error
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			rc.Hub.Unregister(cl)
			return
		}
	}
}
