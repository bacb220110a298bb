package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	ModelName string
	Store     any
}

func NewHealthController(modelName string, store any) *HealthController {
	return &HealthController{ModelName: modelName, Store: store}
}

// GET /health
func (hc *HealthController) Health(c *gin.Context) {
	body := gin.H{"status": "ok", "model": hc.ModelName}
	if p, ok := hc.Store.(pinger); ok {
		if err := p.Ping(c.Request.Context()); err != nil {
			body["status"] = "degraded"
			body["corpus"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
	}
	c.JSON(http.StatusOK, body)
}
