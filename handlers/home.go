package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-gia/types"
)

const statusMessage = "G.I.A. Protocol API running"

var endpoints = []string{"/api/events", "/api/analyze"}

func Home(c *gin.Context) {
	c.JSON(http.StatusOK, types.StatusResponse{
		Status:    statusMessage,
		Endpoints: endpoints,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}
