package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleHealthcheck godoc
// @Summary      Welcome message
// @Tags         health
// @Produce      json
// @Success      200
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Welcome to Event Ticket API"})
}

func HandleNotFound(ctx *gin.Context) {
	ctx.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
}
