package chat

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	rg.POST("/chat", h.Chat)
	rg.GET("/health", h.Health)
}
