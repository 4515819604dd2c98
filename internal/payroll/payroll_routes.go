package payroll

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	payroll := rg.Group("/payroll")
	{
		payroll.GET("/:name/:competency", h.GetRecord)
	}
}
