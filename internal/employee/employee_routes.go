package employee

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	employees := rg.Group("/employees")
	{
		employees.GET("", h.GetAll)
		employees.GET("/:name/competencies", h.GetCompetencies)
	}
}
