package payroll

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"capbot/internal/shared/apperror"
	"capbot/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetRecord(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")
	competency := c.Param("competency")

	resp, err := h.service.GetRecord(ctx, name, competency)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
