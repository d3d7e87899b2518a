package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gpaccess/backend/internal/services"
)

type AccessSystemHandler struct {
	systemService services.AccessSystemService
}

func NewAccessSystemHandler(systemService services.AccessSystemService) *AccessSystemHandler {
	return &AccessSystemHandler{systemService: systemService}
}

func (ash *AccessSystemHandler) Create(c *gin.Context) {
	var in services.AccessSystemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	system, err := ash.systemService.Create(c.Request.Context(), in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, system)
}

func (ash *AccessSystemHandler) List(c *gin.Context) {
	offset, limit := pageParams(c)
	systems, err := ash.systemService.List(c.Request.Context(), offset, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, systems)
}

func (ash *AccessSystemHandler) AddIPRange(c *gin.Context) {
	var in services.IPRangeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	ipRange, err := ash.systemService.AddIPRange(c.Request.Context(), in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, ipRange)
}

func (ash *AccessSystemHandler) ListIPRanges(c *gin.Context) {
	if raw := c.Query("access_system_id"); raw != "" {
		systemID, err := uuidQuery(c, "access_system_id")
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_param", err)
			return
		}
		ranges, err := ash.systemService.IPRangesForAccessSystem(c.Request.Context(), systemID)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		RespondOK(c, ranges)
		return
	}
	offset, limit := pageParams(c)
	ranges, err := ash.systemService.ListIPRanges(c.Request.Context(), offset, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, ranges)
}
