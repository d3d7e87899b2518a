package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gpaccess/backend/internal/services"
)

type PracticeHandler struct {
	practiceService services.PracticeService
}

func NewPracticeHandler(practiceService services.PracticeService) *PracticeHandler {
	return &PracticeHandler{practiceService: practiceService}
}

// Upsert creates the practice or overwrites the existing row with the same
// name. Both branches answer 200 with the resulting row.
func (ph *PracticeHandler) Upsert(c *gin.Context) {
	var in services.PracticeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	practice, _, err := ph.practiceService.Upsert(c.Request.Context(), in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, practice)
}

func (ph *PracticeHandler) List(c *gin.Context) {
	offset, limit := pageParams(c)
	practices, err := ph.practiceService.List(c.Request.Context(), offset, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, practices)
}

func (ph *PracticeHandler) GetByID(c *gin.Context) {
	practiceID, err := uuidQuery(c, "practice_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_param", err)
		return
	}
	practice, err := ph.practiceService.GetByID(c.Request.Context(), practiceID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, practice)
}

func (ph *PracticeHandler) GetByName(c *gin.Context) {
	name := c.Query("practice_name")
	if name == "" {
		RespondError(c, http.StatusBadRequest, "invalid_param", errMissingParam("practice_name"))
		return
	}
	practice, err := ph.practiceService.GetByName(c.Request.Context(), name)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, practice)
}

func (ph *PracticeHandler) Delete(c *gin.Context) {
	practiceID, err := uuidQuery(c, "practice_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_param", err)
		return
	}
	practice, err := ph.practiceService.Delete(c.Request.Context(), practiceID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, practice)
}

func (ph *PracticeHandler) Count(c *gin.Context) {
	count, err := ph.practiceService.Count(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"count": count})
}

func (ph *PracticeHandler) Names(c *gin.Context) {
	names, err := ph.practiceService.Names(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	RespondOK(c, gin.H{"names": names})
}

// AssignMainPartner replaces the practice's main partner set with the one
// given employee.
func (ph *PracticeHandler) AssignMainPartner(c *gin.Context) {
	practiceID, err := uuidQuery(c, "practice_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_param", err)
		return
	}
	employeeID, err := uuidQuery(c, "employee_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_param", err)
		return
	}
	practice, err := ph.practiceService.AssignMainPartner(c.Request.Context(), practiceID, employeeID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, practice)
}

func (ph *PracticeHandler) AssignAccessSystem(c *gin.Context) {
	practiceID, err := uuidQuery(c, "practice_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_param", err)
		return
	}
	systemID, err := uuidQuery(c, "access_system_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_param", err)
		return
	}
	practice, err := ph.practiceService.AssignAccessSystems(c.Request.Context(), practiceID, []uuid.UUID{systemID})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, practice)
}

func (ph *PracticeHandler) AccessSystems(c *gin.Context) {
	practiceID, err := uuidQuery(c, "practice_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_param", err)
		return
	}
	systems, err := ph.practiceService.AccessSystemsForPractice(c.Request.Context(), practiceID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, systems)
}
