package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gpaccess/backend/internal/services"
)

type EmployeeHandler struct {
	employeeService services.EmployeeService
}

func NewEmployeeHandler(employeeService services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// Create rejects an already-registered email with a 400, matching the
// duplicate-create contract. It never upserts.
func (eh *EmployeeHandler) Create(c *gin.Context) {
	var in services.EmployeeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	employee, err := eh.employeeService.Create(c.Request.Context(), in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, employee)
}

func (eh *EmployeeHandler) List(c *gin.Context) {
	offset, limit := pageParams(c)
	employees, err := eh.employeeService.List(c.Request.Context(), offset, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, employees)
}

func (eh *EmployeeHandler) GetByID(c *gin.Context) {
	employeeID, err := uuidQuery(c, "employee_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_param", err)
		return
	}
	employee, err := eh.employeeService.GetByID(c.Request.Context(), employeeID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, employee)
}

func (eh *EmployeeHandler) GetByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		RespondError(c, http.StatusBadRequest, "invalid_param", errMissingParam("email"))
		return
	}
	employee, err := eh.employeeService.GetByEmail(c.Request.Context(), email)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, employee)
}

func (eh *EmployeeHandler) GetByName(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		RespondError(c, http.StatusBadRequest, "invalid_param", errMissingParam("name"))
		return
	}
	employee, err := eh.employeeService.GetByFirstName(c.Request.Context(), name)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, employee)
}

func (eh *EmployeeHandler) GetByProfessionalNum(c *gin.Context) {
	professionalNum := c.Query("professional_num")
	if professionalNum == "" {
		RespondError(c, http.StatusBadRequest, "invalid_param", errMissingParam("professional_num"))
		return
	}
	employee, err := eh.employeeService.GetByProfessionalNum(c.Request.Context(), professionalNum)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, employee)
}

func (eh *EmployeeHandler) Update(c *gin.Context) {
	employeeID, err := uuidQuery(c, "employee_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_param", err)
		return
	}
	var in services.EmployeeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	employee, err := eh.employeeService.Update(c.Request.Context(), employeeID, in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, employee)
}

func (eh *EmployeeHandler) Delete(c *gin.Context) {
	employeeID, err := uuidQuery(c, "employee_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_param", err)
		return
	}
	employee, err := eh.employeeService.Delete(c.Request.Context(), employeeID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, employee)
}

func (eh *EmployeeHandler) AssignToPractice(c *gin.Context) {
	employeeID, err := uuidQuery(c, "employee_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_param", err)
		return
	}
	practiceID, err := uuidQuery(c, "practice_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_param", err)
		return
	}
	employee, err := eh.employeeService.AssignToPractice(c.Request.Context(), employeeID, practiceID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, employee)
}

func (eh *EmployeeHandler) UnassignFromPractices(c *gin.Context) {
	employeeID, err := uuidQuery(c, "employee_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_param", err)
		return
	}
	employee, err := eh.employeeService.UnassignFromAllPractices(c.Request.Context(), employeeID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, employee)
}

func (eh *EmployeeHandler) ChangeJobTitle(c *gin.Context) {
	employeeID, err := uuidQuery(c, "employee_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_param", err)
		return
	}
	jobTitleID, err := uuidQuery(c, "job_title_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_param", err)
		return
	}
	employee, err := eh.employeeService.ChangeJobTitle(c.Request.Context(), employeeID, jobTitleID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, employee)
}

// ListForPractice answers an empty list for a practice with no assigned
// employees; only a missing practice is a 404.
func (eh *EmployeeHandler) ListForPractice(c *gin.Context) {
	practiceID, err := uuidQuery(c, "practice_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_param", err)
		return
	}
	employees, err := eh.employeeService.ListForPractice(c.Request.Context(), practiceID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"practice_id": practiceID, "employees": employees})
}

func (eh *EmployeeHandler) MainPartnersForPractice(c *gin.Context) {
	practiceID, err := uuidQuery(c, "practice_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_param", err)
		return
	}
	partners, err := eh.employeeService.MainPartnersForPractice(c.Request.Context(), practiceID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, partners)
}

func (eh *EmployeeHandler) PracticesForEmployee(c *gin.Context) {
	employeeID, err := uuidQuery(c, "employee_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_param", err)
		return
	}
	practices, err := eh.employeeService.PracticesForEmployee(c.Request.Context(), employeeID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, practices)
}

func (eh *EmployeeHandler) ListJobTitles(c *gin.Context) {
	titles, err := eh.employeeService.ListJobTitles(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, titles)
}

func (eh *EmployeeHandler) CreateJobTitle(c *gin.Context) {
	var in struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	title, err := eh.employeeService.CreateJobTitle(c.Request.Context(), in.Title)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, title)
}

func (eh *EmployeeHandler) Count(c *gin.Context) {
	count, err := eh.employeeService.Count(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"count": count})
}

func (eh *EmployeeHandler) Names(c *gin.Context) {
	names, err := eh.employeeService.Names(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	RespondOK(c, gin.H{"names": names})
}
