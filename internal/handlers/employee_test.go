package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gpaccess/backend/internal/domain"
	errs "github.com/gpaccess/backend/internal/pkg/errors"
	"github.com/gpaccess/backend/internal/services"
)

// stubEmployeeService overrides only the methods a test exercises; calling
// anything else panics through the embedded nil interface.
type stubEmployeeService struct {
	services.EmployeeService
	getByID         func(ctx context.Context, employeeID uuid.UUID) (*domain.Employee, error)
	create          func(ctx context.Context, in services.EmployeeInput) (*domain.Employee, error)
	listForPractice func(ctx context.Context, practiceID uuid.UUID) ([]*domain.Employee, error)
}

func (s *stubEmployeeService) GetByID(ctx context.Context, employeeID uuid.UUID) (*domain.Employee, error) {
	return s.getByID(ctx, employeeID)
}

func (s *stubEmployeeService) Create(ctx context.Context, in services.EmployeeInput) (*domain.Employee, error) {
	return s.create(ctx, in)
}

func (s *stubEmployeeService) ListForPractice(ctx context.Context, practiceID uuid.UUID) ([]*domain.Employee, error) {
	return s.listForPractice(ctx, practiceID)
}

func employeeRouter(stub services.EmployeeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewEmployeeHandler(stub)
	router.POST("/api/v1/employee", h.Create)
	router.GET("/api/v1/employee/id", h.GetByID)
	router.GET("/api/v1/employees/practice", h.ListForPractice)
	return router
}

func TestEmployeeGetByIDNotFoundMapsTo404(t *testing.T) {
	stub := &stubEmployeeService{
		getByID: func(ctx context.Context, employeeID uuid.UUID) (*domain.Employee, error) {
			return nil, fmt.Errorf("%w: no employee found with ID %s", errs.ErrNotFound, employeeID)
		},
	}
	router := employeeRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/employee/id?employee_id="+uuid.NewString(), nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Error.Code != "not_found" {
		t.Fatalf("want code not_found, got %q", envelope.Error.Code)
	}
}

func TestEmployeeGetByIDRejectsBadParam(t *testing.T) {
	router := employeeRouter(&stubEmployeeService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/employee/id?employee_id=not-a-uuid", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestEmployeeCreateConflictMapsTo400(t *testing.T) {
	stub := &stubEmployeeService{
		create: func(ctx context.Context, in services.EmployeeInput) (*domain.Employee, error) {
			return nil, fmt.Errorf("%w: employee with email %s already registered", errs.ErrConflict, in.Email)
		},
	}
	router := employeeRouter(stub)

	body := `{"first_name":"Sam","email":"sam@example.com"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/employee", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Error.Code != "conflict" {
		t.Fatalf("want code conflict, got %q", envelope.Error.Code)
	}
}

func TestEmployeeListForPracticeEmptyListIs200(t *testing.T) {
	practiceID := uuid.New()
	stub := &stubEmployeeService{
		listForPractice: func(ctx context.Context, id uuid.UUID) ([]*domain.Employee, error) {
			if id != practiceID {
				t.Fatalf("unexpected practice id %s", id)
			}
			return []*domain.Employee{}, nil
		},
	}
	router := employeeRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/practice?practice_id="+practiceID.String(), nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		PracticeID uuid.UUID         `json:"practice_id"`
		Employees  []*domain.Employee `json:"employees"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload.PracticeID != practiceID {
		t.Fatalf("want practice id %s, got %s", practiceID, payload.PracticeID)
	}
	if payload.Employees == nil || len(payload.Employees) != 0 {
		t.Fatalf("want empty employees list, got %v", payload.Employees)
	}
}
