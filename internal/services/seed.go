package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/gpaccess/backend/internal/domain"
	"github.com/gpaccess/backend/internal/observability"
	"github.com/gpaccess/backend/internal/pkg/logger"
)

// partnerJobTitle marks which seeded employees are eligible to become a
// practice's main partner.
const partnerJobTitle = "GP Partner"

const employeesPerPractice = 20

type practiceFixture struct {
	Name                string `json:"name"`
	PhoneNum            string `json:"phone_num"`
	NationalCode        string `json:"national_code"`
	EmisCDBPracticeCode string `json:"emis_cdb_practice_code"`
	GoLiveDate          string `json:"go_live_date"`
	Closed              bool   `json:"closed"`
}

type addressFixture struct {
	Line1    string `json:"line_1"`
	Line2    string `json:"line_2"`
	Town     string `json:"town"`
	County   string `json:"county"`
	Postcode string `json:"postcode"`
	DTSEmail string `json:"dts_email"`
}

type jobTitleFixture struct {
	Title string `json:"title"`
}

type employeeFixture struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	ProfessionalNum string `json:"professional_num"`
	JobTitle        string `json:"job_title"`
}

type accessSystemFixture struct {
	Name    string `json:"name"`
	Variant string `json:"variant"`
}

type ipRangeFixture struct {
	CIDR         string `json:"cidr"`
	AccessSystem string `json:"access_system"`
}

// SeedService bulk-loads JSON fixtures through the same write operations
// the request paths use. Every row runs in its own transaction: a failed
// row is logged and skipped so the batch continues. This best-effort
// recovery is scoped to seeding only; the request paths always propagate.
type SeedService struct {
	log             *logger.Logger
	practiceService PracticeService
	addressService  AddressService
	employeeService EmployeeService
	systemService   AccessSystemService
}

func NewSeedService(log *logger.Logger, practiceService PracticeService, addressService AddressService, employeeService EmployeeService, systemService AccessSystemService) *SeedService {
	serviceLog := log.With("service", "SeedService")
	return &SeedService{
		log:             serviceLog,
		practiceService: practiceService,
		addressService:  addressService,
		employeeService: employeeService,
		systemService:   systemService,
	}
}

func readFixture[T any](dir, name string) ([]T, error) {
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}
	var rows []T
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return rows, nil
}

func (s *SeedService) LoadAll(ctx context.Context, dir string) error {
	practices, err := s.loadPractices(ctx, dir)
	if err != nil {
		return err
	}
	s.loadAddresses(ctx, dir, practices)
	jobTitles := s.loadJobTitles(ctx, dir)
	employees := s.loadEmployees(ctx, dir, jobTitles)
	systems := s.loadAccessSystems(ctx, dir)
	s.loadIPRanges(ctx, dir, systems)

	s.assignEmployeesToPractices(ctx, employees, practices)
	s.assignMainPartners(ctx, employees, practices, jobTitles)
	s.assignAccessSystems(ctx, practices, systems)
	return nil
}

func (s *SeedService) loadPractices(ctx context.Context, dir string) ([]*domain.Practice, error) {
	rows, err := readFixture[practiceFixture](dir, "practices.json")
	if err != nil {
		return nil, err
	}
	s.log.Info("Writing mock data for practices", "count", len(rows))

	created := make([]*domain.Practice, 0, len(rows))
	for index, row := range rows {
		practice, _, err := s.practiceService.Upsert(ctx, PracticeInput(row))
		if err != nil {
			s.log.Debug("Skipping practice row", "index", index, "error", err)
			observability.SeedRowsTotal.WithLabelValues("practice", "error").Inc()
			continue
		}
		observability.SeedRowsTotal.WithLabelValues("practice", "ok").Inc()
		created = append(created, practice)
	}
	return created, nil
}

func (s *SeedService) loadAddresses(ctx context.Context, dir string, practices []*domain.Practice) {
	rows, err := readFixture[addressFixture](dir, "addresses.json")
	if err != nil {
		s.log.Warn("Could not read address fixtures", "error", err)
		return
	}
	s.log.Info("Writing mock data for addresses", "count", len(rows))

	for index, row := range rows {
		if index >= len(practices) {
			break
		}
		if _, _, err := s.addressService.UpsertForPractice(ctx, practices[index].ID, AddressInput(row)); err != nil {
			s.log.Debug("Skipping address row", "index", index, "error", err)
			observability.SeedRowsTotal.WithLabelValues("address", "error").Inc()
			continue
		}
		observability.SeedRowsTotal.WithLabelValues("address", "ok").Inc()
	}
}

func (s *SeedService) loadJobTitles(ctx context.Context, dir string) map[string]*domain.JobTitle {
	byTitle := map[string]*domain.JobTitle{}
	rows, err := readFixture[jobTitleFixture](dir, "job_titles.json")
	if err != nil {
		s.log.Warn("Could not read job title fixtures", "error", err)
		return byTitle
	}
	s.log.Info("Writing mock data for job titles", "count", len(rows))

	for index, row := range rows {
		title, err := s.employeeService.CreateJobTitle(ctx, row.Title)
		if err != nil {
			s.log.Debug("Skipping job title row", "index", index, "error", err)
			observability.SeedRowsTotal.WithLabelValues("job_title", "error").Inc()
			continue
		}
		observability.SeedRowsTotal.WithLabelValues("job_title", "ok").Inc()
		byTitle[title.Title] = title
	}
	return byTitle
}

func (s *SeedService) loadEmployees(ctx context.Context, dir string, jobTitles map[string]*domain.JobTitle) []*domain.Employee {
	rows, err := readFixture[employeeFixture](dir, "employees.json")
	if err != nil {
		s.log.Warn("Could not read employee fixtures", "error", err)
		return nil
	}
	s.log.Info("Writing mock data for employees", "count", len(rows))

	created := make([]*domain.Employee, 0, len(rows))
	for index, row := range rows {
		in := EmployeeInput{
			FirstName:       row.FirstName,
			LastName:        row.LastName,
			Email:           row.Email,
			ProfessionalNum: row.ProfessionalNum,
		}
		if title, ok := jobTitles[row.JobTitle]; ok {
			in.JobTitleID = &title.ID
		}
		employee, err := s.employeeService.Create(ctx, in)
		if err != nil {
			s.log.Debug("Skipping employee row", "index", index, "error", err)
			observability.SeedRowsTotal.WithLabelValues("employee", "error").Inc()
			continue
		}
		observability.SeedRowsTotal.WithLabelValues("employee", "ok").Inc()
		created = append(created, employee)
	}
	return created
}

func (s *SeedService) loadAccessSystems(ctx context.Context, dir string) []*domain.AccessSystem {
	rows, err := readFixture[accessSystemFixture](dir, "access_systems.json")
	if err != nil {
		s.log.Warn("Could not read access system fixtures", "error", err)
		return nil
	}
	s.log.Info("Writing mock data for access systems", "count", len(rows))

	created := make([]*domain.AccessSystem, 0, len(rows))
	for index, row := range rows {
		system, err := s.systemService.Create(ctx, AccessSystemInput(row))
		if err != nil {
			s.log.Debug("Skipping access system row", "index", index, "error", err)
			observability.SeedRowsTotal.WithLabelValues("access_system", "error").Inc()
			continue
		}
		observability.SeedRowsTotal.WithLabelValues("access_system", "ok").Inc()
		created = append(created, system)
	}
	return created
}

func (s *SeedService) loadIPRanges(ctx context.Context, dir string, systems []*domain.AccessSystem) {
	rows, err := readFixture[ipRangeFixture](dir, "ip_ranges.json")
	if err != nil {
		s.log.Warn("Could not read ip range fixtures", "error", err)
		return
	}
	s.log.Info("Writing mock data for ip ranges", "count", len(rows))

	byName := map[string]uuid.UUID{}
	for _, system := range systems {
		byName[system.Name] = system.ID
	}
	for index, row := range rows {
		systemID, ok := byName[row.AccessSystem]
		if !ok {
			s.log.Debug("Skipping ip range row, unknown access system", "index", index, "access_system", row.AccessSystem)
			observability.SeedRowsTotal.WithLabelValues("ip_range", "error").Inc()
			continue
		}
		if _, err := s.systemService.AddIPRange(ctx, IPRangeInput{CIDR: row.CIDR, AccessSystemID: systemID}); err != nil {
			s.log.Debug("Skipping ip range row", "index", index, "error", err)
			observability.SeedRowsTotal.WithLabelValues("ip_range", "error").Inc()
			continue
		}
		observability.SeedRowsTotal.WithLabelValues("ip_range", "ok").Inc()
	}
}

func (s *SeedService) assignEmployeesToPractices(ctx context.Context, employees []*domain.Employee, practices []*domain.Practice) {
	if len(practices) == 0 {
		return
	}
	s.log.Info("Assigning employees per practice", "per_practice", employeesPerPractice)

	for index, employee := range employees {
		practiceIndex := index / employeesPerPractice
		if practiceIndex >= len(practices) {
			break
		}
		if _, err := s.employeeService.AssignToPractice(ctx, employee.ID, practices[practiceIndex].ID); err != nil {
			s.log.Debug("Skipping employee assignment", "index", index, "error", err)
			observability.SeedRowsTotal.WithLabelValues("employee_practice", "error").Inc()
			continue
		}
		observability.SeedRowsTotal.WithLabelValues("employee_practice", "ok").Inc()
	}
}

func (s *SeedService) assignMainPartners(ctx context.Context, employees []*domain.Employee, practices []*domain.Practice, jobTitles map[string]*domain.JobTitle) {
	partnerTitle, ok := jobTitles[partnerJobTitle]
	if !ok {
		s.log.Warn("No partner job title seeded, skipping main partner assignment", "title", partnerJobTitle)
		return
	}
	s.log.Info("Assigning one main partner to each practice")

	var partners []*domain.Employee
	for _, employee := range employees {
		if employee.JobTitleID != nil && *employee.JobTitleID == partnerTitle.ID {
			partners = append(partners, employee)
		}
	}
	for index, practice := range practices {
		if index >= len(partners) {
			break
		}
		if _, err := s.practiceService.AssignMainPartner(ctx, practice.ID, partners[index].ID); err != nil {
			s.log.Debug("Skipping main partner assignment", "index", index, "error", err)
			observability.SeedRowsTotal.WithLabelValues("practice_main_partner", "error").Inc()
			continue
		}
		observability.SeedRowsTotal.WithLabelValues("practice_main_partner", "ok").Inc()
	}
}

func (s *SeedService) assignAccessSystems(ctx context.Context, practices []*domain.Practice, systems []*domain.AccessSystem) {
	if len(systems) == 0 {
		return
	}
	s.log.Info("Assigning an access system to each practice")

	for index, practice := range practices {
		system := systems[index%len(systems)]
		if _, err := s.practiceService.AssignAccessSystems(ctx, practice.ID, []uuid.UUID{system.ID}); err != nil {
			s.log.Debug("Skipping access system assignment", "index", index, "error", err)
			observability.SeedRowsTotal.WithLabelValues("practice_access_system", "error").Inc()
			continue
		}
		observability.SeedRowsTotal.WithLabelValues("practice_access_system", "ok").Inc()
	}
}
