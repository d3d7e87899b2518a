package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	errs "github.com/gpaccess/backend/internal/pkg/errors"
)

func TestEmployeeCreateDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	email := "dup-" + uuid.NewString() + "@example.com"
	env.cleanupEmployee(t, email)

	if _, err := env.employees.Create(ctx, EmployeeInput{FirstName: "First", Email: email, ProfessionalNum: "GMC-" + uuid.NewString()}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := env.employees.Create(ctx, EmployeeInput{FirstName: "Second", Email: email, ProfessionalNum: "GMC-" + uuid.NewString()})
	if !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("want ErrConflict for duplicate email, got %v", err)
	}
}

func TestEmployeeCreateWithoutProfessionalNum(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	emailA := "nonum-a-" + uuid.NewString() + "@example.com"
	emailB := "nonum-b-" + uuid.NewString() + "@example.com"
	env.cleanupEmployee(t, emailA)
	env.cleanupEmployee(t, emailB)

	// Only the email is required; two employees without a professional
	// number must both be creatable.
	first, err := env.employees.Create(ctx, EmployeeInput{FirstName: "NoNum", Email: emailA})
	if err != nil {
		t.Fatalf("first create without professional num: %v", err)
	}
	if first.ProfessionalNum != nil {
		t.Fatalf("want nil professional num, got %q", *first.ProfessionalNum)
	}
	if _, err := env.employees.Create(ctx, EmployeeInput{FirstName: "NoNum", Email: emailB}); err != nil {
		t.Fatalf("second create without professional num: %v", err)
	}
}

func TestEmployeeCreateDuplicateProfessionalNum(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	emailA := "num-a-" + uuid.NewString() + "@example.com"
	emailB := "num-b-" + uuid.NewString() + "@example.com"
	num := "GMC-" + uuid.NewString()
	env.cleanupEmployee(t, emailA)
	env.cleanupEmployee(t, emailB)

	if _, err := env.employees.Create(ctx, EmployeeInput{FirstName: "First", Email: emailA, ProfessionalNum: num}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := env.employees.Create(ctx, EmployeeInput{FirstName: "Second", Email: emailB, ProfessionalNum: num})
	if !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("want ErrConflict for duplicate professional num, got %v", err)
	}
	// The message must name the constraint that fired, not the email.
	if !strings.Contains(err.Error(), "professional num") {
		t.Fatalf("conflict message should mention the professional num: %v", err)
	}
}

func TestEmployeeAssignToPracticeReplacesExisting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	nameA := "Employee Practice A " + uuid.NewString()
	nameB := "Employee Practice B " + uuid.NewString()
	email := "assign-" + uuid.NewString() + "@example.com"
	env.cleanupPractice(t, nameA)
	env.cleanupPractice(t, nameB)
	env.cleanupEmployee(t, email)

	practiceA, _, err := env.practices.Upsert(ctx, PracticeInput{Name: nameA})
	if err != nil {
		t.Fatalf("upsert practice A: %v", err)
	}
	practiceB, _, err := env.practices.Upsert(ctx, PracticeInput{Name: nameB})
	if err != nil {
		t.Fatalf("upsert practice B: %v", err)
	}
	employee, err := env.employees.Create(ctx, EmployeeInput{FirstName: "Sam", Email: email, ProfessionalNum: "GMC-" + uuid.NewString()})
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}

	if _, err := env.employees.AssignToPractice(ctx, employee.ID, practiceA.ID); err != nil {
		t.Fatalf("assign A: %v", err)
	}
	if _, err := env.employees.AssignToPractice(ctx, employee.ID, practiceB.ID); err != nil {
		t.Fatalf("assign B: %v", err)
	}

	practices, err := env.employees.PracticesForEmployee(ctx, employee.ID)
	if err != nil {
		t.Fatalf("PracticesForEmployee: %v", err)
	}
	if len(practices) != 1 || practices[0].ID != practiceB.ID {
		t.Fatalf("want exactly practice B after reassignment, got %d rows", len(practices))
	}

	if _, err := env.employees.UnassignFromAllPractices(ctx, employee.ID); err != nil {
		t.Fatalf("unassign: %v", err)
	}
	practices, err = env.employees.PracticesForEmployee(ctx, employee.ID)
	if err != nil {
		t.Fatalf("PracticesForEmployee after unassign: %v", err)
	}
	if len(practices) != 0 {
		t.Fatalf("want no practices after unassign, got %d", len(practices))
	}
}

func TestEmployeeListForPractice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Unknown practice is an error, not an empty list.
	if _, err := env.employees.ListForPractice(ctx, uuid.New()); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound for unknown practice, got %v", err)
	}

	name := "Empty Practice " + uuid.NewString()
	env.cleanupPractice(t, name)
	practice, _, err := env.practices.Upsert(ctx, PracticeInput{Name: name})
	if err != nil {
		t.Fatalf("upsert practice: %v", err)
	}

	// A practice with no staff lists as empty.
	employees, err := env.employees.ListForPractice(ctx, practice.ID)
	if err != nil {
		t.Fatalf("ListForPractice: %v", err)
	}
	if len(employees) != 0 {
		t.Fatalf("want empty list, got %d rows", len(employees))
	}
}

func TestEmployeeChangeJobTitle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	email := "title-" + uuid.NewString() + "@example.com"
	title := "Practice Nurse " + uuid.NewString()
	env.cleanupEmployee(t, email)
	env.cleanupJobTitle(t, title)

	employee, err := env.employees.Create(ctx, EmployeeInput{FirstName: "Nina", Email: email, ProfessionalNum: "GMC-" + uuid.NewString()})
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}
	jobTitle, err := env.employees.CreateJobTitle(ctx, title)
	if err != nil {
		t.Fatalf("create job title: %v", err)
	}

	updated, err := env.employees.ChangeJobTitle(ctx, employee.ID, jobTitle.ID)
	if err != nil {
		t.Fatalf("ChangeJobTitle: %v", err)
	}
	if updated.JobTitleID == nil || *updated.JobTitleID != jobTitle.ID {
		t.Fatalf("job title not applied: %+v", updated.JobTitleID)
	}

	if _, err := env.employees.ChangeJobTitle(ctx, employee.ID, uuid.New()); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound for unknown job title, got %v", err)
	}
}
