package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gpaccess/backend/internal/domain"
	errs "github.com/gpaccess/backend/internal/pkg/errors"
)

func TestPracticeUpsertIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	name := "Upsert Practice " + uuid.NewString()
	env.cleanupPractice(t, name)

	first, outcome, err := env.practices.Upsert(ctx, PracticeInput{
		Name:         name,
		PhoneNum:     "0113 111 1111",
		NationalCode: "B81001",
		GoLiveDate:   "2023-06-01",
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if outcome != OutcomeInserted {
		t.Fatalf("first upsert outcome: want inserted, got %s", outcome)
	}

	second, outcome, err := env.practices.Upsert(ctx, PracticeInput{
		Name:         name,
		PhoneNum:     "0113 222 2222",
		NationalCode: "B81002",
		GoLiveDate:   "2023-06-01",
		Closed:       true,
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if outcome != OutcomeUpdated {
		t.Fatalf("second upsert outcome: want updated, got %s", outcome)
	}
	if second.ID != first.ID {
		t.Fatalf("second upsert created a new row: %s != %s", second.ID, first.ID)
	}
	if second.PhoneNum != "0113 222 2222" || second.NationalCode != "B81002" || !second.Closed {
		t.Fatalf("second upsert did not overwrite fields: %+v", second)
	}

	// Exactly one row for the name.
	var count int64
	if err := env.db.Model(&domain.Practice{}).Where("name = ?", name).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("want 1 row for %q, got %d", name, count)
	}
}

func TestPracticeUpsertConcurrent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	name := "Concurrent Practice " + uuid.NewString()
	env.cleanupPractice(t, name)

	const workers = 8
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			_, _, err := env.practices.Upsert(ctx, PracticeInput{
				Name:       name,
				PhoneNum:   "0113 000 0000",
				GoLiveDate: "2023-01-01",
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent upsert: %v", err)
	}

	var count int64
	if err := env.db.Model(&domain.Practice{}).Where("name = ?", name).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("want exactly 1 row after %d concurrent upserts, got %d", workers, count)
	}
}

func TestPracticeGetByIDNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.practices.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestPracticeDeleteRemovesAddressAndLinks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	name := "Delete Practice " + uuid.NewString()
	email := "delete-" + uuid.NewString() + "@example.com"
	env.cleanupPractice(t, name)
	env.cleanupEmployee(t, email)

	practice, _, err := env.practices.Upsert(ctx, PracticeInput{Name: name})
	if err != nil {
		t.Fatalf("upsert practice: %v", err)
	}
	if _, _, err := env.addresses.UpsertForPractice(ctx, practice.ID, AddressInput{
		Line1:    "1 High Street",
		Town:     "Leeds",
		Postcode: "LS1 1AA",
	}); err != nil {
		t.Fatalf("upsert address: %v", err)
	}
	employee, err := env.employees.Create(ctx, EmployeeInput{
		FirstName:       "Del",
		Email:           email,
		ProfessionalNum: "GMC-" + uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}
	if _, err := env.employees.AssignToPractice(ctx, employee.ID, practice.ID); err != nil {
		t.Fatalf("assign to practice: %v", err)
	}

	if _, err := env.practices.Delete(ctx, practice.ID); err != nil {
		t.Fatalf("delete practice: %v", err)
	}

	if _, err := env.practices.GetByID(ctx, practice.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("practice still readable after delete: %v", err)
	}
	if _, err := env.addresses.GetByPracticeID(ctx, practice.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("address still readable after delete: %v", err)
	}

	// The employee survives, only the link goes.
	practices, err := env.employees.PracticesForEmployee(ctx, employee.ID)
	if err != nil {
		t.Fatalf("PracticesForEmployee: %v", err)
	}
	if len(practices) != 0 {
		t.Fatalf("employee still linked to %d practices after delete", len(practices))
	}
}

func TestPracticeAssignAccessSystemsReplaces(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	name := "Systems Practice " + uuid.NewString()
	sysNameA := "EMIS Web " + uuid.NewString()
	sysNameB := "SystmOne " + uuid.NewString()
	env.cleanupPractice(t, name)
	env.cleanupAccessSystem(t, sysNameA)
	env.cleanupAccessSystem(t, sysNameB)

	practice, _, err := env.practices.Upsert(ctx, PracticeInput{Name: name})
	if err != nil {
		t.Fatalf("upsert practice: %v", err)
	}
	sysA, err := env.systems.Create(ctx, AccessSystemInput{Name: sysNameA})
	if err != nil {
		t.Fatalf("create system A: %v", err)
	}
	sysB, err := env.systems.Create(ctx, AccessSystemInput{Name: sysNameB})
	if err != nil {
		t.Fatalf("create system B: %v", err)
	}

	if _, err := env.practices.AssignAccessSystems(ctx, practice.ID, []uuid.UUID{sysA.ID}); err != nil {
		t.Fatalf("assign system A: %v", err)
	}
	if _, err := env.practices.AssignAccessSystems(ctx, practice.ID, []uuid.UUID{sysB.ID}); err != nil {
		t.Fatalf("assign system B: %v", err)
	}

	systems, err := env.practices.AccessSystemsForPractice(ctx, practice.ID)
	if err != nil {
		t.Fatalf("AccessSystemsForPractice: %v", err)
	}
	if len(systems) != 1 || systems[0].ID != sysB.ID {
		t.Fatalf("want exactly system B after reassignment, got %d rows", len(systems))
	}

	// A repeated id in the set is not an error and yields one link.
	if _, err := env.practices.AssignAccessSystems(ctx, practice.ID, []uuid.UUID{sysA.ID, sysA.ID}); err != nil {
		t.Fatalf("assign with duplicate ids: %v", err)
	}
	systems, err = env.practices.AccessSystemsForPractice(ctx, practice.ID)
	if err != nil {
		t.Fatalf("AccessSystemsForPractice after duplicate assign: %v", err)
	}
	if len(systems) != 1 || systems[0].ID != sysA.ID {
		t.Fatalf("want exactly one link for system A, got %d rows", len(systems))
	}

	// Unknown system id rejects the whole set.
	if _, err := env.practices.AssignAccessSystems(ctx, practice.ID, []uuid.UUID{uuid.New()}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound for unknown system id, got %v", err)
	}
}
