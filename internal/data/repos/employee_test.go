package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/gpaccess/backend/internal/data/repos/testutil"
	"github.com/gpaccess/backend/internal/domain"
)

func TestEmployeeRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewEmployeeRepo(db, testutil.Logger(t))

	jt := testutil.SeedJobTitle(t, ctx, tx, "GP Partner "+uuid.NewString())
	email := "employeerepo-" + uuid.NewString() + "@example.com"
	num := "GMC-" + uuid.NewString()
	e := &domain.Employee{
		ID:              uuid.New(),
		FirstName:       "Alex",
		LastName:        "Morgan",
		Email:           email,
		ProfessionalNum: &num,
		JobTitleID:      &jt.ID,
		Active:          true,
	}
	if _, err := repo.Create(ctx, tx, []*domain.Employee{e}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{e.ID}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.GetByEmails(ctx, tx, []string{email}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByEmails: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.GetByProfessionalNums(ctx, tx, []string{num}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByProfessionalNums: err=%v len=%d", err, len(rows))
	}

	first, err := repo.FirstByFirstName(ctx, tx, "Alex")
	if err != nil {
		t.Fatalf("FirstByFirstName: %v", err)
	}
	if first == nil {
		t.Fatal("FirstByFirstName: want a row, got nil")
	}

	exists, err := repo.EmailExists(ctx, tx, email)
	if err != nil || !exists {
		t.Fatalf("EmailExists: err=%v exists=%v", err, exists)
	}

	if err := repo.UpdateFields(ctx, tx, e.ID, map[string]interface{}{"active": false}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{e.ID})
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs after update: err=%v len=%d", err, len(rows))
	}
	if rows[0].Active {
		t.Fatal("update not applied: employee still active")
	}

	if err := repo.DeleteByIDs(ctx, tx, []uuid.UUID{e.ID}); err != nil {
		t.Fatalf("DeleteByIDs: %v", err)
	}
	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{e.ID}); err != nil || len(rows) != 0 {
		t.Fatalf("after DeleteByIDs GetByIDs: err=%v len=%d", err, len(rows))
	}
}

func TestEmployeeRepoMissingLookupsReturnEmpty(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewEmployeeRepo(db, testutil.Logger(t))

	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{uuid.New()}); err != nil || len(rows) != 0 {
		t.Fatalf("GetByIDs for unknown id: err=%v len=%d", err, len(rows))
	}
	first, err := repo.FirstByFirstName(ctx, tx, "no-such-first-name-"+uuid.NewString())
	if err != nil {
		t.Fatalf("FirstByFirstName: %v", err)
	}
	if first != nil {
		t.Fatalf("FirstByFirstName for unknown name: want nil, got %v", first.ID)
	}
}
