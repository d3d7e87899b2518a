package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/gpaccess/backend/internal/data/repos/testutil"
	"github.com/gpaccess/backend/internal/domain"
)

func TestAddressRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewAddressRepo(db, testutil.Logger(t))

	practice := testutil.SeedPractice(t, ctx, tx, "Address Practice "+uuid.NewString())
	addr := testutil.SeedAddress(t, ctx, tx, practice.ID)

	rows, err := repo.GetByPracticeIDs(ctx, tx, []uuid.UUID{practice.ID})
	if err != nil {
		t.Fatalf("GetByPracticeIDs: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != addr.ID {
		t.Fatalf("want the seeded address, got %d rows", len(rows))
	}

	if err := repo.UpdateFields(ctx, tx, addr.ID, map[string]interface{}{
		"line_1":   "2 Low Street",
		"postcode": "LS2 2BB",
	}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	rows, err = repo.GetByIDs(ctx, tx, []uuid.UUID{addr.ID})
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs after update: err=%v len=%d", err, len(rows))
	}
	if rows[0].Line1 != "2 Low Street" || rows[0].Postcode != "LS2 2BB" {
		t.Fatalf("update not applied: %+v", rows[0])
	}

	if err := repo.DeleteByPracticeIDs(ctx, tx, []uuid.UUID{practice.ID}); err != nil {
		t.Fatalf("DeleteByPracticeIDs: %v", err)
	}
	rows, err = repo.GetByPracticeIDs(ctx, tx, []uuid.UUID{practice.ID})
	if err != nil || len(rows) != 0 {
		t.Fatalf("after delete GetByPracticeIDs: err=%v len=%d", err, len(rows))
	}
}

func TestAddressRepoOnePerPractice(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewAddressRepo(db, testutil.Logger(t))

	practice := testutil.SeedPractice(t, ctx, tx, "One Address Practice "+uuid.NewString())
	testutil.SeedAddress(t, ctx, tx, practice.ID)

	dup := &domain.Address{
		ID:         uuid.New(),
		PracticeID: practice.ID,
		Line1:      "3 Side Street",
		Town:       "Leeds",
		Postcode:   "LS3 3CC",
	}
	if _, err := repo.Create(ctx, tx, []*domain.Address{dup}); err == nil {
		t.Fatal("expected a unique violation for a second address on the same practice")
	}
}
