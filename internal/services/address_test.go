package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	errs "github.com/gpaccess/backend/internal/pkg/errors"
)

func TestAddressUpsertForPractice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	name := "Address Upsert Practice " + uuid.NewString()
	env.cleanupPractice(t, name)

	practice, _, err := env.practices.Upsert(ctx, PracticeInput{Name: name})
	if err != nil {
		t.Fatalf("upsert practice: %v", err)
	}

	first, outcome, err := env.addresses.UpsertForPractice(ctx, practice.ID, AddressInput{
		Line1:    "1 High Street",
		Town:     "Leeds",
		Postcode: "LS1 1AA",
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if outcome != OutcomeInserted {
		t.Fatalf("first upsert outcome: want inserted, got %s", outcome)
	}

	second, outcome, err := env.addresses.UpsertForPractice(ctx, practice.ID, AddressInput{
		Line1:    "2 Low Street",
		Town:     "Leeds",
		Postcode: "LS2 2BB",
		DTSEmail: "practice@nhs.example",
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if outcome != OutcomeUpdated {
		t.Fatalf("second upsert outcome: want updated, got %s", outcome)
	}
	if second.ID != first.ID {
		t.Fatalf("second upsert created a new address: %s != %s", second.ID, first.ID)
	}
	if second.Line1 != "2 Low Street" || second.Postcode != "LS2 2BB" {
		t.Fatalf("second upsert did not overwrite fields: %+v", second)
	}

	byName, err := env.addresses.GetByPracticeName(ctx, name)
	if err != nil {
		t.Fatalf("GetByPracticeName: %v", err)
	}
	if byName.ID != first.ID {
		t.Fatalf("GetByPracticeName returned wrong address: %s", byName.ID)
	}
}

func TestAddressUpsertUnknownPractice(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.addresses.UpsertForPractice(context.Background(), uuid.New(), AddressInput{Line1: "1 High Street"})
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound for unknown practice, got %v", err)
	}
}
