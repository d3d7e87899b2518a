package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	errs "github.com/gpaccess/backend/internal/pkg/errors"
)

func TestAccessSystemIPRanges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	name := "EMIS Web " + uuid.NewString()
	env.cleanupAccessSystem(t, name)

	system, err := env.systems.Create(ctx, AccessSystemInput{Name: name, Variant: "hosted"})
	if err != nil {
		t.Fatalf("create system: %v", err)
	}

	for _, cidr := range []string{"10.0.0.0/24", "10.0.1.0/24"} {
		if _, err := env.systems.AddIPRange(ctx, IPRangeInput{CIDR: cidr, AccessSystemID: system.ID}); err != nil {
			t.Fatalf("AddIPRange %s: %v", cidr, err)
		}
	}

	ranges, err := env.systems.IPRangesForAccessSystem(ctx, system.ID)
	if err != nil {
		t.Fatalf("IPRangesForAccessSystem: %v", err)
	}
	if len(ranges) != 2 {
		t.Fatalf("want 2 ranges, got %d", len(ranges))
	}

	// The range must point at an existing system.
	_, err = env.systems.AddIPRange(ctx, IPRangeInput{CIDR: "10.0.2.0/24", AccessSystemID: uuid.New()})
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound for unknown system, got %v", err)
	}
}
