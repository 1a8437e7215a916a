package services

import (
	"context"
	"testing"

	"github.com/bizlink/backend/internal/models"
	"github.com/bizlink/backend/internal/storage"
)

func TestProfileCreateBlankByKind(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(storage.NewMemoryStore())

	prof, err := svc.Create(ctx, "u1", "a@x.com", models.KindFreelancer)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if prof.Role != models.RoleUser {
		t.Errorf("role = %q, want user", prof.Role)
	}
	if prof.DisplayName != "" || prof.CompanyName != "" {
		t.Errorf("attributes not blank: %+v", prof)
	}
	if prof.CreatedAt.IsZero() || prof.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestProfileCreateRaceReturnsExisting(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(storage.NewMemoryStore())

	first, err := svc.Create(ctx, "u1", "a@x.com", models.KindCompany)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := svc.Create(ctx, "u1", "a@x.com", models.KindCompany)
	if err != nil {
		t.Fatalf("repeat Create: %v", err)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Error("repeat Create must return the original document")
	}
}

// The timestamps Create returns must compare equal to the stored document's,
// which only keeps millisecond precision.
func TestProfileCreateTimestampsMatchStored(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(storage.NewMemoryStore())

	created, err := svc.Create(ctx, "u1", "a@x.com", models.KindFreelancer)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	stored, err := svc.GetByUserID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if !stored.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("created_at stored = %v, returned = %v", stored.CreatedAt, created.CreatedAt)
	}
	if !stored.UpdatedAt.Equal(created.UpdatedAt) {
		t.Errorf("updated_at stored = %v, returned = %v", stored.UpdatedAt, created.UpdatedAt)
	}
}

func TestProfileUpdatePartial(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(storage.NewMemoryStore())

	if _, err := svc.Create(ctx, "u1", "a@x.com", models.KindFreelancer); err != nil {
		t.Fatalf("Create: %v", err)
	}

	name := "Anna"
	skills := []string{"go"}
	if _, err := svc.Update(ctx, "u1", &models.UpdateProfileRequest{DisplayName: &name, Skills: &skills}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	location := "Bern"
	prof, err := svc.Update(ctx, "u1", &models.UpdateProfileRequest{Location: &location})
	if err != nil {
		t.Fatalf("second Update: %v", err)
	}

	// Earlier edits must survive a later partial update.
	if prof.DisplayName != "Anna" {
		t.Errorf("name = %q, want Anna", prof.DisplayName)
	}
	if len(prof.Skills) != 1 || prof.Skills[0] != "go" {
		t.Errorf("skills = %v, want [go]", prof.Skills)
	}
	if prof.Location != "Bern" {
		t.Errorf("location = %q, want Bern", prof.Location)
	}
	if prof.Email != "a@x.com" || prof.ProfileKind != models.KindFreelancer {
		t.Errorf("identity fields changed: %+v", prof)
	}
}

func TestProfileUpdateMissing(t *testing.T) {
	svc := NewProfileService(storage.NewMemoryStore())

	name := "Anna"
	if _, err := svc.Update(context.Background(), "ghost", &models.UpdateProfileRequest{DisplayName: &name}); err != ErrProfileNotFound {
		t.Errorf("Update err = %v, want ErrProfileNotFound", err)
	}
}

func TestProfileSetRole(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(storage.NewMemoryStore())

	if _, err := svc.Create(ctx, "u1", "a@x.com", models.KindCompany); err != nil {
		t.Fatalf("Create: %v", err)
	}

	prof, err := svc.SetRole(ctx, "u1", models.RoleAdmin)
	if err != nil {
		t.Fatalf("SetRole: %v", err)
	}
	if prof.Role != models.RoleAdmin {
		t.Errorf("role = %q, want admin", prof.Role)
	}

	if _, err := svc.SetRole(ctx, "u1", models.Role("owner")); err == nil {
		t.Error("invalid role accepted")
	}
}

func TestAccountDeleteRemovesProfileAndConnections(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	profiles := NewProfileService(store)
	connections := NewConnectionService(store)
	accounts := NewAccountService(profiles, connections, nil)

	for _, id := range []string{"alice", "bob", "carol"} {
		if _, err := profiles.Create(ctx, id, id+"@x.com", models.KindFreelancer); err != nil {
			t.Fatalf("Create %s: %v", id, err)
		}
	}
	if _, err := connections.Request(ctx, "alice", "bob"); err != nil {
		t.Fatalf("Request: %v", err)
	}
	if _, err := connections.Request(ctx, "carol", "alice"); err != nil {
		t.Fatalf("Request: %v", err)
	}

	result, err := accounts.DeleteAccount(ctx, "alice")
	if err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if result.ConnectionsRemoved != 2 {
		t.Errorf("connections removed = %d, want 2", result.ConnectionsRemoved)
	}

	if _, err := profiles.GetByUserID(ctx, "alice"); err != ErrProfileNotFound {
		t.Errorf("profile err = %v, want ErrProfileNotFound", err)
	}
	status, _ := connections.GetStatus(ctx, "bob", "alice")
	if status != models.StatusNone {
		t.Errorf("bob-alice status = %q, want none", status)
	}
	status, _ = connections.GetStatus(ctx, "carol", "alice")
	if status != models.StatusNone {
		t.Errorf("carol-alice status = %q, want none", status)
	}
}
