package services

import (
	"context"
	"testing"

	"github.com/bizlink/backend/internal/models"
	"github.com/bizlink/backend/internal/storage"
)

type networkFixture struct {
	profiles    *ProfileService
	connections *ConnectionService
	network     *NetworkService
}

func newNetworkFixture() *networkFixture {
	store := storage.NewMemoryStore()
	profiles := NewProfileService(store)
	connections := NewConnectionService(store)
	return &networkFixture{
		profiles:    profiles,
		connections: connections,
		network:     NewNetworkService(profiles, connections),
	}
}

func (f *networkFixture) mustCreate(t *testing.T, id, email string, kind models.ProfileKind) {
	t.Helper()
	if _, err := f.profiles.Create(context.Background(), id, email, kind); err != nil {
		t.Fatalf("create profile %s: %v", id, err)
	}
}

func statusByID(members []models.NetworkMember) map[string]models.ConnectionStatus {
	out := make(map[string]models.ConnectionStatus, len(members))
	for _, m := range members {
		out[m.ID] = m.ConnectionStatus
	}
	return out
}

func TestListMembersExcludesCaller(t *testing.T) {
	ctx := context.Background()
	f := newNetworkFixture()
	f.mustCreate(t, "alice", "alice@x.com", models.KindFreelancer)
	f.mustCreate(t, "bob", "bob@x.com", models.KindCompany)

	members, err := f.network.ListMembers(ctx, "alice")
	if err != nil {
		t.Fatalf("ListMembers: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("len(members) = %d, want 1", len(members))
	}
	if members[0].ID != "bob" {
		t.Errorf("member = %s, want bob", members[0].ID)
	}
	if members[0].ConnectionStatus != models.StatusNone {
		t.Errorf("status = %q, want none", members[0].ConnectionStatus)
	}
}

func TestListMembersDecoratesStatusBothDirections(t *testing.T) {
	ctx := context.Background()
	f := newNetworkFixture()
	f.mustCreate(t, "alice", "alice@x.com", models.KindFreelancer)
	f.mustCreate(t, "bob", "bob@x.com", models.KindCompany)
	f.mustCreate(t, "carol", "carol@x.com", models.KindFreelancer)

	// alice sent one request, carol sent one to alice.
	if _, err := f.connections.Request(ctx, "alice", "bob"); err != nil {
		t.Fatalf("Request: %v", err)
	}
	if _, err := f.connections.Request(ctx, "carol", "alice"); err != nil {
		t.Fatalf("Request: %v", err)
	}

	members, err := f.network.ListMembers(ctx, "alice")
	if err != nil {
		t.Fatalf("ListMembers: %v", err)
	}
	byID := statusByID(members)
	if byID["bob"] != models.StatusPending {
		t.Errorf("bob status = %q, want pending", byID["bob"])
	}
	if byID["carol"] != models.StatusPending {
		t.Errorf("carol status = %q, want pending", byID["carol"])
	}
}

// Register two profiles, request, accept, list, remove, list again: the full
// lifecycle as the directory sees it.
func TestDirectoryLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newNetworkFixture()
	f.mustCreate(t, "alice", "alice@x.com", models.KindFreelancer)
	f.mustCreate(t, "bob", "bob@x.com", models.KindCompany)

	if _, err := f.connections.Request(ctx, "alice", "bob"); err != nil {
		t.Fatalf("Request: %v", err)
	}
	if _, err := f.connections.Accept(ctx, "alice", "bob"); err != nil {
		t.Fatalf("Accept: %v", err)
	}

	members, err := f.network.ListMembers(ctx, "alice")
	if err != nil {
		t.Fatalf("ListMembers: %v", err)
	}
	if got := statusByID(members)["bob"]; got != models.StatusConnected {
		t.Errorf("bob status after accept = %q, want connected", got)
	}

	if err := f.connections.Remove(ctx, "alice", "bob"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	members, err = f.network.ListMembers(ctx, "alice")
	if err != nil {
		t.Fatalf("ListMembers after remove: %v", err)
	}
	if got := statusByID(members)["bob"]; got != models.StatusNone {
		t.Errorf("bob status after remove = %q, want none", got)
	}
}

func TestListMembersFiltered(t *testing.T) {
	ctx := context.Background()
	f := newNetworkFixture()
	f.mustCreate(t, "caller", "caller@x.com", models.KindFreelancer)
	f.mustCreate(t, "f1", "a@x.com", models.KindFreelancer)
	f.mustCreate(t, "c1", "b@x.com", models.KindCompany)

	members, err := f.network.ListMembersFiltered(ctx, "caller", Filters{ProfileKind: "company"})
	if err != nil {
		t.Fatalf("ListMembersFiltered: %v", err)
	}
	if len(members) != 1 || members[0].ID != "c1" {
		t.Fatalf("filtered members = %v, want [c1]", statusByID(members))
	}
}

func TestGetMemberDecorated(t *testing.T) {
	ctx := context.Background()
	f := newNetworkFixture()
	f.mustCreate(t, "alice", "alice@x.com", models.KindFreelancer)
	f.mustCreate(t, "bob", "bob@x.com", models.KindCompany)

	if _, err := f.connections.Request(ctx, "bob", "alice"); err != nil {
		t.Fatalf("Request: %v", err)
	}

	member, err := f.network.GetMember(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("GetMember: %v", err)
	}
	if member.ConnectionStatus != models.StatusPending {
		t.Errorf("status = %q, want pending", member.ConnectionStatus)
	}

	if _, err := f.network.GetMember(ctx, "alice", "ghost"); err != ErrProfileNotFound {
		t.Errorf("missing member err = %v, want ErrProfileNotFound", err)
	}
}
