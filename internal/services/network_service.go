package services

import (
	"context"
	"log"
	"sync"

	"github.com/bizlink/backend/internal/models"
)

// NetworkService assembles the member directory: every profile except the
// caller's, each decorated with the caller's relationship status.
type NetworkService struct {
	profiles    *ProfileService
	connections *ConnectionService
}

func NewNetworkService(profiles *ProfileService, connections *ConnectionService) *NetworkService {
	return &NetworkService{profiles: profiles, connections: connections}
}

// ListMembers decorates each candidate with GetStatus(caller, candidate). The
// per-candidate lookups run concurrently; a failed lookup degrades that
// candidate to StatusNone instead of failing the whole listing.
func (s *NetworkService) ListMembers(ctx context.Context, callerID string) ([]models.NetworkMember, error) {
	if callerID == "" {
		return nil, ErrMissingUserID
	}

	profs, err := s.profiles.ListAllExcept(ctx, callerID)
	if err != nil {
		return nil, err
	}

	members := make([]models.NetworkMember, len(profs))
	var wg sync.WaitGroup
	for i := range profs {
		members[i].Profile = profs[i]

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status, err := s.connections.GetStatus(ctx, callerID, profs[i].ID)
			if err != nil {
				log.Printf("[ListMembers] status lookup user=%s candidate=%s error=%v", callerID, profs[i].ID, err)
				status = models.StatusNone
			}
			members[i].ConnectionStatus = status
		}(i)
	}
	wg.Wait()

	return members, nil
}

// ListMembersFiltered applies the pure filter predicate to the decorated
// directory.
func (s *NetworkService) ListMembersFiltered(ctx context.Context, callerID string, f Filters) ([]models.NetworkMember, error) {
	members, err := s.ListMembers(ctx, callerID)
	if err != nil {
		return nil, err
	}

	out := make([]models.NetworkMember, 0, len(members))
	for i := range members {
		if f.Matches(&members[i]) {
			out = append(out, members[i])
		}
	}
	return out, nil
}

// GetMember returns a single decorated profile.
func (s *NetworkService) GetMember(ctx context.Context, callerID, memberID string) (*models.NetworkMember, error) {
	prof, err := s.profiles.GetByUserID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	status, err := s.connections.GetStatus(ctx, callerID, memberID)
	if err != nil {
		log.Printf("[GetMember] status lookup user=%s candidate=%s error=%v", callerID, memberID, err)
		status = models.StatusNone
	}
	return &models.NetworkMember{Profile: *prof, ConnectionStatus: status}, nil
}
