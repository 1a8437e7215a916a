package services

import (
	"context"
	"errors"
	"time"

	"github.com/bizlink/backend/internal/models"
	"github.com/bizlink/backend/internal/storage"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileService owns the member documents in the users collection, keyed by
// the auth provider's UID.
type ProfileService struct {
	store storage.DocumentStore
}

func NewProfileService(store storage.DocumentStore) *ProfileService {
	return &ProfileService{store: store}
}

// Create writes the blank profile for a freshly registered account. If a
// registration race already created it, the existing document wins.
func (s *ProfileService) Create(ctx context.Context, userID, email string, kind models.ProfileKind) (*models.Profile, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	// Millisecond precision matches what bson stores, so the returned
	// document compares equal to a later read of the same record.
	now := time.Now().UTC().Truncate(time.Millisecond)
	prof := &models.Profile{
		ID:          userID,
		Email:       email,
		ProfileKind: kind,
		Role:        models.RoleUser,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if kind == models.KindFreelancer {
		prof.Skills = []string{}
	}

	err := s.store.Put(ctx, storage.UsersCollection, userID, prof, false)
	if err == storage.ErrDuplicateKey {
		var existing models.Profile
		if err2 := s.store.Get(ctx, storage.UsersCollection, userID, &existing); err2 == nil {
			return &existing, nil
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return prof, nil
}

func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	var prof models.Profile
	if err := s.store.Get(ctx, storage.UsersCollection, userID, &prof); err != nil {
		if err == storage.ErrNotFound {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &prof, nil
}

// Update applies a partial edit. Only non-nil request fields are written;
// updated_at is stamped on every mutation.
func (s *ProfileService) Update(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.Profile, error) {
	if _, err := s.GetByUserID(ctx, userID); err != nil {
		return nil, err
	}

	set := map[string]interface{}{
		"updated_at": time.Now().UTC().Truncate(time.Millisecond),
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}
	if req.DisplayName != nil {
		set["display_name"] = *req.DisplayName
	}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Skills != nil {
		set["skills"] = *req.Skills
	}
	if req.Experience != nil {
		set["experience"] = *req.Experience
	}
	if req.Education != nil {
		set["education"] = *req.Education
	}
	if req.Portfolio != nil {
		set["portfolio"] = *req.Portfolio
	}
	if req.CompanyName != nil {
		set["company_name"] = *req.CompanyName
	}
	if req.Industry != nil {
		set["industry"] = *req.Industry
	}
	if req.CompanySize != nil {
		set["company_size"] = *req.CompanySize
	}
	if req.YearEstablished != nil {
		set["year_established"] = *req.YearEstablished
	}
	if req.Website != nil {
		set["website"] = *req.Website
	}
	if req.Services != nil {
		set["services"] = *req.Services
	}
	if req.Products != nil {
		set["products"] = *req.Products
	}

	if err := s.store.Put(ctx, storage.UsersCollection, userID, set, true); err != nil {
		return nil, err
	}
	return s.GetByUserID(ctx, userID)
}

// ListAllExcept returns every profile except the caller's own.
func (s *ProfileService) ListAllExcept(ctx context.Context, callerID string) ([]models.Profile, error) {
	var all []models.Profile
	if err := s.store.ListAll(ctx, storage.UsersCollection, &all); err != nil {
		return nil, err
	}

	out := make([]models.Profile, 0, len(all))
	for _, p := range all {
		if p.ID == callerID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *ProfileService) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrMissingUserID
	}
	return s.store.Delete(ctx, storage.UsersCollection, userID)
}

// SetRole grants or revokes the admin role.
func (s *ProfileService) SetRole(ctx context.Context, userID string, role models.Role) (*models.Profile, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, errors.New("invalid role")
	}
	if _, err := s.GetByUserID(ctx, userID); err != nil {
		return nil, err
	}

	set := map[string]interface{}{
		"role":       role,
		"updated_at": time.Now().UTC().Truncate(time.Millisecond),
	}
	if err := s.store.Put(ctx, storage.UsersCollection, userID, set, true); err != nil {
		return nil, err
	}
	return s.GetByUserID(ctx, userID)
}
