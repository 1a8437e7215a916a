package services

import (
	"strings"

	"github.com/bizlink/backend/internal/models"
)

// Filters is the directory filter criteria. Zero values match everything;
// ProfileKind "all" (or empty) matches both kinds.
type Filters struct {
	Search      string
	ProfileKind string
	Location    string
}

// Matches reports whether a decorated member passes all three sub-filters.
// Pure and total: absent optional fields simply don't match.
func (f Filters) Matches(m *models.NetworkMember) bool {
	if f.ProfileKind != "" && f.ProfileKind != "all" && string(m.ProfileKind) != f.ProfileKind {
		return false
	}

	if f.Location != "" {
		if m.Location == "" || !containsFold(m.Location, f.Location) {
			return false
		}
	}

	if f.Search != "" {
		matched := containsFold(m.Email, f.Search)
		if !matched {
			switch m.ProfileKind {
			case models.KindCompany:
				matched = containsFold(m.CompanyName, f.Search) || containsFold(m.Industry, f.Search)
			case models.KindFreelancer:
				matched = containsFold(m.DisplayName, f.Search)
				for _, skill := range m.Skills {
					if matched {
						break
					}
					matched = containsFold(skill, f.Search)
				}
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
