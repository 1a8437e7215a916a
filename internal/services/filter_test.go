package services

import (
	"testing"

	"github.com/bizlink/backend/internal/models"
)

func testMembers() []models.NetworkMember {
	return []models.NetworkMember{
		{
			Profile: models.Profile{
				ID:          "f1",
				Email:       "a@x.com",
				ProfileKind: models.KindFreelancer,
				DisplayName: "Anna",
				Skills:      []string{"go", "sql"},
			},
			ConnectionStatus: models.StatusNone,
		},
		{
			Profile: models.Profile{
				ID:          "c1",
				Email:       "b@x.com",
				ProfileKind: models.KindCompany,
				CompanyName: "Acme",
				Industry:    "Logistics",
			},
			ConnectionStatus: models.StatusNone,
		},
	}
}

func applyFilters(members []models.NetworkMember, f Filters) []string {
	var ids []string
	for i := range members {
		if f.Matches(&members[i]) {
			ids = append(ids, members[i].ID)
		}
	}
	return ids
}

func TestFiltersMatches(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{"empty matches all", Filters{}, []string{"f1", "c1"}},
		{"all kind matches all", Filters{ProfileKind: "all"}, []string{"f1", "c1"}},
		{"search skill", Filters{Search: "go"}, []string{"f1"}},
		{"search company name", Filters{Search: "acme"}, []string{"c1"}},
		{"search industry", Filters{Search: "logistics"}, []string{"c1"}},
		{"search email matches any kind", Filters{Search: "b@x.com"}, []string{"c1"}},
		{"search display name", Filters{Search: "anna"}, []string{"f1"}},
		{"search no hit", Filters{Search: "rust"}, nil},
		{"kind company", Filters{ProfileKind: "company"}, []string{"c1"}},
		{"kind freelancer", Filters{ProfileKind: "freelancer"}, []string{"f1"}},
		{"location with no locations set", Filters{Location: "Bern"}, nil},
		{"combined kind and search", Filters{ProfileKind: "company", Search: "a@x.com"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyFilters(testMembers(), tt.filters)
			if len(got) != len(tt.want) {
				t.Fatalf("matched %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("matched %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFiltersLocationCaseInsensitiveSubstring(t *testing.T) {
	m := models.NetworkMember{
		Profile: models.Profile{
			ID:          "f2",
			Email:       "c@x.com",
			ProfileKind: models.KindFreelancer,
			Location:    "Bern, Schweiz",
		},
	}

	if !(Filters{Location: "bern"}).Matches(&m) {
		t.Error("lowercase substring should match location")
	}
	if (Filters{Location: "Zürich"}).Matches(&m) {
		t.Error("non-substring location should not match")
	}
}

func TestFiltersSearchIgnoresOtherKindFields(t *testing.T) {
	// A freelancer whose company-only fields happen to be set must not match
	// a company-field search term.
	m := models.NetworkMember{
		Profile: models.Profile{
			ID:          "f3",
			Email:       "d@x.com",
			ProfileKind: models.KindFreelancer,
			CompanyName: "Acme",
		},
	}

	if (Filters{Search: "acme"}).Matches(&m) {
		t.Error("freelancer should not match on company fields")
	}
}
