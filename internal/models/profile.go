package models

import "time"

// ProfileKind distinguishes the two member types. Fixed at registration.
type ProfileKind string

const (
	KindCompany    ProfileKind = "company"
	KindFreelancer ProfileKind = "freelancer"
)

func (k ProfileKind) Valid() bool {
	return k == KindCompany || k == KindFreelancer
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Profile is the member document stored in the users collection, keyed by the
// auth provider's UID. Attribute fields are blank by default; which ones are
// meaningful depends on ProfileKind.
type Profile struct {
	ID          string      `json:"id" bson:"_id"`
	Email       string      `json:"email" bson:"email"`
	ProfileKind ProfileKind `json:"profileType" bson:"profile_type"`
	Role        Role        `json:"role" bson:"role"`
	Location    string      `json:"location,omitempty" bson:"location,omitempty"`

	// Freelancer attributes.
	DisplayName string   `json:"name,omitempty" bson:"display_name,omitempty"`
	Title       string   `json:"title,omitempty" bson:"title,omitempty"`
	Skills      []string `json:"skills,omitempty" bson:"skills,omitempty"`
	Experience  string   `json:"experience,omitempty" bson:"experience,omitempty"`
	Education   string   `json:"education,omitempty" bson:"education,omitempty"`
	Portfolio   string   `json:"portfolio,omitempty" bson:"portfolio,omitempty"`

	// Company attributes.
	CompanyName     string `json:"companyName,omitempty" bson:"company_name,omitempty"`
	Industry        string `json:"industry,omitempty" bson:"industry,omitempty"`
	CompanySize     string `json:"companySize,omitempty" bson:"company_size,omitempty"`
	YearEstablished string `json:"yearEstablished,omitempty" bson:"year_established,omitempty"`
	Website         string `json:"website,omitempty" bson:"website,omitempty"`
	Services        string `json:"services,omitempty" bson:"services,omitempty"`
	Products        string `json:"products,omitempty" bson:"products,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// UpdateProfileRequest is a partial update; nil fields are left untouched.
// Email, profile kind and role are not editable through this request.
type UpdateProfileRequest struct {
	Location *string `json:"location"`

	DisplayName *string   `json:"name"`
	Title       *string   `json:"title"`
	Skills      *[]string `json:"skills"`
	Experience  *string   `json:"experience"`
	Education   *string   `json:"education"`
	Portfolio   *string   `json:"portfolio"`

	CompanyName     *string `json:"companyName"`
	Industry        *string `json:"industry"`
	CompanySize     *string `json:"companySize"`
	YearEstablished *string `json:"yearEstablished"`
	Website         *string `json:"website"`
	Services        *string `json:"services"`
	Products        *string `json:"products"`
}

// NetworkMember is a profile decorated with the caller's relationship status.
type NetworkMember struct {
	Profile
	ConnectionStatus ConnectionStatus `json:"connectionStatus"`
}
