package models

import "testing"

func TestRegisterRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantKey string
	}{
		{"valid freelancer", RegisterRequest{Email: "a@x.com", Password: "secret1", ProfileType: KindFreelancer}, ""},
		{"valid company", RegisterRequest{Email: "b@x.com", Password: "secret1", ProfileType: KindCompany}, ""},
		{"missing email", RegisterRequest{Password: "secret1", ProfileType: KindCompany}, "email"},
		{"bad email", RegisterRequest{Email: "not-an-email", Password: "secret1", ProfileType: KindCompany}, "email"},
		{"short password", RegisterRequest{Email: "a@x.com", Password: "abc", ProfileType: KindCompany}, "password"},
		{"bad profile type", RegisterRequest{Email: "a@x.com", Password: "secret1", ProfileType: "agency"}, "profileType"},
		{"missing profile type", RegisterRequest{Email: "a@x.com", Password: "secret1"}, "profileType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.Validate()
			if tt.wantKey == "" {
				if len(errs) != 0 {
					t.Errorf("Validate() = %v, want no errors", errs)
				}
				return
			}
			if _, ok := errs[tt.wantKey]; !ok {
				t.Errorf("Validate() = %v, want error for %q", errs, tt.wantKey)
			}
		})
	}
}

func TestProfileKindValid(t *testing.T) {
	if !KindCompany.Valid() || !KindFreelancer.Valid() {
		t.Error("built-in kinds must be valid")
	}
	if ProfileKind("agency").Valid() || ProfileKind("").Valid() {
		t.Error("unknown kinds must be invalid")
	}
}
