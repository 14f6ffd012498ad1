package models

// Profile is the signed-in identity as seen by the UI: identity-provider
// fields (ID, Email, DisplayName, PhotoURL) plus optional backend-supplied
// profile fields (Phone, Address, Bio).
type Profile struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoUrl,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

// ProfilePatch carries optional field updates from the backend. Nil fields
// are left untouched by MergeProfile. ID and Email are owned by the
// identity provider and cannot be patched.
type ProfilePatch struct {
	DisplayName *string `json:"displayName,omitempty"`
	PhotoURL    *string `json:"photoUrl,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	Bio         *string `json:"bio,omitempty"`
}

// MergeProfile applies patch on top of base and returns the result.
// It is total: any combination of base and patch yields a valid Profile.
func MergeProfile(base Profile, patch ProfilePatch) Profile {
	out := base
	if patch.DisplayName != nil {
		out.DisplayName = *patch.DisplayName
	}
	if patch.PhotoURL != nil {
		out.PhotoURL = *patch.PhotoURL
	}
	if patch.Phone != nil {
		out.Phone = *patch.Phone
	}
	if patch.Address != nil {
		out.Address = *patch.Address
	}
	if patch.Bio != nil {
		out.Bio = *patch.Bio
	}
	return out
}
