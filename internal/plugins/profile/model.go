// Package profile exposes the one-to-one profile attached to every user:
// display name, login email, and a short bio. The profile exists implicitly
// from registration — it is a projection of the user row, updated in place
// and never deleted on its own.
package profile

// Profile is the profile view of a user.
type Profile struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Bio    string `json:"bio"`
}

// UpdateProfileRequest holds the data submitted to PUT /profile.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Bio   string `json:"bio"`
}
