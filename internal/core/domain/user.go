package domain

// Role is the marketplace role a user acts under.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleSeller Role = "Seller"
	RoleBuyer  Role = "Buyer"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleAdmin, RoleSeller, RoleBuyer}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSeller, RoleBuyer:
		return true
	}
	return false
}

// User models a marketplace participant.
//
// Rate is only meaningful for sellers; it stays nil for other roles unless a
// profile update sets it explicitly.
type User struct {
	ID        string   `json:"id" bson:"_id"`
	Username  string   `json:"username" bson:"username"`
	Role      Role     `json:"role" bson:"role"`
	Password  string   `json:"-" bson:"password"`
	AvatarURL string   `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	Location  string   `json:"location,omitempty" bson:"location,omitempty"`
	Rate      *float64 `json:"rate,omitempty" bson:"rate,omitempty"`
}

// Clone returns a deep copy so callers never share the Rate pointer.
func (u User) Clone() User {
	if u.Rate != nil {
		rate := *u.Rate
		u.Rate = &rate
	}
	return u
}

// ProfileUpdate lists the user fields a profile edit may change.
// A nil field is left untouched.
type ProfileUpdate struct {
	AvatarURL *string
	Location  *string
	Rate      *float64
}

// Apply merges the set fields of p into u.
func (p ProfileUpdate) Apply(u *User) {
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.Rate != nil {
		rate := *p.Rate
		u.Rate = &rate
	}
}
