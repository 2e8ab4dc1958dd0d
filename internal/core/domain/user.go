package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// UserProfile is the identity the backend returns at login. The dashboard never
// mutates it; it is cached next to the token for the lifetime of a session.
type UserProfile struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	FirstName string  `json:"first_name,omitempty"`
	LastName  string  `json:"last_name,omitempty"`
	Role      string  `json:"role,omitempty"`
	IsActive  bool    `json:"is_active"`
	IsAdmin   bool    `json:"is_admin"`
	Phone     string  `json:"phone,omitempty"`
	Picture   *string `json:"picture_url,omitempty"`
}

// EffectiveRole folds the is_admin flag into the role string.
func (p *UserProfile) EffectiveRole() string {
	if p == nil {
		return ""
	}
	if p.IsAdmin {
		return RoleAdmin
	}
	if p.Role == "" {
		return RoleStaff
	}
	return p.Role
}

// User is a customer or staff account managed from the users screen.
type User struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Phone       string     `json:"phone,omitempty"`
	Role        string     `json:"role,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
	IsAdmin     bool       `json:"is_admin"`
	Nationality string     `json:"nationality,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	DateJoined  *time.Time `json:"date_joined,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// Active treats a missing is_active flag as active, which is what the backend
// implies for accounts created before the flag existed.
func (u User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}

// Joined returns the best known registration time.
func (u User) Joined() time.Time {
	switch {
	case u.DateJoined != nil:
		return *u.DateJoined
	case u.CreatedAt != nil:
		return *u.CreatedAt
	default:
		return time.Time{}
	}
}
