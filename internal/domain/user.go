package domain

import "time"

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsElevated reports whether the user holds an administrator or domain
// manager role.
func (u *User) IsElevated() bool {
	if u == nil {
		return false
	}
	return u.Role == RoleAdministrator || u.Role == RoleDomainManager
}

type SegmentFunction struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
