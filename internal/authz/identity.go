package authz

import "Club_Portal/internal/model"

// Identity is the resolved caller of a request. The zero value is anonymous.
type Identity struct {
	ID     string
	Role   model.Role
	Active bool
}

func Anonymous() Identity {
	return Identity{}
}

func (i Identity) IsAnonymous() bool {
	return i.ID == ""
}

func (i Identity) HasRole(roles ...model.Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// ActualRole names the role for error reporting; anonymous callers report "anonymous".
func (i Identity) ActualRole() string {
	if i.IsAnonymous() {
		return "anonymous"
	}
	return string(i.Role)
}
