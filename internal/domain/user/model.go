package user

import "fmt"

type Role string

const (
	RoleManager Role = "MANAGER"
	RolePlayer  Role = "PLAYER"
)

// User is a league participant. TotalPoints only ever grows by awarded deltas.
type User struct {
	ID            string
	Name          string
	Email         string
	Avatar        string
	Role          Role
	TotalPoints   float64
	AcceptedRules bool
}

func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if u.Name == "" {
		return fmt.Errorf("user name is required")
	}
	switch u.Role {
	case RoleManager, RolePlayer:
	default:
		return fmt.Errorf("unknown user role %q", u.Role)
	}

	return nil
}

// IndexOf returns the position of the member with the given id, or -1.
func IndexOf(members []User, userID string) int {
	for i, m := range members {
		if m.ID == userID {
			return i
		}
	}
	return -1
}
