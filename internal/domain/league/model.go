package league

import (
	"fmt"
	"strings"
)

const (
	InviteCodeLength = 6
	DefaultName      = "Premier Scholars"
	JoinedLeagueID   = "league-joined"
	JoinedLeagueName = "Active League"
)

// League groups members under an immutable invite code.
type League struct {
	ID         string
	Name       string
	InviteCode string
	Members    []string
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.InviteCode == "" {
		return fmt.Errorf("league invite code is required")
	}

	return nil
}

// NormalizeInviteCode upper-cases a typed code and keeps at most six characters.
func NormalizeInviteCode(raw string) string {
	code := []rune(strings.ToUpper(strings.TrimSpace(raw)))
	if len(code) > InviteCodeLength {
		code = code[:InviteCodeLength]
	}
	return string(code)
}

// NameOrDefault falls back to DefaultName for blank names.
func NameOrDefault(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	return name
}
