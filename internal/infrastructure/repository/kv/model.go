package kv

import (
	"time"

	"github.com/riskibarqy/the-gaffer/internal/domain/league"
	"github.com/riskibarqy/the-gaffer/internal/domain/solution"
	"github.com/riskibarqy/the-gaffer/internal/domain/user"
)

const (
	keyUser            = "gaffer_user"
	keyLeague          = "gaffer_league"
	keyMembers         = "gaffer_members"
	keySolutions       = "all_solutions"
	keyCompletedPrefix = "completed_"
)

func completedKey(userID string) string {
	return keyCompletedPrefix + userID
}

type userRecord struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email,omitempty"`
	Avatar        string  `json:"avatar,omitempty"`
	Role          string  `json:"role"`
	TotalPoints   float64 `json:"totalPoints"`
	AcceptedRules bool    `json:"acceptedRules,omitempty"`
}

type leagueRecord struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	InviteCode string   `json:"inviteCode"`
	Members    []string `json:"members"`
}

type solutionRecord struct {
	ID          string    `json:"id"`
	FixtureID   string    `json:"fixtureId"`
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName"`
	Timestamp   time.Time `json:"timestamp"`
	FileName    string    `json:"fileName"`
	FileContent string    `json:"fileContent"`
	Points      float64   `json:"points"`
}

func userToRecord(u user.User) userRecord {
	return userRecord{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Avatar:        u.Avatar,
		Role:          string(u.Role),
		TotalPoints:   u.TotalPoints,
		AcceptedRules: u.AcceptedRules,
	}
}

func (r userRecord) toDomain() user.User {
	return user.User{
		ID:            r.ID,
		Name:          r.Name,
		Email:         r.Email,
		Avatar:        r.Avatar,
		Role:          user.Role(r.Role),
		TotalPoints:   r.TotalPoints,
		AcceptedRules: r.AcceptedRules,
	}
}

func leagueToRecord(l league.League) leagueRecord {
	members := l.Members
	if members == nil {
		members = []string{}
	}
	return leagueRecord{
		ID:         l.ID,
		Name:       l.Name,
		InviteCode: l.InviteCode,
		Members:    members,
	}
}

func (r leagueRecord) toDomain() league.League {
	return league.League{
		ID:         r.ID,
		Name:       r.Name,
		InviteCode: r.InviteCode,
		Members:    append([]string(nil), r.Members...),
	}
}

func solutionToRecord(s solution.Solution) solutionRecord {
	return solutionRecord{
		ID:          s.ID,
		FixtureID:   s.FixtureID,
		UserID:      s.UserID,
		UserName:    s.UserName,
		Timestamp:   s.SubmittedAt,
		FileName:    s.FileName,
		FileContent: s.FileContent,
		Points:      s.Points,
	}
}

func (r solutionRecord) toDomain() solution.Solution {
	return solution.Solution{
		ID:          r.ID,
		FixtureID:   r.FixtureID,
		UserID:      r.UserID,
		UserName:    r.UserName,
		SubmittedAt: r.Timestamp,
		FileName:    r.FileName,
		FileContent: r.FileContent,
		Points:      r.Points,
	}
}
