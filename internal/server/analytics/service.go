// Package analytics builds read-only admin projections over the state
// document: dashboard analytics and a system status summary.
package analytics

import (
	"context"
	"math"
	"sort"

	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/common"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/logging"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/models"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/state"
)

const topUserLimit = 10

type Service struct {
	repo   state.Repository
	logger logging.Logger
}

func NewService(repo state.Repository, logger logging.Logger) *Service {
	return &Service{repo: repo, logger: logger.With("module", "analytics")}
}

// Overview aggregates document-wide totals.
type Overview struct {
	TotalUsers     int   `json:"totalUsers"`
	TotalKeys      int   `json:"totalKeys"`
	ActiveKeys     int   `json:"activeKeys"`
	UsedKeys       int   `json:"usedKeys"`
	BannedKeys     int   `json:"bannedKeys"`
	TotalGenerated int64 `json:"totalGenerated"`
	TotalSuccess   int64 `json:"totalSuccess"`
	TotalFailed    int64 `json:"totalFailed"`
}

// TopUser is one row of the by-generation leaderboard.
type TopUser struct {
	Username  string `json:"username"`
	Rank      string `json:"rank"`
	Generated int64  `json:"generated"`
	Success   int64  `json:"success"`
	Failed    int64  `json:"failed"`
}

// RarityBucket counts synced rarity records in one score band.
type RarityBucket struct {
	Rarity string `json:"rarity"`
	Count  int    `json:"count"`
	Color  string `json:"color"`
}

// Report is the full analytics payload for the admin dashboard.
type Report struct {
	Overview         Overview       `json:"overview"`
	TopUsers         []TopUser      `json:"topUsers"`
	RarityStats      []RarityBucket `json:"rarityStats"`
	RankDistribution map[string]int `json:"rankDistribution"`
}

// Analytics computes the dashboard report from the current document.
func (s *Service) Analytics(ctx context.Context) (*Report, error) {
	doc, _, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, common.ErrorUninitialized
	}

	report := &Report{
		TopUsers:         []TopUser{},
		RankDistribution: map[string]int{},
	}

	report.Overview.TotalUsers = len(doc.Users)
	report.Overview.TotalKeys = len(doc.Keys)
	for _, k := range doc.Keys {
		switch k.Status {
		case models.KeyStatusUnused:
			report.Overview.ActiveKeys++
		case models.KeyStatusUsed:
			report.Overview.UsedKeys++
		case models.KeyStatusBanned:
			report.Overview.BannedKeys++
		}
	}

	// score -> record count, clamped to [0, 10]
	scoreCounts := map[int]int{}
	for _, u := range doc.Users {
		report.RankDistribution[u.Rank]++
		if u.Stats != nil {
			report.Overview.TotalGenerated += u.Stats.Generated
			report.Overview.TotalSuccess += u.Stats.Success
			report.Overview.TotalFailed += u.Stats.Failed
			if u.Stats.Generated > 0 {
				report.TopUsers = append(report.TopUsers, TopUser{
					Username:  u.Username,
					Rank:      u.Rank,
					Generated: u.Stats.Generated,
					Success:   u.Stats.Success,
					Failed:    u.Stats.Failed,
				})
			}
		}
		for _, r := range u.RarityIDs {
			score := int(math.Floor(r.Score))
			if score > 10 {
				score = 10
			}
			if score < 0 {
				score = 0
			}
			scoreCounts[score]++
		}
	}

	sort.SliceStable(report.TopUsers, func(i, j int) bool {
		return report.TopUsers[i].Generated > report.TopUsers[j].Generated
	})
	if len(report.TopUsers) > topUserLimit {
		report.TopUsers = report.TopUsers[:topUserLimit]
	}

	report.RarityStats = []RarityBucket{
		{Rarity: "Common (0-2)", Count: scoreCounts[0] + scoreCounts[1] + scoreCounts[2], Color: "#64748b"},
		{Rarity: "Rare (3-5)", Count: scoreCounts[3] + scoreCounts[4] + scoreCounts[5], Color: "#3b82f6"},
		{Rarity: "Epic (6-8)", Count: scoreCounts[6] + scoreCounts[7] + scoreCounts[8], Color: "#a855f7"},
		{Rarity: "Legendary (9+)", Count: scoreCounts[9] + scoreCounts[10], Color: "#f59e0b"},
	}

	return report, nil
}

// UserStats breaks users down by status and rank.
type UserStats struct {
	Total  int            `json:"total"`
	Active int            `json:"active"`
	Banned int            `json:"banned"`
	ByRank map[string]int `json:"by_rank"`
}

// KeyStats breaks keys down by status and flags.
type KeyStats struct {
	Total     int `json:"total"`
	Unused    int `json:"unused"`
	Used      int `json:"used"`
	Banned    int `json:"banned"`
	Universal int `json:"universal"`
	Reusable  int `json:"reusable"`
}

// BroadcastStats counts stored and active broadcasts.
type BroadcastStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// StatusReport is the system status summary.
type StatusReport struct {
	Users      UserStats      `json:"users"`
	Keys       KeyStats       `json:"keys"`
	Broadcasts BroadcastStats `json:"broadcasts"`
}

// Status computes the status summary from the current document.
func (s *Service) Status(ctx context.Context) (*StatusReport, error) {
	doc, _, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, common.ErrorUninitialized
	}

	report := &StatusReport{
		Users: UserStats{ByRank: map[string]int{
			models.RankOwner: 0,
			models.RankAdmin: 0,
			models.RankVIP:   0,
			models.RankUser:  0,
		}},
	}

	report.Users.Total = len(doc.Users)
	for _, u := range doc.Users {
		switch u.Status {
		case models.UserStatusActive:
			report.Users.Active++
		case models.UserStatusBanned:
			report.Users.Banned++
		}
		if _, ok := report.Users.ByRank[u.Rank]; ok {
			report.Users.ByRank[u.Rank]++
		}
	}

	report.Keys.Total = len(doc.Keys)
	for _, k := range doc.Keys {
		switch k.Status {
		case models.KeyStatusUnused:
			report.Keys.Unused++
		case models.KeyStatusUsed:
			report.Keys.Used++
		case models.KeyStatusBanned:
			report.Keys.Banned++
		}
		if k.UniversalHWID {
			report.Keys.Universal++
		}
		if k.Reusable {
			report.Keys.Reusable++
		}
	}

	report.Broadcasts.Total = len(doc.Broadcasts)
	for _, b := range doc.Broadcasts {
		if b.IsActive() {
			report.Broadcasts.Active++
		}
	}

	return report, nil
}
