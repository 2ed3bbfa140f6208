package models

import "time"

// User ranks. A key's type may also assign a custom rank string.
const (
	RankOwner = "OWNER"
	RankAdmin = "ADMIN"
	RankVIP   = "VIP"
	RankUser  = "USER"
)

// User account statuses.
const (
	UserStatusActive = "ACTIVE"
	UserStatusBanned = "BANNED"
)

// HWIDReset is the sentinel hwid meaning "accept any device".
const HWIDReset = "RESET"

// NeverExpires is the sentinel expiry meaning a lifetime subscription.
const NeverExpires int64 = 9999999999999

// MaxRarityIDs caps the per-user rarity list; oldest entries are evicted
// first when the cap is exceeded.
const MaxRarityIDs = 100

// Stats holds additive usage counters synced from the client app.
type Stats struct {
	Generated int64  `json:"generated"`
	Success   int64  `json:"success"`
	Failed    int64  `json:"failed"`
	LastSync  string `json:"last_sync,omitempty"`
}

// RarityID is one synced rarity record, deduplicated by ID.
type RarityID struct {
	ID       string  `json:"id"`
	Score    float64 `json:"score"`
	SyncedAt string  `json:"synced_at,omitempty"`
}

type User struct {
	Username         string     `json:"username"`
	Password         string     `json:"password"`
	HWID             string     `json:"hwid"`
	Expiry           int64      `json:"expiry"`
	Rank             string     `json:"rank"`
	Status           string     `json:"status"`
	ActivatedAt      string     `json:"activated_at,omitempty"`
	ActivatedWithKey string     `json:"activated_with_key,omitempty"`
	Stats            *Stats     `json:"stats,omitempty"`
	RarityIDs        []RarityID `json:"rarity_ids,omitempty"`
}

// Banned reports whether the account is banned.
func (u *User) Banned() bool {
	return u.Status == UserStatusBanned
}

// Expired reports whether the subscription has lapsed at the given instant.
// The NeverExpires sentinel never lapses.
func (u *User) Expired(now time.Time) bool {
	return u.Expiry != NeverExpires && u.Expiry < now.Unix()
}

// AllowsDevice reports whether the given hardware id may use this account.
func (u *User) AllowsDevice(hwid string) bool {
	return u.HWID == HWIDReset || u.HWID == hwid
}

// MergeStats adds the delta counters to the user's stats and stamps the
// sync time. Stats are created on first sync.
func (u *User) MergeStats(delta Stats, syncedAt string) {
	if u.Stats == nil {
		u.Stats = &Stats{}
	}
	u.Stats.Generated += delta.Generated
	u.Stats.Success += delta.Success
	u.Stats.Failed += delta.Failed
	u.Stats.LastSync = syncedAt
}

// AddRarityIDs appends the given records, skipping ids already present, and
// trims the list to the MaxRarityIDs most recent entries.
func (u *User) AddRarityIDs(ids []RarityID, syncedAt string) {
	seen := make(map[string]struct{}, len(u.RarityIDs))
	for _, r := range u.RarityIDs {
		seen[r.ID] = struct{}{}
	}

	for _, r := range ids {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		u.RarityIDs = append(u.RarityIDs, RarityID{ID: r.ID, Score: r.Score, SyncedAt: syncedAt})
	}

	if len(u.RarityIDs) > MaxRarityIDs {
		u.RarityIDs = u.RarityIDs[len(u.RarityIDs)-MaxRarityIDs:]
	}
}
