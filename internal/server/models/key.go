package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/common"
)

// Activation key statuses.
const (
	KeyStatusUnused = "UNUSED"
	KeyStatusUsed   = "USED"
	KeyStatusBanned = "BANNED"
)

// lifetimeLiteral is the stored representation of a never-expiring duration.
const lifetimeLiteral = "LIFETIME"

// KeyDuration is the value of a key's duration_days field: either an integer
// number of days or the literal string "LIFETIME". Numeric strings such as
// "30" are accepted on decode for compatibility with hand-edited documents;
// anything else is rejected with common.ErrorInvalidDuration.
type KeyDuration struct {
	Days     int64
	Lifetime bool
}

// LifetimeDuration returns the never-expiring duration.
func LifetimeDuration() KeyDuration {
	return KeyDuration{Lifetime: true}
}

// DurationDays returns a duration of the given number of days.
func DurationDays(days int64) KeyDuration {
	return KeyDuration{Days: days}
}

func (d KeyDuration) MarshalJSON() ([]byte, error) {
	if d.Lifetime {
		return json.Marshal(lifetimeLiteral)
	}
	return json.Marshal(d.Days)
}

func (d *KeyDuration) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*d = KeyDuration{Days: n}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", common.ErrorInvalidDuration, string(data))
	}
	if strings.EqualFold(strings.TrimSpace(s), lifetimeLiteral) {
		*d = KeyDuration{Lifetime: true}
		return nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %q", common.ErrorInvalidDuration, s)
	}
	*d = KeyDuration{Days: n}
	return nil
}

func (d KeyDuration) String() string {
	if d.Lifetime {
		return lifetimeLiteral
	}
	return strconv.FormatInt(d.Days, 10)
}

// KeyUsage records one redemption of a reusable key.
type KeyUsage struct {
	Username    string `json:"username"`
	ActivatedAt string `json:"activated_at"`
}

type Key struct {
	Key           string      `json:"key"`
	Status        string      `json:"status"`
	DurationDays  KeyDuration `json:"duration_days"`
	Type          string      `json:"type,omitempty"`
	Reusable      bool        `json:"reusable,omitempty"`
	UniversalHWID bool        `json:"universal_hwid,omitempty"`
	UsedBy        string      `json:"used_by,omitempty"`
	UsedAt        string      `json:"used_at,omitempty"`
	UsageCount    int64       `json:"usage_count,omitempty"`
	UsedByList    []KeyUsage  `json:"used_by_list,omitempty"`
}

// Rank returns the rank this key assigns on redemption.
func (k *Key) Rank() string {
	if k.Type != "" {
		return k.Type
	}
	return RankUser
}

// Redeemable reports whether the key can currently activate an account:
// banned keys never can, non-reusable keys only while still UNUSED.
func (k *Key) Redeemable() error {
	if k.Status == KeyStatusBanned {
		return common.ErrorKeyBanned
	}
	if !k.Reusable && k.Status != KeyStatusUnused {
		return common.ErrorKeyUsed
	}
	return nil
}

// Redeem marks the key as used by the given account. A non-reusable key
// transitions UNUSED -> USED exactly once; a reusable key instead accumulates
// a usage count and a usage list.
func (k *Key) Redeem(username, activatedAt string) {
	if k.Reusable {
		k.UsageCount++
		k.UsedByList = append(k.UsedByList, KeyUsage{Username: username, ActivatedAt: activatedAt})
		return
	}
	k.Status = KeyStatusUsed
	k.UsedBy = username
	k.UsedAt = activatedAt
}
