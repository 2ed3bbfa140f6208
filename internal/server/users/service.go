// Package users contains account business logic: activation-key
// registration, hardware-locked login, and usage-stat syncing.
package users

import (
	"context"
	"fmt"
	"time"

	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/common"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/logging"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/auth"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/config"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/models"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/state"
)

type Service struct {
	repo          state.Repository
	logger        logging.Logger
	jwtSecret     []byte
	tokenValidity time.Duration
	bcryptCost    int
}

func NewService(repo state.Repository, cfg *config.Config, logger logging.Logger) *Service {
	return &Service{
		repo:          repo,
		logger:        logger.With("module", "users"),
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.AccessTokenValidityDuration,
		bcryptCost:    cfg.BcryptCost,
	}
}

// RegisterResult reports the created account plus the key traits the client
// needs to know about.
type RegisterResult struct {
	User            *models.User
	IsUniversalHWID bool
	IsReusable      bool
}

// Register redeems an activation key into a new account. The whole
// read-modify-write cycle runs under the state layer's conflict retry.
func (s *Service) Register(ctx context.Context, username, password, key, hwid string) (*RegisterResult, error) {
	var result *RegisterResult

	_, err := state.Update(ctx, s.repo, fmt.Sprintf("User %s registered", username), func(doc *models.Document) (*models.Document, error) {
		if doc == nil {
			return nil, common.ErrorUninitialized
		}

		keyObj := doc.FindKey(key)
		if keyObj == nil {
			return nil, common.ErrorNotFound
		}
		if err := keyObj.Redeemable(); err != nil {
			return nil, err
		}
		if doc.FindUser(username) != nil {
			return nil, common.ErrorUserExists
		}

		hash, err := auth.HashPassword(password, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}

		finalHWID := hwid
		if keyObj.UniversalHWID {
			finalHWID = models.HWIDReset
		}

		now := models.Timestamp()
		user := &models.User{
			Username:         username,
			Password:         hash,
			HWID:             finalHWID,
			Expiry:           models.CalculateExpiry(keyObj.DurationDays),
			Rank:             keyObj.Rank(),
			Status:           models.UserStatusActive,
			ActivatedAt:      now,
			ActivatedWithKey: key,
		}
		doc.Users = append(doc.Users, user)
		keyObj.Redeem(username, now)

		result = &RegisterResult{
			User:            user,
			IsUniversalHWID: keyObj.UniversalHWID,
			IsReusable:      keyObj.Reusable,
		}
		return doc, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "account activated", "username", username, "rank", result.User.Rank)
	return result, nil
}

// LoginResult carries the authenticated account and its access token.
type LoginResult struct {
	User        *models.User
	AccessToken string
}

// Login checks credentials, device lock, ban status, and expiry, and mints
// an access token on success.
func (s *Service) Login(ctx context.Context, username, password, hwid string) (*LoginResult, error) {
	doc, _, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, common.ErrorUninitialized
	}

	user := doc.FindUser(username)
	if user == nil {
		return nil, common.ErrorNotFound
	}
	if !auth.CheckPassword(user.Password, password) {
		return nil, common.ErrorUnauthorized
	}
	if user.Banned() {
		return nil, common.ErrorBanned
	}
	if !user.AllowsDevice(hwid) {
		return nil, common.ErrorHWIDMismatch
	}
	if user.Expired(time.Now()) {
		return nil, common.ErrorExpired
	}

	token, err := auth.GenerateToken(user.Username, user.Rank, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "login", "username", username)
	return &LoginResult{User: user, AccessToken: token}, nil
}

// SyncStats merges the client's usage counters and rarity records into the
// account. Counters are additive; rarity records are deduplicated by id and
// bounded. Returns the stats after the merge.
func (s *Service) SyncStats(ctx context.Context, username, hwid string, delta *models.Stats, rarityIDs []models.RarityID) (*models.Stats, error) {
	var synced *models.Stats

	_, err := state.Update(ctx, s.repo, fmt.Sprintf("[SYNC] Stats: %s", username), func(doc *models.Document) (*models.Document, error) {
		if doc == nil {
			return nil, common.ErrorUninitialized
		}

		user := doc.FindUser(username)
		if user == nil {
			return nil, common.ErrorNotFound
		}
		if !user.AllowsDevice(hwid) {
			return nil, common.ErrorHWIDMismatch
		}

		now := models.Timestamp()
		if delta != nil {
			user.MergeStats(*delta, now)
		}
		if len(rarityIDs) > 0 {
			user.AddRarityIDs(rarityIDs, now)
		}

		synced = user.Stats
		return doc, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "stats synced", "username", username)
	return synced, nil
}
