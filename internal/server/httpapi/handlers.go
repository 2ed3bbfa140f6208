package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/keys"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/models"
)

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/api" && r.URL.Path != "/api/" {
		writeFailure(w, http.StatusNotFound, "Not found")
		return
	}
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "ZEXXY Backend API - GitHub Database",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"status":     "/api/status",
			"register":   "/api/register (POST)",
			"login":      "/api/login (POST)",
			"sync_stats": "/api/sync-stats (POST)",
			"broadcasts": "/api/broadcasts (POST)",
			"analytics":  "/api/analytics",
		},
	})
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Key      string `json:"key"`
	HWID     string `json:"hwid"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" || req.Key == "" || req.HWID == "" {
		writeFailure(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	res, err := s.users.Register(r.Context(), req.Username, req.Password, req.Key, req.HWID)
	if err != nil {
		s.logger.Error(r.Context(), "register failed", "username", req.Username, "error", err.Error())
		writeServiceError(w, err, "Invalid key")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Account activated successfully",
		"user": map[string]any{
			"username": res.User.Username,
			"rank":     res.User.Rank,
			"expiry":   res.User.Expiry,
			"hwid":     res.User.HWID,
		},
		"is_universal_hwid": res.IsUniversalHWID,
		"is_reusable":       res.IsReusable,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	HWID     string `json:"hwid"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" || req.HWID == "" {
		writeFailure(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	res, err := s.users.Login(r.Context(), req.Username, req.Password, req.HWID)
	if err != nil {
		s.logger.Warn(r.Context(), "login failed", "username", req.Username, "error", err.Error())
		writeServiceError(w, err, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"message":      "Login successful",
		"access_token": res.AccessToken,
		"user": map[string]any{
			"username": res.User.Username,
			"rank":     res.User.Rank,
			"expiry":   res.User.Expiry,
			"status":   res.User.Status,
			"hwid":     res.User.HWID,
		},
	})
}

type syncStatsRequest struct {
	Username  string            `json:"username"`
	HWID      string            `json:"hwid"`
	Stats     *models.Stats     `json:"stats"`
	RarityIDs []models.RarityID `json:"rarity_ids"`
}

func (s *Server) handleSyncStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req syncStatsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Username == "" || req.HWID == "" {
		writeFailure(w, http.StatusBadRequest, "Missing required fields (username, hwid)")
		return
	}

	stats, err := s.users.SyncStats(r.Context(), req.Username, req.HWID, req.Stats, req.RarityIDs)
	if err != nil {
		s.logger.Error(r.Context(), "stats sync failed", "username", req.Username, "error", err.Error())
		writeServiceError(w, err, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Stats synced successfully",
		"stats":   stats,
	})
}

func (s *Server) handleBroadcasts(w http.ResponseWriter, r *http.Request) {
	var rank string
	switch r.Method {
	case http.MethodGet:
		rank = r.URL.Query().Get("rank")
	case http.MethodPost:
		var req struct {
			Rank string `json:"rank"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		rank = req.Rank
	default:
		writeMethodNotAllowed(w)
		return
	}

	list, err := s.broadcasts.List(r.Context(), rank)
	if err != nil {
		s.logger.Error(r.Context(), "broadcast listing failed", "error", err.Error())
		writeServiceError(w, err, "Not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"broadcasts": list,
		"count":      len(list),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	report, err := s.analytics.Status(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "status failed", "error", err.Error())
		writeServiceError(w, err, "Not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"stats":      report,
		"repository": s.repository,
		"timestamp":  models.Timestamp(),
	})
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	report, err := s.analytics.Analytics(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "analytics failed", "error", err.Error())
		writeServiceError(w, err, "Not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"analytics": report,
	})
}

type createKeysRequest struct {
	DurationDays  models.KeyDuration `json:"duration_days"`
	Type          string             `json:"type"`
	Reusable      bool               `json:"reusable"`
	UniversalHWID bool               `json:"universal_hwid"`
	Count         int                `json:"count"`
}

func (s *Server) handleCreateKeys(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req createKeysRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := s.keys.Create(r.Context(), keys.CreateParams{
		Duration:      req.DurationDays,
		Type:          req.Type,
		Reusable:      req.Reusable,
		UniversalHWID: req.UniversalHWID,
		Count:         req.Count,
	})
	if err != nil {
		s.logger.Error(r.Context(), "key creation failed", "error", err.Error())
		writeServiceError(w, err, "Not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Keys created",
		"keys":    created,
	})
}

type createBroadcastRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Target  string `json:"target"`
}

func (s *Server) handleCreateBroadcast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req createBroadcastRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Message == "" {
		writeFailure(w, http.StatusBadRequest, "Missing required fields (message)")
		return
	}

	broadcast, err := s.broadcasts.Create(r.Context(), req.Title, req.Message, req.Target)
	if err != nil {
		s.logger.Error(r.Context(), "broadcast creation failed", "error", err.Error())
		writeServiceError(w, err, "Not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Broadcast published",
		"broadcast": broadcast,
	})
}
