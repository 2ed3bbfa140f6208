package httpapi

import (
	"net/http"
	"strings"

	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/auth"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/models"
)

// requireAdmin gates a handler behind a bearer token whose rank is OWNER or
// ADMIN.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeFailure(w, http.StatusUnauthorized, "Missing access token")
			return
		}

		claims, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			writeFailure(w, http.StatusUnauthorized, "Invalid access token")
			return
		}

		if claims.Rank != models.RankOwner && claims.Rank != models.RankAdmin {
			writeFailure(w, http.StatusForbidden, "Admin rank required")
			return
		}

		next(w, r)
	}
}
