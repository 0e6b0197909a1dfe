package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

type contextKey string

const BoardIDKey contextKey = "boardID"

// BoardMiddleware requires a bearer token issued for the route's {boardId}.
func (s *Service) BoardMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid authorization format"})
			return
		}

		boardID, err := s.ValidateToken(parts[1])
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}

		if routeID, ok := mux.Vars(r)["boardId"]; ok && routeID != boardID {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "token not valid for this board"})
			return
		}

		ctx := context.WithValue(r.Context(), BoardIDKey, boardID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func BoardIDFromContext(ctx context.Context) string {
	boardID, _ := ctx.Value(BoardIDKey).(string)
	return boardID
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
