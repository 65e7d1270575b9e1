package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

const (
	HeaderInstanceID = "X-Pet-Instance-ID"
	QueryInstanceID  = "instance"
)

const execKey ctxKey = "execution"

var ErrMissingContext = errors.New("missing context")

// Execution es el contexto que el host entrega en cada request: la
// instancia de la mascota (un post) y quién llama.
type Execution struct {
	InstanceID string
	UserID     string
	Username   string
}

// HostContext exige instancia + identidad antes de llegar a cualquier
// handler que muta o lee la mascota. Va después de AuthContext.
func HostContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		instanceID := strings.TrimSpace(r.Header.Get(HeaderInstanceID))
		if instanceID == "" {
			instanceID = strings.TrimSpace(r.URL.Query().Get(QueryInstanceID))
		}

		claims, ok := GetClaims(r.Context())
		if instanceID == "" || !ok || strings.TrimSpace(claims.UserID) == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"status":  "error",
				"message": "Missing context",
			})
			return
		}

		exec := Execution{
			InstanceID: instanceID,
			UserID:     strings.TrimSpace(claims.UserID),
			Username:   claims.DisplayName(),
		}
		next.ServeHTTP(w, r.WithContext(WithExecution(r.Context(), exec)))
	})
}

func WithExecution(ctx context.Context, e Execution) context.Context {
	return context.WithValue(ctx, execKey, e)
}

// GetExecution devuelve ErrMissingContext si HostContext no corrió.
func GetExecution(ctx context.Context) (Execution, error) {
	e, ok := ctx.Value(execKey).(Execution)
	if !ok || e.InstanceID == "" || e.UserID == "" {
		return Execution{}, ErrMissingContext
	}
	return e, nil
}
