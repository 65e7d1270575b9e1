package community

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"community-pet/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/api/community-actions", listCommunityActionsHandler(svc))
}

// communityActionResponse es una entrada del feed; timestamp en ms epoch.
type communityActionResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Action    string `json:"action"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

type communityFeedResponse struct {
	Status       string                    `json:"status"`
	Actions      []communityActionResponse `json:"actions"`
	TotalActions int64                     `json:"totalActions"`
	Message      string                    `json:"message,omitempty"`
}

// listCommunityActionsHandler godoc
// @Summary Feed de la comunidad
// @Description Devuelve las acciones recientes (más nuevas primero) y el total acumulado de la instancia. El total se mantiene aparte y puede no coincidir con las entradas guardadas.
// @Tags community
// @Produce json
// @Param X-Pet-Instance-ID header string true "Instancia de la mascota"
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param limit query int false "Máximo de acciones (1-100). Por defecto 10"
// @Success 200 {object} communityFeedResponse
// @Failure 400 {object} communityFeedResponse "Missing context"
// @Failure 500 {object} communityFeedResponse "Failed to load community actions"
// @Router /api/community-actions [get]
func listCommunityActionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exec, err := middleware.GetExecution(r.Context())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, communityFeedResponse{Status: "error", Message: "Missing context", Actions: []communityActionResponse{}})
			return
		}

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}

		feed, err := svc.Feed(r.Context(), exec.InstanceID, limit)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, communityFeedResponse{Status: "error", Message: "Failed to load community actions", Actions: []communityActionResponse{}})
			return
		}

		out := make([]communityActionResponse, 0, len(feed.Actions))
		for _, e := range feed.Actions {
			out = append(out, toCommunityActionResponse(e))
		}

		writeJSON(w, http.StatusOK, communityFeedResponse{
			Status:       "success",
			Actions:      out,
			TotalActions: feed.TotalActions,
		})
	}
}

func toCommunityActionResponse(e Entry) communityActionResponse {
	return communityActionResponse{
		ID:        e.ID,
		Username:  e.Username,
		Action:    e.Action,
		Message:   e.Message,
		Timestamp: e.Timestamp.UnixMilli(),
	}
}

// FromMillis es la inversa de Timestamp en la respuesta.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
