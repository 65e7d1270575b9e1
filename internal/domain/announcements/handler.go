package announcements

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"community-pet/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	record := recordAnnouncementHandler(svc)
	r.Post("/api/announcements", record)
	// nombre histórico del endpoint que usan los clientes web
	r.Post("/api/reddit-update", record)

	r.Get("/api/announcements", listAnnouncementsHandler(svc))
}

type announcementRequest struct {
	Action  string `json:"action"`
	Message string `json:"message"`
}

type announcementResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// recordAnnouncementHandler godoc
// @Summary Registrar un aviso externo
// @Description Guarda el aviso (acción, muerte, restart) y lo publica en el canal del host. La publicación es best-effort: sus errores no se devuelven.
// @Tags announcements
// @Accept json
// @Produce json
// @Param X-Pet-Instance-ID header string true "Instancia de la mascota"
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param payload body announcementRequest true "Acción y mensaje"
// @Success 200 {object} statusResponse
// @Failure 400 {object} statusResponse "Missing context / Missing action or message"
// @Failure 500 {object} statusResponse "Failed to send update"
// @Router /api/announcements [post]
func recordAnnouncementHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exec, err := middleware.GetExecution(r.Context())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, statusResponse{Status: "error", Message: "Missing context"})
			return
		}

		var req announcementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, statusResponse{Status: "error", Message: "invalid json"})
			return
		}

		_, err = svc.Record(r.Context(), RecordInput{
			InstanceID: exec.InstanceID,
			UserID:     exec.UserID,
			Username:   exec.Username,
			Action:     req.Action,
			Message:    req.Message,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeJSON(w, http.StatusBadRequest, statusResponse{Status: "error", Message: "Missing action or message"})
				return
			}
			writeJSON(w, http.StatusInternalServerError, statusResponse{Status: "error", Message: "Failed to send update"})
			return
		}

		writeJSON(w, http.StatusOK, statusResponse{Status: "success"})
	}
}

// listAnnouncementsHandler godoc
// @Summary Listar avisos de la instancia
// @Tags announcements
// @Produce json
// @Param X-Pet-Instance-ID header string true "Instancia de la mascota"
// @Param limit query int false "Máximo (por defecto 20)"
// @Success 200 {array} announcementResponse
// @Failure 400 {object} statusResponse "Missing context"
// @Failure 500 {object} statusResponse "internal error"
// @Router /api/announcements [get]
func listAnnouncementsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exec, err := middleware.GetExecution(r.Context())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, statusResponse{Status: "error", Message: "Missing context"})
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		items, err := svc.List(r.Context(), exec.InstanceID, limit)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, statusResponse{Status: "error", Message: "internal error"})
			return
		}

		out := make([]announcementResponse, 0, len(items))
		for _, a := range items {
			out = append(out, announcementResponse{
				ID:        a.ID,
				Username:  a.Username,
				Action:    a.Action,
				Message:   a.Message,
				CreatedAt: a.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// writeJSON está duplicado intencionalmente (ver sharedstate/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
