package sharedstate

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"community-pet/internal/domain/community"
	"community-pet/internal/domain/pet"
	"community-pet/internal/middleware"
	"community-pet/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

const restartCommunityMessage = "restarted the community pet! A new life begins! 🔄"

func RegisterRoutes(r chi.Router, svc *Service, communitySvc *community.Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}

	r.Post("/api/pet-action", performActionHandler(svc, communitySvc, log))

	r.Get("/api/pet-state", readStateHandler(svc))
	r.Post("/api/pet-state", writeStateHandler(svc))

	r.Post("/api/pet-restart", restartHandler(svc, communitySvc, log))
}

type petActionRequest struct {
	Action       string            `json:"action" enums:"feed,play,clean,sleep,talk"`
	CurrentStats *pet.StatSnapshot `json:"currentStats"`
}

// petActionResponse: stats/state/message solo vienen con status=success.
type petActionResponse struct {
	Status  string            `json:"status"`
	Stats   *pet.StatSnapshot `json:"stats,omitempty"`
	State   pet.Condition     `json:"state,omitempty"`
	Alive   *bool             `json:"alive,omitempty"`
	Message string            `json:"message,omitempty"`
}

type petStateResponse struct {
	Status         string            `json:"status"`
	Stats          *pet.StatSnapshot `json:"stats,omitempty"`
	Alive          *bool             `json:"alive,omitempty"`
	State          pet.Condition     `json:"state,omitempty"`
	LastActionBy   string            `json:"lastActionBy,omitempty"`
	LastActionTime *time.Time        `json:"lastActionTime,omitempty"`
	Message        string            `json:"message,omitempty"`
}

type writeStateRequest struct {
	Stats *pet.StatSnapshot `json:"stats"`
	Alive *bool             `json:"alive"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// performActionHandler godoc
// @Summary Aplicar una acción a la mascota
// @Description Resuelve la acción sobre currentStats (los stats que el cliente tiene en su vista local), escribe el resultado en el estado compartido y registra la acción en el feed. Si el feed falla la acción igual se considera exitosa.
// @Tags pet
// @Accept json
// @Produce json
// @Param X-Pet-Instance-ID header string true "Instancia de la mascota"
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param payload body petActionRequest true "Acción y stats actuales"
// @Success 200 {object} petActionResponse
// @Failure 400 {object} petActionResponse "Missing context / Missing action or stats / Invalid action"
// @Failure 409 {object} petActionResponse "Pet is dead"
// @Failure 500 {object} petActionResponse "Internal server error"
// @Router /api/pet-action [post]
func performActionHandler(svc *Service, communitySvc *community.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exec, err := middleware.GetExecution(r.Context())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, petActionResponse{Status: "error", Message: "Missing context"})
			return
		}

		var req petActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Action == "" || req.CurrentStats == nil {
			writeJSON(w, http.StatusBadRequest, petActionResponse{Status: "error", Message: "Missing action or stats"})
			return
		}

		kind, err := pet.ParseAction(req.Action)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, petActionResponse{Status: "error", Message: "Invalid action"})
			return
		}

		res, err := svc.PerformAction(r.Context(), exec.InstanceID, exec.UserID, kind, *req.CurrentStats)
		if err != nil {
			switch {
			case errors.Is(err, pet.ErrInvalidAction):
				writeJSON(w, http.StatusBadRequest, petActionResponse{Status: "error", Message: "Invalid action"})
			case errors.Is(err, pet.ErrInvalidInput):
				writeJSON(w, http.StatusBadRequest, petActionResponse{Status: "error", Message: "Invalid stats"})
			case errors.Is(err, ErrPetDead):
				writeJSON(w, http.StatusConflict, petActionResponse{Status: "error", Message: "Pet is dead"})
			default:
				writeJSON(w, http.StatusInternalServerError, petActionResponse{Status: "error", Message: "Internal server error"})
			}
			return
		}

		// El feed es best-effort: no revierte la acción.
		if communitySvc != nil {
			if _, err := communitySvc.Record(r.Context(), exec.InstanceID, exec.Username, string(kind), kind.CommunityMessage()); err != nil {
				log.Warn("pet action applied but not recorded in feed", map[string]any{
					"instance": exec.InstanceID,
					"user":     exec.UserID,
					"action":   kind,
					"err":      err,
				})
			}
		}

		stats := res.Record.Stats
		alive := res.Record.Alive
		writeJSON(w, http.StatusOK, petActionResponse{
			Status:  "success",
			Stats:   &stats,
			State:   res.Condition,
			Alive:   &alive,
			Message: res.Message,
		})
	}
}

// readStateHandler godoc
// @Summary Leer el estado compartido
// @Description Devuelve el record de la instancia. Si no existe (o está corrupto) la respuesta viene sin stats.
// @Tags pet
// @Produce json
// @Param X-Pet-Instance-ID header string true "Instancia de la mascota"
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Success 200 {object} petStateResponse
// @Failure 400 {object} petStateResponse "Missing context"
// @Failure 500 {object} petStateResponse "Failed to load pet state"
// @Router /api/pet-state [get]
func readStateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exec, err := middleware.GetExecution(r.Context())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, petStateResponse{Status: "error", Message: "Missing context"})
			return
		}

		rec, found, err := svc.Read(r.Context(), exec.InstanceID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, petStateResponse{Status: "error", Message: "Failed to load pet state"})
			return
		}
		if !found {
			writeJSON(w, http.StatusOK, petStateResponse{Status: "success"})
			return
		}

		stats := rec.Stats
		alive := rec.Alive
		last := rec.LastActionTime
		writeJSON(w, http.StatusOK, petStateResponse{
			Status:         "success",
			Stats:          &stats,
			Alive:          &alive,
			State:          rec.Condition(),
			LastActionBy:   rec.LastActionBy,
			LastActionTime: &last,
		})
	}
}

// writeStateHandler godoc
// @Summary Escribir el estado compartido
// @Description Reemplaza el record completo de la instancia (last-write-wins, sin merge).
// @Tags pet
// @Accept json
// @Produce json
// @Param X-Pet-Instance-ID header string true "Instancia de la mascota"
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param payload body writeStateRequest true "Stats y alive"
// @Success 200 {object} statusResponse
// @Failure 400 {object} statusResponse "Missing context / Missing stats"
// @Failure 500 {object} statusResponse "Failed to save pet state"
// @Router /api/pet-state [post]
func writeStateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exec, err := middleware.GetExecution(r.Context())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, statusResponse{Status: "error", Message: "Missing context"})
			return
		}

		var req writeStateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Stats == nil {
			writeJSON(w, http.StatusBadRequest, statusResponse{Status: "error", Message: "Missing stats"})
			return
		}

		// Sin alive explícito se deriva de los stats.
		alive := req.Stats.Alive()
		if req.Alive != nil {
			alive = *req.Alive
		}

		if _, err := svc.Write(r.Context(), exec.InstanceID, exec.UserID, *req.Stats, alive); err != nil {
			if errors.Is(err, pet.ErrInvalidInput) {
				writeJSON(w, http.StatusBadRequest, statusResponse{Status: "error", Message: "Invalid stats"})
				return
			}
			writeJSON(w, http.StatusInternalServerError, statusResponse{Status: "error", Message: "Failed to save pet state"})
			return
		}

		writeJSON(w, http.StatusOK, statusResponse{Status: "success"})
	}
}

// restartHandler godoc
// @Summary Reiniciar la mascota
// @Description Reemplaza el record con stats de nacimiento (100/100/100/100/100, age 0) y alive=true.
// @Tags pet
// @Produce json
// @Param X-Pet-Instance-ID header string true "Instancia de la mascota"
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Success 200 {object} statusResponse
// @Failure 400 {object} statusResponse "Missing context"
// @Failure 500 {object} statusResponse "Failed to restart pet"
// @Router /api/pet-restart [post]
func restartHandler(svc *Service, communitySvc *community.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exec, err := middleware.GetExecution(r.Context())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, statusResponse{Status: "error", Message: "Missing context"})
			return
		}

		if _, err := svc.Restart(r.Context(), exec.InstanceID, exec.UserID); err != nil {
			writeJSON(w, http.StatusInternalServerError, statusResponse{Status: "error", Message: "Failed to restart pet"})
			return
		}

		if communitySvc != nil {
			if _, err := communitySvc.Record(r.Context(), exec.InstanceID, exec.Username, "restart", restartCommunityMessage); err != nil {
				log.Warn("pet restarted but not recorded in feed", map[string]any{
					"instance": exec.InstanceID,
					"user":     exec.UserID,
					"err":      err,
				})
			}
		}

		writeJSON(w, http.StatusOK, statusResponse{Status: "success"})
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
