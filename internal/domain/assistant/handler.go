package assistant

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pet-lost-found/internal/domain/reports"
	"pet-lost-found/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// FailureNotice es el mensaje que ve el usuario cuando falla la generación.
const FailureNotice = "Failed to generate description. Please try again or write your own."

func RegisterRoutes(r chi.Router, a Assistant) {
	r.Post("/api/assistant/description", generateHandler(a))
}

type generateRequest struct {
	Status         string `json:"status"`
	Name           string `json:"name"`
	Species        string `json:"species"`
	Breed          string `json:"breed"`
	Color          string `json:"color"`
	Age            string `json:"age"`
	Gender         string `json:"gender"`
	IsMicrochipped bool   `json:"isMicrochipped"`
	Location       string `json:"location"`
	Date           string `json:"date"`
	Description    string `json:"description"`
}

type generateResponse struct {
	Description string `json:"description"`
	Remote      bool   `json:"remote"`
}

// generateHandler godoc
// @Summary  Generar descripción con IA (o fallback local)
// @Accept   json
// @Produce  json
// @Success  200 {object} generateResponse
// @Failure  502 {object} map[string]string
// @Router   /api/assistant/description [post]
func generateHandler(a Assistant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}
		status, ok := reports.ParseStatus(req.Status)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": reports.ErrInvalidStatus.Error()})
			return
		}

		text, err := a.GenerateDescription(r.Context(), Attributes{
			Status:         status,
			Name:           req.Name,
			Species:        req.Species,
			Breed:          req.Breed,
			Color:          req.Color,
			Age:            req.Age,
			Gender:         reports.Gender(strings.TrimSpace(req.Gender)),
			IsMicrochipped: req.IsMicrochipped,
			Location:       req.Location,
			Date:           req.Date,
			Description:    req.Description,
		})
		if err != nil {
			var gErr *GenerationError
			if errors.As(err, &gErr) {
				writeJSON(w, http.StatusBadGateway, map[string]string{"error": FailureNotice})
				return
			}
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}

		writeJSON(w, http.StatusOK, generateResponse{Description: text, Remote: a.IsRemote()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
