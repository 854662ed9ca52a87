package reports

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"
	"time"

	"pet-lost-found/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// MaxUploadBytes limita el multipart (foto + json).
const MaxUploadBytes = 10 << 20

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/api/reports", func(rr chi.Router) {
		rr.Post("/", createReportHandler(svc))
	})
}

type createReportRequest struct {
	Status         string       `json:"status"`
	Name           string       `json:"name"`
	Species        string       `json:"species"`
	Breed          string       `json:"breed"`
	Color          string       `json:"color"`
	Age            string       `json:"age"`
	Gender         string       `json:"gender"`
	IsMicrochipped bool         `json:"isMicrochipped"`
	Date           string       `json:"date"` // YYYY-MM-DD; vacío => hoy
	Location       string       `json:"location"`
	Description    string       `json:"description"`
	ContactName    string       `json:"contactName"`
	ContactPhone   string       `json:"contactPhone"`
	ContactEmail   string       `json:"contactEmail"`
	Coordinates    *Coordinates `json:"coordinates,omitempty"`
}

type reportResponse struct {
	ID             string       `json:"id"`
	UserID         string       `json:"userId"`
	Status         Status       `json:"status"`
	Name           string       `json:"name"`
	Species        string       `json:"species"`
	Breed          string       `json:"breed"`
	Color          string       `json:"color"`
	Age            string       `json:"age"`
	Gender         Gender       `json:"gender"`
	IsMicrochipped bool         `json:"isMicrochipped"`
	Date           string       `json:"date"`
	Location       string       `json:"location"`
	Description    string       `json:"description"`
	ContactName    string       `json:"contactName"`
	ContactPhone   string       `json:"contactPhone"`
	ContactEmail   string       `json:"contactEmail"`
	Photo          *string      `json:"photo"`
	Coordinates    *Coordinates `json:"coordinates,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
}

type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// createReportHandler godoc
// @Summary  Crear reporte de mascota perdida/encontrada
// @Accept   multipart/form-data,json
// @Produce  json
// @Param    report formData string true  "JSON del reporte"
// @Param    photo  formData file   false "Foto"
// @Success  201 {object} reportResponse
// @Failure  400 {object} errorResponse
// @Failure  401 {object} errorResponse
// @Failure  502 {object} errorResponse
// @Router   /api/reports [post]
func createReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: ErrNotAuthenticated.Error()})
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)

		var (
			req   createReportRequest
			photo *Upload
		)

		mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mt == "multipart/form-data" {
			if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
				return
			}
			if err := json.Unmarshal([]byte(r.FormValue("report")), &req); err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid report json"})
				return
			}
			f, hdr, err := r.FormFile("photo")
			switch {
			case err == nil:
				defer f.Close()
				photo = &Upload{
					Filename:    hdr.Filename,
					ContentType: hdr.Header.Get("Content-Type"),
					Size:        hdr.Size,
					Body:        f,
				}
			case errors.Is(err, http.ErrMissingFile):
				// sin foto
			default:
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid photo"})
				return
			}
		} else {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
				return
			}
		}

		draft := req.toDraft(svc.now())
		if err := draft.Validate(); err != nil {
			resp := errorResponse{Error: err.Error()}
			var mf *MissingFieldsError
			if errors.As(err, &mf) {
				resp.Fields = mf.Fields
			}
			writeJSON(w, http.StatusBadRequest, resp)
			return
		}

		rep, err := svc.Submit(r.Context(), draft, photo, claims.UserID)
		if err != nil {
			var (
				upErr *UploadError
				pErr  *PersistenceError
			)
			switch {
			case errors.Is(err, ErrNotAuthenticated):
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
			case errors.As(err, &upErr):
				writeJSON(w, http.StatusBadGateway, errorResponse{Error: "photo upload failed"})
			case errors.As(err, &pErr):
				writeJSON(w, http.StatusBadGateway, errorResponse{Error: "report could not be saved, please resubmit"})
			default:
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			}
			return
		}

		writeJSON(w, http.StatusCreated, toReportResponse(rep))
	}
}

func (req createReportRequest) toDraft(now time.Time) Draft {
	d := NewDraft(Status(strings.TrimSpace(req.Status)), now)
	if strings.TrimSpace(req.Date) != "" {
		d.Date = strings.TrimSpace(req.Date)
	}
	d.Name = req.Name
	d.Species = req.Species
	d.Breed = req.Breed
	d.Color = req.Color
	d.Age = req.Age
	d.Gender = Gender(strings.TrimSpace(req.Gender))
	d.IsMicrochipped = req.IsMicrochipped
	d.Location = req.Location
	d.Description = req.Description
	d.ContactName = req.ContactName
	d.ContactPhone = req.ContactPhone
	d.ContactEmail = req.ContactEmail
	d.Coordinates = req.Coordinates
	return d
}

func toReportResponse(rep Report) reportResponse {
	var photo *string
	// un preview local nunca sale del proceso
	if rep.Photo.IsRemote() {
		s := rep.Photo.Src()
		photo = &s
	}
	return reportResponse{
		ID:             rep.ID,
		UserID:         rep.UserID,
		Status:         rep.Status,
		Name:           rep.Name,
		Species:        rep.Species,
		Breed:          rep.Breed,
		Color:          rep.Color,
		Age:            rep.Age,
		Gender:         rep.Gender,
		IsMicrochipped: rep.IsMicrochipped,
		Date:           rep.Date,
		Location:       rep.Location,
		Description:    rep.Description,
		ContactName:    rep.ContactName,
		ContactPhone:   rep.ContactPhone,
		ContactEmail:   rep.ContactEmail,
		Photo:          photo,
		Coordinates:    rep.Coordinates,
		CreatedAt:      rep.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
