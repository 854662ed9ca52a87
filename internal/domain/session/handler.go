package session

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-lost-found/internal/domain/dashboard"
	"pet-lost-found/internal/domain/reports"
	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/web"

	"github.com/go-chi/chi/v5"
)

const CookieName = "pf_session"

// HandlerConfig viene de config (share + dashboard).
type HandlerConfig struct {
	PublicBaseURL string
	QREndpoint    string
	QRSize        int
	TickInterval  time.Duration
	SecureCookie  bool
}

type handlers struct {
	ctl   *Controller
	views *web.Renderer
	cfg   HandlerConfig
	log   logger.Logger
}

func RegisterRoutes(r chi.Router, ctl *Controller, views *web.Renderer, cfg HandlerConfig, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	h := &handlers{ctl: ctl, views: views, cfg: cfg, log: log.With(map[string]any{"component": "web"})}

	r.Get("/", h.index)

	r.Post("/auth/signin", h.signIn)
	r.Post("/auth/signout", h.signOut)

	r.Post("/reports/new", h.beginReport)
	r.Get("/reports/form", h.showForm)
	r.Post("/reports/form", h.postForm)

	r.Route("/dashboard", func(dr chi.Router) {
		dr.Get("/", h.showDashboard)
		dr.Post("/flyer", h.toggleFlyer)
		dr.Get("/flyer", h.showFlyer)
		dr.Post("/map/select", h.selectMarker)
		dr.Post("/map/clear", h.clearMarker)
		dr.Get("/status", h.statusStream)
	})

	r.Post("/home", h.home)
}

// session lee la cookie y crea la sesión si hace falta.
func (h *handlers) session(w http.ResponseWriter, r *http.Request) State {
	var id string
	if c, err := r.Cookie(CookieName); err == nil {
		id = c.Value
	}
	st := h.ctl.Session(id)
	if st.ID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    st.ID,
			Path:     "/",
			HttpOnly: true,
			Secure:   h.cfg.SecureCookie,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return st
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)
	switch st.View {
	case ViewForm:
		redirect(w, r, "/reports/form")
	case ViewDashboard:
		redirect(w, r, "/dashboard")
	default:
		h.render(w, r, http.StatusOK, web.PageHome, st, "", nil)
	}
}

func (h *handlers) signIn(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)
	// el error ya quedó como aviso en la sesión
	_ = h.ctl.SignIn(r.Context(), st.ID, r.FormValue("token"))
	redirect(w, r, "/")
}

func (h *handlers) signOut(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)
	h.ctl.SignOut(r.Context(), st.ID)
	redirect(w, r, "/")
}

func (h *handlers) beginReport(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)

	status, ok := reports.ParseStatus(r.URL.Query().Get("status"))
	if !ok {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}
	if _, err := h.ctl.BeginReport(st.ID, status); err != nil {
		redirect(w, r, "/")
		return
	}
	redirect(w, r, "/reports/form")
}

type formView struct {
	Draft           reports.Draft
	Genders         []reports.Gender
	AssistantRemote bool
}

func (h *handlers) showForm(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)
	if st.View != ViewForm {
		redirect(w, r, "/")
		return
	}
	h.render(w, r, http.StatusOK, web.PageForm, st, "New report", formView{
		Draft:           st.Draft,
		Genders:         []reports.Gender{reports.GenderMale, reports.GenderFemale, reports.GenderUnknown},
		AssistantRemote: h.ctl.Assistant().IsRemote(),
	})
}

func (h *handlers) postForm(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)
	if st.View != ViewForm {
		redirect(w, r, "/")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, reports.MaxUploadBytes)
	if err := r.ParseMultipartForm(reports.MaxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	if _, err := h.ctl.UpdateDraft(st.ID, attributesFromForm(r)); err != nil {
		h.fail(w, err)
		return
	}

	f, hdr, err := r.FormFile("photo")
	switch {
	case err == nil:
		data, rerr := io.ReadAll(f)
		f.Close()
		if rerr != nil {
			http.Error(w, "invalid photo", http.StatusBadRequest)
			return
		}
		if len(data) > 0 {
			if _, err := h.ctl.AttachPhoto(st.ID, hdr.Filename, hdr.Header.Get("Content-Type"), data); err != nil {
				h.fail(w, err)
				return
			}
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// sin foto nueva, se conserva la anterior
	default:
		http.Error(w, "invalid photo", http.StatusBadRequest)
		return
	}

	switch r.FormValue("action") {
	case "generate":
		_, _ = h.ctl.GenerateDescription(r.Context(), st.ID)
	case "submit":
		if _, err := h.ctl.Submit(r.Context(), st.ID); err == nil {
			redirect(w, r, "/dashboard")
			return
		}
	}
	redirect(w, r, "/reports/form")
}

func attributesFromForm(r *http.Request) reports.Attributes {
	v := func(k string) string { return strings.TrimSpace(r.FormValue(k)) }

	a := reports.Attributes{
		Status:         reports.Status(v("status")),
		Name:           v("name"),
		Species:        v("species"),
		Breed:          v("breed"),
		Color:          v("color"),
		Age:            v("age"),
		Gender:         reports.Gender(v("gender")),
		IsMicrochipped: v("isMicrochipped") == "true" || v("isMicrochipped") == "on",
		Date:           v("date"),
		Location:       v("location"),
		Description:    r.FormValue("description"),
		ContactName:    v("contactName"),
		ContactPhone:   v("contactPhone"),
		ContactEmail:   v("contactEmail"),
	}

	lat, errLat := strconv.ParseFloat(v("lat"), 64)
	lng, errLng := strconv.ParseFloat(v("lng"), 64)
	if errLat == nil && errLng == nil {
		a.Coordinates = &reports.Coordinates{Lat: lat, Lng: lng}
	}
	return a
}

func (h *handlers) dashboardView(r *http.Request, st State) dashboard.View {
	// el link compartido siempre apunta al dashboard, también desde el flyer
	page := r.Clone(r.Context())
	page.URL.Path, page.URL.RawPath = "/dashboard", ""

	elapsed := time.Since(st.DashboardOpenedAt)
	return dashboard.Build(*st.Report, st.Map, dashboard.Options{
		ShareLink:  dashboard.ShareLink(h.cfg.PublicBaseURL, page),
		QREndpoint: h.cfg.QREndpoint,
		QRSize:     h.cfg.QRSize,
		FlyerOpen:  st.FlyerOpen,
		Elapsed:    elapsed,
		Ticker:     dashboard.NewTicker(h.cfg.TickInterval),
	})
}

func (h *handlers) showDashboard(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)
	if st.View != ViewDashboard || st.Report == nil {
		redirect(w, r, "/")
		return
	}
	v := h.dashboardView(r, st)
	h.render(w, r, http.StatusOK, web.PageDashboard, st, v.DisplayName, v)
}

func (h *handlers) showFlyer(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)
	if st.View != ViewDashboard || st.Report == nil || !st.FlyerOpen {
		redirect(w, r, "/dashboard")
		return
	}
	v := h.dashboardView(r, st)
	title := fmt.Sprintf("%s: %s", v.Flyer.Headline, v.Flyer.Name)
	if err := h.views.Render(w, http.StatusOK, web.PageFlyer, web.Page{Title: title, Body: v.Flyer}); err != nil {
		h.log.Error("render failed", map[string]any{"page": web.PageFlyer, "error": err})
	}
}

func (h *handlers) toggleFlyer(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)
	open, _ := strconv.ParseBool(r.FormValue("open"))
	if _, err := h.ctl.ToggleFlyer(st.ID, open); err != nil {
		h.fail(w, err)
		return
	}
	redirect(w, r, "/dashboard")
}

func (h *handlers) selectMarker(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)
	i, err := strconv.Atoi(r.FormValue("i"))
	if err != nil {
		i = -1
	}
	if _, err := h.ctl.SelectMarker(st.ID, i); err != nil {
		h.fail(w, err)
		return
	}
	redirect(w, r, "/dashboard")
}

func (h *handlers) clearMarker(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)
	if _, err := h.ctl.ClearMarker(st.ID); err != nil {
		h.fail(w, err)
		return
	}
	redirect(w, r, "/dashboard")
}

// statusStream manda el ticker de estado por SSE hasta que el cliente se va.
func (h *handlers) statusStream(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)
	if st.View != ViewDashboard {
		http.Error(w, "no active report", http.StatusNotFound)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	// el stream vive más que el WriteTimeout del server
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	var elapsed time.Duration
	if !st.DashboardOpenedAt.IsZero() {
		elapsed = time.Since(st.DashboardOpenedAt)
	}
	for msg := range dashboard.NewTicker(h.cfg.TickInterval).RunFrom(r.Context(), elapsed) {
		if _, err := fmt.Fprintf(w, "data: %s\n\n", msg); err != nil {
			return
		}
		flusher.Flush()
	}
}

func (h *handlers) home(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)
	if _, err := h.ctl.Home(st.ID); err != nil {
		h.fail(w, err)
		return
	}
	redirect(w, r, "/")
}

func (h *handlers) render(w http.ResponseWriter, r *http.Request, status int, page string, st State, title string, body any) {
	p := web.Page{
		Title:  title,
		User:   st.User,
		Notice: h.ctl.ConsumeNotice(st.ID),
		Body:   body,
	}
	if err := h.views.Render(w, status, page, p); err != nil {
		h.log.Error("render failed", map[string]any{"page": page, "path": r.URL.Path, "error": err})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *handlers) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrSessionNotFound) {
		http.Error(w, "session expired", http.StatusNotFound)
		return
	}
	h.log.Error("session action failed", map[string]any{"error": err})
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// redirect post/redirect/get.
func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}
