package session

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"pet-lost-found/internal/domain/assistant"
	"pet-lost-found/internal/domain/proximity"
	"pet-lost-found/internal/domain/reports"
	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/ports/auth"
)

var ErrSessionNotFound = errors.New("session not found")

// Submitter es el pipeline de envío (reports.Service).
type Submitter interface {
	Submit(ctx context.Context, draft reports.Draft, photo *reports.Upload, userID string) (reports.Report, error)
}

type Options struct {
	MapRadius float64
	// Rand devuelve la fuente para el jitter del mapa. nil => semilla por tiempo.
	Rand func() *rand.Rand
}

// Controller es el controlador de la app: navegación, formulario y dashboard.
// Cada operación corresponde a una acción del usuario sobre su sesión.
type Controller struct {
	store     *Store
	auth      *AuthService
	submitter Submitter
	assistant assistant.Assistant
	log       logger.Logger

	now       func() time.Time
	rand      func() *rand.Rand
	mapRadius float64

	unsubscribe func()
}

func NewController(store *Store, authSvc *AuthService, submitter Submitter, asst assistant.Assistant, log logger.Logger, opts Options) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	if asst == nil {
		asst = assistant.Local{}
	}
	c := &Controller{
		store:     store,
		auth:      authSvc,
		submitter: submitter,
		assistant: asst,
		log:       log.With(map[string]any{"component": "session"}),
		now:       time.Now,
		rand:      opts.Rand,
		mapRadius: opts.MapRadius,
	}
	if c.rand == nil {
		c.rand = func() *rand.Rand { return proximity.NewRand(uint64(time.Now().UnixNano())) }
	}
	if authSvc != nil {
		c.unsubscribe = authSvc.Subscribe(c.onIdentityChange)
	}
	return c
}

// Close libera la suscripción al servicio de auth.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// Session devuelve la sesión id o crea una nueva.
func (c *Controller) Session(id string) State {
	return c.store.Ensure(id)
}

// Assistant expone la estrategia activa (la vista muestra si es remota).
func (c *Controller) Assistant() assistant.Assistant { return c.assistant }

// -------------------------
// Auth
// -------------------------

func (c *Controller) SignIn(ctx context.Context, sessionID, token string) error {
	if c.auth == nil {
		c.setNotice(sessionID, NoticeSignInFailed)
		return &AuthFlowError{Op: "signin", Err: ErrAuthUnavailable}
	}
	if _, err := c.auth.SignIn(ctx, sessionID, token); err != nil {
		c.setNotice(sessionID, NoticeSignInFailed)
		return err
	}
	return nil
}

func (c *Controller) SignOut(ctx context.Context, sessionID string) {
	if c.auth == nil {
		c.onIdentityChange(sessionID, nil)
		return
	}
	c.auth.SignOut(ctx, sessionID)
}

// onIdentityChange aplica el cambio de identidad. Al salir vuelve a HOME
// y descarta el reporte de la sesión.
func (c *Controller) onIdentityChange(sessionID string, identity *auth.Claims) {
	c.store.Update(sessionID, func(st *State) {
		if identity == nil {
			st.User = nil
			st.View = ViewHome
			st.Draft = reports.Draft{}
			st.PhotoFile = nil
			st.Report = nil
			st.FlyerOpen = false
			st.Map = proximity.Map{Selected: -1}
			return
		}
		u := *identity
		st.User = &u
	})
}

// -------------------------
// Navegación
// -------------------------

// BeginReport: HOME -> FORM con el status elegido. Requiere sesión iniciada.
func (c *Controller) BeginReport(sessionID string, status reports.Status) (State, error) {
	if _, ok := reports.ParseStatus(string(status)); !ok {
		return State{}, reports.ErrInvalidStatus
	}

	var gateErr error
	st, ok := c.store.Update(sessionID, func(st *State) {
		if !st.SignedIn() {
			st.Notice = NoticeSignInToReport
			gateErr = reports.ErrNotAuthenticated
			return
		}
		st.View = ViewForm
		st.InitialStatus = status
		st.Draft = reports.NewDraft(status, c.now())
		st.PhotoFile = nil
		st.Notice = ""
	})
	if !ok {
		return State{}, ErrSessionNotFound
	}
	return st, gateErr
}

// Home vuelve a la pantalla inicial. El reporte enviado se descarta.
func (c *Controller) Home(sessionID string) (State, error) {
	st, ok := c.store.Update(sessionID, func(st *State) {
		st.View = ViewHome
		st.Report = nil
		st.FlyerOpen = false
		st.Map = proximity.Map{Selected: -1}
	})
	if !ok {
		return State{}, ErrSessionNotFound
	}
	return st, nil
}

// ConsumeNotice devuelve y limpia el aviso pendiente.
func (c *Controller) ConsumeNotice(sessionID string) string {
	var n string
	c.store.Update(sessionID, func(st *State) {
		n = st.Notice
		st.Notice = ""
	})
	return n
}

// -------------------------
// Formulario
// -------------------------

// UpdateDraft reemplaza los campos del draft. La foto y el status inicial se conservan.
func (c *Controller) UpdateDraft(sessionID string, attrs reports.Attributes) (State, error) {
	st, ok := c.store.Update(sessionID, func(st *State) {
		if st.View != ViewForm {
			return
		}
		if strings.TrimSpace(string(attrs.Status)) == "" {
			attrs.Status = st.Draft.Status
		}
		st.Draft.Attributes = attrs
	})
	if !ok {
		return State{}, ErrSessionNotFound
	}
	return st, nil
}

// AttachPhoto guarda el archivo elegido y arma el preview local.
func (c *Controller) AttachPhoto(sessionID, filename, contentType string, data []byte) (State, error) {
	st, ok := c.store.Update(sessionID, func(st *State) {
		if st.View != ViewForm {
			return
		}
		if len(data) == 0 {
			st.PhotoFile = nil
			st.Draft.Photo = reports.Photo{}
			return
		}
		st.PhotoFile = &PhotoFile{Filename: filename, ContentType: contentType, Data: data}
		st.Draft.Photo = reports.LocalPhoto(reports.PreviewDataURL(contentType, data))
	})
	if !ok {
		return State{}, ErrSessionNotFound
	}
	return st, nil
}

// GenerateDescription llena la descripción con el asistente. Si falla,
// la descripción queda como estaba y se avisa al usuario.
func (c *Controller) GenerateDescription(ctx context.Context, sessionID string) (State, error) {
	snap, ok := c.store.Get(sessionID)
	if !ok {
		return State{}, ErrSessionNotFound
	}
	if snap.View != ViewForm {
		return snap, nil
	}

	text, err := c.assistant.GenerateDescription(ctx, assistant.FromDraft(snap.Draft))
	if err != nil {
		c.log.Warn("description generation failed", map[string]any{"session": sessionID, "error": err})
		st, _ := c.store.Update(sessionID, func(st *State) {
			st.Notice = assistant.FailureNotice
		})
		return st, err
	}

	// si mientras tanto el usuario editó la descripción o salió del form, se descarta el texto
	st, _ := c.store.Update(sessionID, func(st *State) {
		if st.View == ViewForm && st.Draft.Description == snap.Draft.Description {
			st.Draft.Description = text
		}
	})
	return st, nil
}

// Submit valida el draft (gate del formulario) y recién entonces corre el pipeline.
// Si el draft es inválido el pipeline no se invoca.
func (c *Controller) Submit(ctx context.Context, sessionID string) (State, error) {
	snap, ok := c.store.Get(sessionID)
	if !ok {
		return State{}, ErrSessionNotFound
	}
	if snap.View != ViewForm {
		return snap, nil
	}

	if !snap.SignedIn() {
		st, _ := c.store.Update(sessionID, func(st *State) { st.Notice = NoticeSignInToSubmit })
		return st, reports.ErrNotAuthenticated
	}

	if err := snap.Draft.Validate(); err != nil {
		st, _ := c.store.Update(sessionID, func(st *State) { st.Notice = validationNotice(err) })
		return st, err
	}

	var upload *reports.Upload
	if snap.PhotoFile != nil {
		upload = &reports.Upload{
			Filename:    snap.PhotoFile.Filename,
			ContentType: snap.PhotoFile.ContentType,
			Size:        int64(len(snap.PhotoFile.Data)),
			Body:        bytes.NewReader(snap.PhotoFile.Data),
		}
	}

	rep, err := c.submitter.Submit(ctx, snap.Draft, upload, snap.User.UserID)
	if err != nil {
		notice := NoticeSaveFailed
		var upErr *reports.UploadError
		switch {
		case errors.Is(err, reports.ErrNotAuthenticated):
			notice = NoticeSignInToSubmit
		case errors.As(err, &upErr):
			notice = NoticeUploadFailed
		}
		// el draft queda intacto para reintentar
		st, _ := c.store.Update(sessionID, func(st *State) { st.Notice = notice })
		return st, err
	}

	now := c.now()
	m := proximity.NewMap(rep, c.rand(), proximity.Options{Radius: c.mapRadius, Now: now})

	var stale bool
	st, _ := c.store.Update(sessionID, func(st *State) {
		// sign-out (o cambio de usuario) durante el envío: la sesión ya no es la que envió
		if !st.SignedIn() || st.User.UserID != snap.User.UserID || st.View != ViewForm {
			stale = true
			return
		}
		st.Report = &rep
		st.View = ViewDashboard
		st.DashboardOpenedAt = now
		st.FlyerOpen = false
		st.Map = m
		st.Draft = reports.Draft{}
		st.PhotoFile = nil
		st.Notice = ""
	})
	if stale {
		c.log.Warn("session changed during submit", map[string]any{"session": sessionID, "report": rep.ID})
	}
	return st, nil
}

func validationNotice(err error) string {
	var mf *reports.MissingFieldsError
	switch {
	case errors.As(err, &mf):
		return NoticeMissingFields
	case errors.Is(err, reports.ErrInvalidDate):
		return "Please enter a valid date."
	case errors.Is(err, reports.ErrInvalidGender):
		return "Please choose a valid gender."
	case errors.Is(err, reports.ErrInvalidStatus):
		return "Please choose whether the pet is lost or found."
	case errors.Is(err, reports.ErrInvalidCoordinates):
		return "Please place the pet inside the map."
	}
	return NoticeMissingFields
}

// -------------------------
// Dashboard
// -------------------------

func (c *Controller) ToggleFlyer(sessionID string, open bool) (State, error) {
	return c.onDashboard(sessionID, func(st *State) { st.FlyerOpen = open })
}

func (c *Controller) SelectMarker(sessionID string, i int) (State, error) {
	return c.onDashboard(sessionID, func(st *State) { st.Map.Select(i) })
}

func (c *Controller) ClearMarker(sessionID string) (State, error) {
	return c.onDashboard(sessionID, func(st *State) { st.Map.Clear() })
}

func (c *Controller) onDashboard(sessionID string, fn func(st *State)) (State, error) {
	st, ok := c.store.Update(sessionID, func(st *State) {
		if st.View == ViewDashboard && st.Report != nil {
			fn(st)
		}
	})
	if !ok {
		return State{}, ErrSessionNotFound
	}
	return st, nil
}

func (c *Controller) setNotice(sessionID, n string) {
	c.store.Update(sessionID, func(st *State) { st.Notice = n })
}
