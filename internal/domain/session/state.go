package session

import (
	"time"

	"pet-lost-found/internal/domain/proximity"
	"pet-lost-found/internal/domain/reports"
	"pet-lost-found/internal/ports/auth"
)

// View es el estado de navegación de la app (no es parte del reporte).
// @Enum HOME, FORM, DASHBOARD
type View string

const (
	ViewHome      View = "HOME"
	ViewForm      View = "FORM"
	ViewDashboard View = "DASHBOARD"
)

// Mensajes que ve el usuario.
const (
	NoticeSignInToReport = "Please sign in to create a report."
	NoticeSignInToSubmit = "You must be logged in to submit a report."
	NoticeSaveFailed     = "There was an error saving your report. Please try again."
	NoticeUploadFailed   = "Your photo could not be uploaded. Please try again."
	NoticeMissingFields  = "Please fill in all required fields."
	NoticeSignInFailed   = "Sign in failed. Please try again."
)

// PhotoFile es el archivo elegido en el formulario. Se guarda en memoria
// hasta el submit; el preview (data URL) va en el draft.
type PhotoFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// State es el estado de una sesión del navegador.
type State struct {
	ID string

	View          View
	User          *auth.Claims
	InitialStatus reports.Status

	Draft     reports.Draft
	PhotoFile *PhotoFile

	Report            *reports.Report
	DashboardOpenedAt time.Time
	FlyerOpen         bool
	Map               proximity.Map

	Notice string

	LastSeen time.Time
}

func (s State) SignedIn() bool { return s.User != nil && s.User.UserID != "" }
