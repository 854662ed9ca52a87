package dashboard

import (
	"strings"
	"time"

	"pet-lost-found/internal/domain/proximity"
	"pet-lost-found/internal/domain/reports"
)

// Options de presentación (vienen de config + request).
type Options struct {
	ShareLink  string
	QREndpoint string
	QRSize     int
	FlyerOpen  bool
	Elapsed    time.Duration // desde que se abrió el dashboard
	Ticker     Ticker
}

// View es el view-model del dashboard. Se arma solo desde el reporte; no muta nada.
type View struct {
	Report reports.Report

	StatusLabel string // "LOST" / "FOUND"
	StatusClass string // badge rojo/verde
	DisplayName string
	Subtitle    string
	DateText    string
	Details     string
	Microchip   string

	SearchStatus string

	ShareLink string
	QRCodeURL string
	FlyerOpen bool

	Map   proximity.Map
	Flyer Flyer
}

// Flyer es el documento imprimible.
type Flyer struct {
	Headline    string // LOST / FOUND
	Question    string
	Name        string
	Breed       string
	Color       string
	Age         string
	Gender      string
	DateLabel   string
	DateText    string
	Location    string
	Microchip   bool
	Description string
	Photo       string
	Phone       string
	Email       string
	QRCodeURL   string
}

func Build(rep reports.Report, m proximity.Map, opts Options) View {
	link := opts.ShareLink
	qr := QRCodeURL(opts.QREndpoint, opts.QRSize, link)

	tk := opts.Ticker
	if tk.Interval <= 0 {
		tk = NewTicker(0)
	}

	v := View{
		Report:       rep,
		StatusLabel:  strings.ToUpper(string(rep.Status)),
		StatusClass:  StatusClass(rep.Status),
		DisplayName:  orDefault(rep.Name, "Unknown Pet"),
		Subtitle:     orDefault(rep.Breed, rep.Species),
		DateText:     FormatDate(rep.Attributes),
		Details:      joinNonEmpty(", ", rep.Color, rep.Age, string(rep.Gender)),
		Microchip:    yesNo(rep.IsMicrochipped),
		SearchStatus: tk.MessageAt(opts.Elapsed),
		ShareLink:    link,
		QRCodeURL:    qr,
		FlyerOpen:    opts.FlyerOpen,
		Map:          m,
	}
	v.Flyer = BuildFlyer(rep, qr)
	return v
}

func BuildFlyer(rep reports.Report, qrURL string) Flyer {
	f := Flyer{
		Headline:    "FOUND",
		Question:    "HAVE YOU SEEN THIS PET?",
		Name:        orDefault(rep.Name, "Unknown"),
		Breed:       rep.Breed,
		Color:       rep.Color,
		Age:         rep.Age,
		Gender:      string(rep.Gender),
		DateLabel:   "Date " + string(rep.Status),
		DateText:    FormatDate(rep.Attributes),
		Location:    rep.Location,
		Microchip:   rep.IsMicrochipped,
		Description: rep.Description,
		Photo:       rep.Photo.Src(),
		Phone:       rep.ContactPhone,
		Email:       rep.ContactEmail,
		QRCodeURL:   qrURL,
	}
	if rep.Status == reports.StatusLost {
		f.Headline = "LOST"
		f.Question = "HAVE YOU SEEN ME?"
	}
	return f
}

// StatusClass: Lost = rojo, Found = verde.
func StatusClass(s reports.Status) string {
	if s == reports.StatusLost {
		return "badge badge-lost"
	}
	return "badge badge-found"
}

// FormatDate muestra la fecha del reporte (cae al texto crudo si no parsea).
func FormatDate(a reports.Attributes) string {
	t := a.ParsedDate()
	if t.IsZero() {
		return a.Date
	}
	return t.Format("Jan 2, 2006")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

// Popup es el marcador seleccionado en el mapa, o nil.
func (v View) Popup() *proximity.Marker {
	m, ok := v.Map.Popup()
	if !ok {
		return nil
	}
	return &m
}
