package router

import (
	"net/http"
	"time"

	_ "pet-lost-found/docs"

	devauth "pet-lost-found/internal/adapters/auth/dev"
	mem "pet-lost-found/internal/adapters/storage/memory"
	"pet-lost-found/internal/domain/assistant"
	"pet-lost-found/internal/domain/reports"
	"pet-lost-found/internal/domain/session"
	"pet-lost-found/internal/middleware"
	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/ports/auth"
	"pet-lost-found/internal/ports/storage"
	"pet-lost-found/internal/ports/textgen"
	"pet-lost-found/internal/web"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// ObjectsPrefix es donde se sirven las fotos del object store en memoria.
const ObjectsPrefix = "/objects"

type Options struct {
	Logger logger.Logger

	// nil => modo dev (X-Debug-User-ID en la API, token "<id>|<nombre>" en la UI).
	AuthVerifier auth.AuthVerifier

	// Opcionales: si no vienen, in-memory.
	Documents storage.DocumentStore
	Objects   storage.ObjectStore

	// nil => fallback local del asistente.
	Generator textgen.Generator

	Session        session.HandlerConfig
	SessionMaxIdle time.Duration
	MapRadius      float64
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Recover(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	docs := opts.Documents
	if docs == nil {
		docs = mem.NewDocuments()
	}
	objects := opts.Objects
	if objects == nil {
		memObjects := mem.NewObjects(ObjectsPrefix)
		r.Handle(ObjectsPrefix+"/*", memObjects.Handler(ObjectsPrefix))
		objects = memObjects
	}

	// el verificador de la UI es el mismo que el de la API; en dev acepta cualquier id
	signIn := opts.AuthVerifier
	if signIn == nil {
		signIn = devauth.Verifier{}
	}

	// Services por módulo
	reportsSvc := reports.NewService(docs, objects, log)

	asst := assistant.New(opts.Generator)

	authSvc := session.NewAuthService(signIn, log)
	ctl := session.NewController(session.NewStore(opts.SessionMaxIdle), authSvc, reportsSvc, asst, log, session.Options{
		MapRadius: opts.MapRadius,
	})

	// Rutas por módulo
	reports.RegisterRoutes(r, reportsSvc)
	assistant.RegisterRoutes(r, asst)
	session.RegisterRoutes(r, ctl, web.MustNew(), opts.Session, log)

	return r
}
