package rest

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/carvingsite/internal/logging"
	"github.com/dmitrijs2005/carvingsite/internal/server/auth"
	"github.com/dmitrijs2005/carvingsite/internal/server/models"
	"github.com/dmitrijs2005/carvingsite/internal/server/services"
	"github.com/gorilla/mux"
)

type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
	Verify(token string) (*auth.Principal, error)
}

type EventService interface {
	List(ctx context.Context) ([]models.Event, error)
	Get(ctx context.Context, id int64) (*models.Event, error)
	Create(ctx context.Context, e *models.Event) (*models.Event, error)
	Update(ctx context.Context, id int64, patch models.EventPatch) (*models.Event, error)
	Delete(ctx context.Context, id int64) (bool, services.CleanupResult, error)
}

type GalleryService interface {
	List(ctx context.Context) ([]models.GalleryImage, error)
	Get(ctx context.Context, id int64) (*models.GalleryImage, error)
	Create(ctx context.Context, img *models.GalleryImage) (*models.GalleryImage, error)
	Update(ctx context.Context, id int64, patch models.GalleryImagePatch) (*models.GalleryImage, error)
	Delete(ctx context.Context, id int64) (bool, services.CleanupResult, error)
	Reorder(ctx context.Context, ids []int64) ([]models.GalleryImage, error)
}

type ImageIngester interface {
	Ingest(ctx context.Context, category, filename string, r io.Reader) (string, error)
}

type ContactSender interface {
	Send(ctx context.Context, req *services.ContactRequest) error
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handlers holds the dependencies of every route.
type Handlers struct {
	logger  logging.Logger
	auth    Authenticator
	events  EventService
	gallery GalleryService
	images  ImageIngester
	contact ContactSender
	db      Pinger

	// ImagesDir, when set, is served read-only under /images/.
	ImagesDir string
	// MaxUploadBytes bounds multipart request bodies.
	MaxUploadBytes int64
}

const defaultMaxUploadBytes = 10 << 20

func NewHandlers(l logging.Logger, a Authenticator, es EventService, gs GalleryService,
	ig ImageIngester, cs ContactSender, db Pinger) *Handlers {
	return &Handlers{
		logger:         l.With("module", "rest"),
		auth:           a,
		events:         es,
		gallery:        gs,
		images:         ig,
		contact:        cs,
		db:             db,
		MaxUploadBytes: defaultMaxUploadBytes,
	}
}

// Router builds the route table. Every /api/admin route and
// /api/auth/verify pass through the auth gate first.
func (h *Handlers) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(requestID, h.logRequests, h.recoverPanics)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
	api.Handle("/auth/verify", h.requireAuth(http.HandlerFunc(h.verify))).Methods(http.MethodGet)
	api.HandleFunc("/events", h.publicEvents).Methods(http.MethodGet)
	api.HandleFunc("/gallery", h.publicGallery).Methods(http.MethodGet)
	api.HandleFunc("/contact", h.sendContact).Methods(http.MethodPost)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(h.requireAuth)

	admin.HandleFunc("/events", h.listEvents).Methods(http.MethodGet)
	admin.HandleFunc("/events", h.createEvent).Methods(http.MethodPost)
	admin.HandleFunc("/events/{id:[0-9]+}", h.getEvent).Methods(http.MethodGet)
	admin.HandleFunc("/events/{id:[0-9]+}", h.updateEvent).Methods(http.MethodPut)
	admin.HandleFunc("/events/{id:[0-9]+}", h.deleteEvent).Methods(http.MethodDelete)

	admin.HandleFunc("/gallery", h.listGallery).Methods(http.MethodGet)
	admin.HandleFunc("/gallery", h.createGalleryImage).Methods(http.MethodPost)
	admin.HandleFunc("/gallery/reorder", h.reorderGallery).Methods(http.MethodPost)
	admin.HandleFunc("/gallery/{id:[0-9]+}", h.getGalleryImage).Methods(http.MethodGet)
	admin.HandleFunc("/gallery/{id:[0-9]+}", h.updateGalleryImage).Methods(http.MethodPut)
	admin.HandleFunc("/gallery/{id:[0-9]+}", h.deleteGalleryImage).Methods(http.MethodDelete)

	admin.HandleFunc("/upload", h.uploadImage).Methods(http.MethodPost)

	if h.ImagesDir != "" {
		fs := http.StripPrefix("/images/", http.FileServer(http.Dir(h.ImagesDir)))
		r.PathPrefix("/images/").Handler(noDirListing(fs)).Methods(http.MethodGet, http.MethodHead)
	}

	return r
}

func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// pathID parses the {id} route variable; the route pattern guarantees
// digits, so only overflow can fail.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil && id > 0
}
