package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/dmitrijs2005/carvingsite/internal/common"
	"github.com/dmitrijs2005/carvingsite/internal/logging"
	"github.com/dmitrijs2005/carvingsite/internal/server/auth"
	"github.com/dmitrijs2005/carvingsite/internal/server/models"
	"github.com/dmitrijs2005/carvingsite/internal/server/services"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

const testSecret = "test-secret"

type fakeAuth struct {
	tokens *auth.TokenService
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (string, error) {
	if username != "admin" || password != "pw" {
		return "", common.ErrorUnauthorized
	}
	return f.tokens.Issue(auth.Principal{Username: username})
}

func (f *fakeAuth) Verify(token string) (*auth.Principal, error) {
	return f.tokens.Verify(token)
}

type fakeEvents struct {
	list   func() ([]models.Event, error)
	get    func(id int64) (*models.Event, error)
	create func(e *models.Event) (*models.Event, error)
	update func(id int64, p models.EventPatch) (*models.Event, error)
	delete func(id int64) (bool, services.CleanupResult, error)
}

func (f *fakeEvents) List(context.Context) ([]models.Event, error) { return f.list() }
func (f *fakeEvents) Get(_ context.Context, id int64) (*models.Event, error) {
	return f.get(id)
}
func (f *fakeEvents) Create(_ context.Context, e *models.Event) (*models.Event, error) {
	return f.create(e)
}
func (f *fakeEvents) Update(_ context.Context, id int64, p models.EventPatch) (*models.Event, error) {
	return f.update(id, p)
}
func (f *fakeEvents) Delete(_ context.Context, id int64) (bool, services.CleanupResult, error) {
	return f.delete(id)
}

type fakeGallery struct {
	list    func() ([]models.GalleryImage, error)
	create  func(img *models.GalleryImage) (*models.GalleryImage, error)
	delete  func(id int64) (bool, services.CleanupResult, error)
	reorder func(ids []int64) ([]models.GalleryImage, error)
}

func (f *fakeGallery) List(context.Context) ([]models.GalleryImage, error) { return f.list() }
func (f *fakeGallery) Get(context.Context, int64) (*models.GalleryImage, error) {
	return nil, common.ErrorNotFound
}
func (f *fakeGallery) Create(_ context.Context, img *models.GalleryImage) (*models.GalleryImage, error) {
	return f.create(img)
}
func (f *fakeGallery) Update(context.Context, int64, models.GalleryImagePatch) (*models.GalleryImage, error) {
	return nil, common.ErrorNotFound
}
func (f *fakeGallery) Delete(_ context.Context, id int64) (bool, services.CleanupResult, error) {
	return f.delete(id)
}
func (f *fakeGallery) Reorder(_ context.Context, ids []int64) ([]models.GalleryImage, error) {
	return f.reorder(ids)
}

type fakeIngester struct {
	category, filename string
	data               []byte
	path               string
	err                error
}

func (f *fakeIngester) Ingest(_ context.Context, category, filename string, r io.Reader) (string, error) {
	f.category, f.filename = category, filename
	f.data, _ = io.ReadAll(r)
	return f.path, f.err
}

type fakeContact struct {
	got *services.ContactRequest
	err error
}

func (f *fakeContact) Send(_ context.Context, req *services.ContactRequest) error {
	f.got = req
	return f.err
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

type testEnv struct {
	handlers *Handlers
	router   http.Handler
	tokens   *auth.TokenService
	events   *fakeEvents
	gallery  *fakeGallery
	ingester *fakeIngester
	contact  *fakeContact
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	tokens, err := auth.NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)

	env := &testEnv{
		tokens:   tokens,
		events:   &fakeEvents{},
		gallery:  &fakeGallery{},
		ingester: &fakeIngester{},
		contact:  &fakeContact{},
	}
	env.handlers = NewHandlers(nopLogger{}, &fakeAuth{tokens: tokens}, env.events, env.gallery,
		env.ingester, env.contact, fakePinger{})
	env.router = env.handlers.Router()
	return env
}

func (e *testEnv) token(t *testing.T) string {
	t.Helper()
	tok, err := e.tokens.Issue(auth.Principal{Username: "admin"})
	require.NoError(t, err)
	return tok
}

// do sends a request; a non-nil body is JSON-encoded unless it is already
// an io.Reader.
func (e *testEnv) do(t *testing.T, method, path, token string, body any, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		rdr = b
	default:
		buf, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(buf)
		contentType = "application/json"
	}

	req := httptest.NewRequest(method, path, rdr)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[errorResponse](t, rec).Error
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
