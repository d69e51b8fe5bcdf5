package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/apollohq/wireframe-to-code-backend/internal/config"
	"github.com/apollohq/wireframe-to-code-backend/internal/domain"
	"github.com/apollohq/wireframe-to-code-backend/internal/inference"
	"github.com/apollohq/wireframe-to-code-backend/internal/services"
)

//
// Service fakes
//

type fakeGenSvc struct {
	createFn func(context.Context, services.CreateInput) (*domain.WireframeRecord, error)
	getFn    func(context.Context, string) (*domain.WireframeRecord, error)
	listFn   func(context.Context, string) ([]domain.WireframeRecord, error)
	updateFn func(context.Context, string, string) error
	deleteFn func(context.Context, string) error
}

func (f *fakeGenSvc) Create(ctx context.Context, in services.CreateInput) (*domain.WireframeRecord, error) {
	if f.createFn == nil {
		return nil, errors.New("unexpected Create")
	}
	return f.createFn(ctx, in)
}

func (f *fakeGenSvc) Get(ctx context.Context, uid string) (*domain.WireframeRecord, error) {
	if f.getFn == nil {
		return nil, errors.New("unexpected Get")
	}
	return f.getFn(ctx, uid)
}

func (f *fakeGenSvc) ListByOwner(ctx context.Context, email string) ([]domain.WireframeRecord, error) {
	if f.listFn == nil {
		return nil, errors.New("unexpected ListByOwner")
	}
	return f.listFn(ctx, email)
}

func (f *fakeGenSvc) UpdateCode(ctx context.Context, uid, code string) error {
	if f.updateFn == nil {
		return errors.New("unexpected UpdateCode")
	}
	return f.updateFn(ctx, uid, code)
}

func (f *fakeGenSvc) Delete(ctx context.Context, uid string) error {
	if f.deleteFn == nil {
		return errors.New("unexpected Delete")
	}
	return f.deleteFn(ctx, uid)
}

type fakeUserSvc struct {
	registerFn func(context.Context, string, string) (*domain.UserAccount, error)
	profileFn  func(context.Context, string) (*domain.UserAccount, error)
}

func (f *fakeUserSvc) Register(ctx context.Context, email, name string) (*domain.UserAccount, error) {
	return f.registerFn(ctx, email, name)
}

func (f *fakeUserSvc) Profile(ctx context.Context, email string) (*domain.UserAccount, error) {
	return f.profileFn(ctx, email)
}

type fakeEnhanceSvc struct {
	enhanceFn func(context.Context, string) (string, bool, error)
}

func (f *fakeEnhanceSvc) Enhance(ctx context.Context, prompt string) (string, bool, error) {
	return f.enhanceFn(ctx, prompt)
}

// fakeStream records the last request and emits canned deltas. A non-nil err
// is returned after emitting errAfter deltas.
type fakeStream struct {
	deltas   []string
	err      error
	errAfter int

	gotModel  string
	gotSystem string
	gotParts  []inference.Part
}

func (f *fakeStream) StreamChat(ctx context.Context, model, system string, parts []inference.Part, emit func(string) error) error {
	f.gotModel, f.gotSystem, f.gotParts = model, system, parts
	for i, d := range f.deltas {
		if f.err != nil && i == f.errAfter {
			return f.err
		}
		if err := emit(d); err != nil {
			return err
		}
	}
	if f.err != nil && f.errAfter >= len(f.deltas) {
		return f.err
	}
	return nil
}

// fakeObjectStore is an in-memory storage.Store.
type fakeObjectStore struct {
	objects map[string][]byte
	saveErr error
	seq     int
}

func (f *fakeObjectStore) Save(_ context.Context, ext string, r io.Reader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.seq++
	url := "mem://" + strings.Repeat("x", f.seq) + ext
	f.objects[url] = data
	return url, nil
}

func (f *fakeObjectStore) Open(_ context.Context, url string) (io.ReadCloser, error) {
	data, ok := f.objects[url]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeObjectStore) Delete(_ context.Context, url string) error {
	delete(f.objects, url)
	return nil
}

func (f *fakeObjectStore) Owns(url string) bool { return strings.HasPrefix(url, "mem://") }

//
// Router scaffolding
//

type handlerDeps struct {
	gen     *fakeGenSvc
	user    *fakeUserSvc
	enhance *fakeEnhanceSvc
	stream  *fakeStream
	store   *fakeObjectStore
}

func newHandlerRouter(t *testing.T, d handlerDeps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if d.gen == nil {
		d.gen = &fakeGenSvc{}
	}
	if d.user == nil {
		d.user = &fakeUserSvc{}
	}
	if d.enhance == nil {
		d.enhance = &fakeEnhanceSvc{}
	}
	if d.stream == nil {
		d.stream = &fakeStream{}
	}
	if d.store == nil {
		d.store = &fakeObjectStore{}
	}

	h := New(d.gen, d.user, d.enhance, d.stream, d.store,
		"system prompt", 10<<20, config.EnhanceConfig{MinChars: 100, MaxChars: 1000})

	r := gin.New()
	r.POST("/api/ai-process", h.AIProcess)
	r.POST("/api/wireframe-to-code", h.CreateGeneration)
	r.GET("/api/wireframe-to-code", h.GetGeneration)
	r.PUT("/api/wireframe-to-code", h.UpdateGenerationCode)
	r.DELETE("/api/wireframe-to-code", h.DeleteGeneration)
	r.POST("/api/enhance-prompt", h.EnhancePrompt)
	r.POST("/api/upload", h.Upload)
	r.GET("/api/models", h.ListModels)
	r.POST("/api/user", h.RegisterUser)
	r.GET("/api/user", h.GetUser)
	return r
}

// newHandlerRouterWithImageCap mirrors newHandlerRouter with a tiny image
// ceiling for oversize-rejection tests.
func newHandlerRouterWithImageCap(t *testing.T, maxImageBytes int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := New(&fakeGenSvc{}, &fakeUserSvc{}, &fakeEnhanceSvc{}, &fakeStream{}, &fakeObjectStore{},
		"system prompt", maxImageBytes, config.EnhanceConfig{MinChars: 100, MaxChars: 1000})

	r := gin.New()
	r.POST("/api/ai-process", h.AIProcess)
	r.POST("/api/upload", h.Upload)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error envelope: %v (body %q)", err, w.Body.String())
	}
	return resp
}

func multipartImageBody(t *testing.T, fields map[string]string, imageName string, imageData []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if imageName != "" {
		part, err := mw.CreateFormFile("image", imageName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(imageData); err != nil {
			t.Fatalf("write image: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func checkStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body %q)", w.Code, want, w.Body.String())
	}
}
