package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/apollohq/wireframe-to-code-backend/internal/inference"
)

func postUpload(t *testing.T, r http.Handler, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, ct := multipartImageBody(t, nil, filename, data)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpload_Success(t *testing.T) {
	store := &fakeObjectStore{}
	r := newHandlerRouter(t, handlerDeps{store: store})

	w := postUpload(t, r, "wire.jpg", []byte("jpeg-bytes"))
	checkStatus(t, w, http.StatusOK)

	var resp UploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasSuffix(resp.ImageURL, ".jpg") {
		t.Fatalf("imageUrl = %q", resp.ImageURL)
	}
	if string(store.objects[resp.ImageURL]) != "jpeg-bytes" {
		t.Fatalf("stored bytes = %q", store.objects[resp.ImageURL])
	}
}

func TestUpload_UnknownExtensionDefaultsToPNG(t *testing.T) {
	r := newHandlerRouter(t, handlerDeps{})

	w := postUpload(t, r, "wire.bmp", []byte("x"))
	checkStatus(t, w, http.StatusOK)

	var resp UploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasSuffix(resp.ImageURL, ".png") {
		t.Fatalf("imageUrl = %q", resp.ImageURL)
	}
}

func TestUpload_MissingFile(t *testing.T) {
	r := newHandlerRouter(t, handlerDeps{})

	body, ct := multipartImageBody(t, map[string]string{"other": "field"}, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	checkStatus(t, w, http.StatusBadRequest)
}

func TestUpload_Oversize(t *testing.T) {
	r := newHandlerRouterWithImageCap(t, 8)

	w := postUpload(t, r, "big.png", bytes.Repeat([]byte("a"), 64))
	checkStatus(t, w, http.StatusRequestEntityTooLarge)
	if resp := decodeError(t, w); resp.Code != ErrCodePayloadTooLarge {
		t.Fatalf("code = %q", resp.Code)
	}
}

func TestUpload_StoreFailure(t *testing.T) {
	store := &fakeObjectStore{saveErr: errors.New("disk full")}
	r := newHandlerRouter(t, handlerDeps{store: store})

	w := postUpload(t, r, "wire.png", []byte("x"))
	checkStatus(t, w, http.StatusInternalServerError)
	if resp := decodeError(t, w); resp.Code != ErrCodeUploadFailed {
		t.Fatalf("code = %q", resp.Code)
	}
}

func TestListModels(t *testing.T) {
	r := newHandlerRouter(t, handlerDeps{})

	w := doJSON(t, r, http.MethodGet, "/api/models", nil)
	checkStatus(t, w, http.StatusOK)

	var models []inference.ModelInfo
	if err := json.Unmarshal(w.Body.Bytes(), &models); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(models) != 3 || models[0].Model != inference.ModelDeepseek {
		t.Fatalf("models = %+v", models)
	}
}
