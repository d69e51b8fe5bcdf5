package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/apollohq/wireframe-to-code-backend/internal/domain"
	"github.com/apollohq/wireframe-to-code-backend/internal/http/middleware"
	"github.com/apollohq/wireframe-to-code-backend/internal/inference"
	"github.com/apollohq/wireframe-to-code-backend/internal/services"
)

func createPayload() map[string]string {
	return map[string]string{
		"uid":         "141add05-4415-4938-b5a1-17e0d3171aff",
		"description": "a login page",
		"imageUrl":    "mem://x.png",
		"model":       inference.ModelDeepseek,
		"email":       "dev@example.com",
	}
}

func TestCreateGeneration_Success(t *testing.T) {
	gen := &fakeGenSvc{
		createFn: func(_ context.Context, in services.CreateInput) (*domain.WireframeRecord, error) {
			if in.Email != "dev@example.com" || in.Model != inference.ModelDeepseek {
				t.Fatalf("input = %+v", in)
			}
			return &domain.WireframeRecord{ID: 7, UID: in.UID}, nil
		},
	}
	r := newHandlerRouter(t, handlerDeps{gen: gen})

	w := doJSON(t, r, http.MethodPost, "/api/wireframe-to-code", createPayload())
	checkStatus(t, w, http.StatusOK)

	var resp CreateGenerationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != 7 || resp.UID != "141add05-4415-4938-b5a1-17e0d3171aff" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestCreateGeneration_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"insufficient credits", services.ErrInsufficientCredits, http.StatusPaymentRequired, ErrCodeInsufficientCredits, "Not enough credits"},
		{"unknown user", services.ErrUserNotFound, http.StatusNotFound, ErrCodeNotFound, "user not found"},
		{"inference failure", services.ErrInferenceFailed, http.StatusInternalServerError, ErrCodeAIProcessingFailed, ""},
		{"bad model", services.ErrInvalidModel, http.StatusBadRequest, ErrCodeBadRequest, ""},
		{"other", errors.New("disk on fire"), http.StatusInternalServerError, ErrCodeInternal, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &fakeGenSvc{
				createFn: func(context.Context, services.CreateInput) (*domain.WireframeRecord, error) {
					return nil, tc.err
				},
			}
			r := newHandlerRouter(t, handlerDeps{gen: gen})

			w := doJSON(t, r, http.MethodPost, "/api/wireframe-to-code", createPayload())
			checkStatus(t, w, tc.wantStatus)
			resp := decodeError(t, w)
			if resp.Code != tc.wantCode {
				t.Fatalf("code = %q, want %q", resp.Code, tc.wantCode)
			}
			if tc.wantMsg != "" && resp.Message != tc.wantMsg {
				t.Fatalf("message = %q, want %q", resp.Message, tc.wantMsg)
			}
		})
	}
}

func TestCreateGeneration_MissingFields(t *testing.T) {
	r := newHandlerRouter(t, handlerDeps{})

	payload := createPayload()
	delete(payload, "email")
	w := doJSON(t, r, http.MethodPost, "/api/wireframe-to-code", payload)
	checkStatus(t, w, http.StatusBadRequest)
	if resp := decodeError(t, w); resp.Code != ErrCodeBadRequest {
		t.Fatalf("code = %q", resp.Code)
	}
}

func TestGetGeneration_ByUID(t *testing.T) {
	gen := &fakeGenSvc{
		getFn: func(_ context.Context, uid string) (*domain.WireframeRecord, error) {
			if uid != "u-1" {
				return nil, services.ErrRecordNotFound
			}
			return &domain.WireframeRecord{ID: 1, UID: "u-1", Code: "<html/>"}, nil
		},
	}
	r := newHandlerRouter(t, handlerDeps{gen: gen})

	w := doJSON(t, r, http.MethodGet, "/api/wireframe-to-code?uid=u-1", nil)
	checkStatus(t, w, http.StatusOK)
	var rec domain.WireframeRecord
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.UID != "u-1" || rec.Code != "<html/>" {
		t.Fatalf("rec = %+v", rec)
	}

	w = doJSON(t, r, http.MethodGet, "/api/wireframe-to-code?uid=missing", nil)
	checkStatus(t, w, http.StatusNotFound)
	if resp := decodeError(t, w); resp.Message != "no record found" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestGetGeneration_ByEmail(t *testing.T) {
	gen := &fakeGenSvc{
		listFn: func(_ context.Context, email string) ([]domain.WireframeRecord, error) {
			if email == "empty@example.com" {
				return nil, nil
			}
			return []domain.WireframeRecord{{ID: 2, UID: "b"}, {ID: 1, UID: "a"}}, nil
		},
	}
	r := newHandlerRouter(t, handlerDeps{gen: gen})

	w := doJSON(t, r, http.MethodGet, "/api/wireframe-to-code?email=dev@example.com", nil)
	checkStatus(t, w, http.StatusOK)
	var list []domain.WireframeRecord
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 2 || list[0].ID != 2 {
		t.Fatalf("list = %+v", list)
	}

	// A nil listing must serialize as [], not null.
	w = doJSON(t, r, http.MethodGet, "/api/wireframe-to-code?email=empty@example.com", nil)
	checkStatus(t, w, http.StatusOK)
	if body := w.Body.String(); body != "[]" {
		t.Fatalf("empty listing body = %q", body)
	}
}

func TestGetGeneration_NoParams(t *testing.T) {
	r := newHandlerRouter(t, handlerDeps{})
	w := doJSON(t, r, http.MethodGet, "/api/wireframe-to-code", nil)
	checkStatus(t, w, http.StatusNotFound)
	if resp := decodeError(t, w); resp.Message != "no record found" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestUpdateGenerationCode(t *testing.T) {
	gen := &fakeGenSvc{
		updateFn: func(_ context.Context, uid, code string) error {
			if uid == "missing" {
				return services.ErrRecordNotFound
			}
			if code != "<div/>" {
				t.Fatalf("code = %q", code)
			}
			return nil
		},
	}
	r := newHandlerRouter(t, handlerDeps{gen: gen})

	w := doJSON(t, r, http.MethodPut, "/api/wireframe-to-code", map[string]string{"uid": "u-1", "codeResp": "<div/>"})
	checkStatus(t, w, http.StatusOK)
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["uid"] != "u-1" {
		t.Fatalf("resp = %v", resp)
	}

	w = doJSON(t, r, http.MethodPut, "/api/wireframe-to-code", map[string]string{"uid": "missing", "codeResp": "<div/>"})
	checkStatus(t, w, http.StatusNotFound)

	w = doJSON(t, r, http.MethodPut, "/api/wireframe-to-code", map[string]string{"uid": "u-1"})
	checkStatus(t, w, http.StatusBadRequest)
}

func TestDeleteGeneration(t *testing.T) {
	gen := &fakeGenSvc{
		deleteFn: func(_ context.Context, uid string) error {
			switch uid {
			case "missing":
				return services.ErrRecordNotFound
			case "stuck":
				return services.ErrUploadFailed
			}
			return nil
		},
	}
	r := newHandlerRouter(t, handlerDeps{gen: gen})

	w := doJSON(t, r, http.MethodDelete, "/api/wireframe-to-code?uid=u-1", nil)
	checkStatus(t, w, http.StatusOK)
	var resp map[string]bool
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp["success"] {
		t.Fatalf("resp = %v", resp)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/wireframe-to-code", nil)
	checkStatus(t, w, http.StatusBadRequest)
	if resp := decodeError(t, w); resp.Message != "UID is required" {
		t.Fatalf("message = %q", resp.Message)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/wireframe-to-code?uid=missing", nil)
	checkStatus(t, w, http.StatusNotFound)

	w = doJSON(t, r, http.MethodDelete, "/api/wireframe-to-code?uid=stuck", nil)
	checkStatus(t, w, http.StatusInternalServerError)
	if resp := decodeError(t, w); resp.Code != ErrCodeDeleteFailed {
		t.Fatalf("code = %q", resp.Code)
	}
}

func TestOutcomeFor(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, middleware.OutcomeSuccess},
		{services.ErrInsufficientCredits, middleware.OutcomeInsufficientCredits},
		{services.ErrInferenceFailed, middleware.OutcomeInferenceFailed},
		{services.ErrMissingUID, middleware.OutcomeInvalid},
		{services.ErrInvalidModel, middleware.OutcomeInvalid},
		{errors.New("boom"), middleware.OutcomeError},
	}
	for _, tc := range cases {
		if got := outcomeFor(tc.err); got != tc.want {
			t.Fatalf("outcomeFor(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
