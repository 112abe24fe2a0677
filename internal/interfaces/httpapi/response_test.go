package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/afriquefoot/matchlive/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatal("expected data field in envelope")
	}
}

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{"invalid input", fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput), http.StatusBadRequest, "invalidInput"},
		{"not found", fmt.Errorf("%w: nothing here", usecase.ErrNotFound), http.StatusNotFound, "notFound"},
		{"unauthorized", fmt.Errorf("%w: bad secret", usecase.ErrUnauthorized), http.StatusUnauthorized, "unauthorized"},
		{"not configured", fmt.Errorf("%w: secret missing", usecase.ErrNotConfigured), http.StatusInternalServerError, "notConfigured"},
		{"dependency down", fmt.Errorf("%w: feed", usecase.ErrDependencyUnavailable), http.StatusServiceUnavailable, "dependencyUnavailable"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "internalError"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}

			var body googleResponseEnvelope
			if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal response body: %v", err)
			}
			if body.Error == nil || len(body.Error.Errors) == 0 {
				t.Fatal("expected an error body")
			}
			if body.Error.Errors[0].Reason != tc.wantReason {
				t.Fatalf("reason = %q, want %q", body.Error.Errors[0].Reason, tc.wantReason)
			}
			if body.Error.Errors[0].Domain != errorDomain {
				t.Fatalf("domain = %q, want %q", body.Error.Errors[0].Domain, errorDomain)
			}
		})
	}
}
