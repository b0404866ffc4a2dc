package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const testKey = "0123456789abcdef0123456789abcdef"

func newVerifier(t *testing.T) *auth.Verifier {
	t.Helper()
	v, err := auth.NewVerifier(testKey, zap.NewNop())
	if err != nil {
		t.Fatalf("NewVerifier failed: %v", err)
	}
	return v
}

func callerEcho(t *testing.T) (http.Handler, *auth.Caller) {
	t.Helper()
	got := &auth.Caller{}
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, ok := auth.CurrentCaller(r); ok {
			*got = *c
		}
		w.WriteHeader(http.StatusOK)
	})
	return h, got
}

func TestNewVerifier_RejectsShortKey(t *testing.T) {
	if _, err := auth.NewVerifier("short", zap.NewNop()); err == nil {
		t.Error("expected error for short signing key")
	}
}

func TestLoadCaller_ValidToken(t *testing.T) {
	v := newVerifier(t)
	id := primitive.NewObjectID()

	token, err := v.Token(id.Hex())
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}

	echo, got := callerEcho(t)
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(auth.HeaderCallerToken, token)
	rec := httptest.NewRecorder()

	v.LoadCaller(echo).ServeHTTP(rec, req)

	if got.OID != id {
		t.Errorf("caller id: got %v, want %v", got.OID, id)
	}
}

func TestLoadCaller_TamperedToken(t *testing.T) {
	v := newVerifier(t)

	token, err := v.Token(primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}

	echo, got := callerEcho(t)
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(auth.HeaderCallerToken, token+"x")
	rec := httptest.NewRecorder()

	v.LoadCaller(echo).ServeHTTP(rec, req)

	if got.ID != "" {
		t.Error("expected tampered token to be dropped")
	}
}

func TestLoadCaller_MalformedID(t *testing.T) {
	v := newVerifier(t)

	token, err := v.Token("not-an-object-id")
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}

	echo, got := callerEcho(t)
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(auth.HeaderCallerToken, token)
	rec := httptest.NewRecorder()

	v.LoadCaller(echo).ServeHTTP(rec, req)

	if got.ID != "" {
		t.Error("expected malformed caller id to be dropped")
	}
}

func TestRequireCaller_NoCaller(t *testing.T) {
	h := auth.RequireCaller(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached without a caller")
	}))

	req := httptest.NewRequest("POST", "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireCaller_WithTestCaller(t *testing.T) {
	reached := false
	h := auth.RequireCaller(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	req := auth.WithTestCaller(httptest.NewRequest("POST", "/", nil), primitive.NewObjectID())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !reached {
		t.Error("expected handler to be reached")
	}
}
