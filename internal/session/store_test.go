package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dropDatabas3/acmedash/internal/authz"
	"github.com/dropDatabas3/acmedash/internal/cache"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(cache.NewMemory("test", time.Minute), time.Hour)
}

func TestStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	sess := authz.Session{UserID: "u-1", Email: "delba@acme.dev", Role: "admin"}
	if err := st.Put(ctx, "tok-abc", sess); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := st.Get(ctx, "tok-abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.UserID != "u-1" || got.Role != "admin" {
		t.Fatalf("sesión inesperada: %+v", got)
	}

	// el token se guarda hasheado, no en claro
	if _, err := st.cache.Get(ctx, "sess:tok-abc"); err == nil {
		t.Fatal("el token no debe usarse como key en claro")
	}

	if err := st.Delete(ctx, "tok-abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err = st.Get(ctx, "tok-abc")
	if err != nil || got != nil {
		t.Fatalf("post-delete: sess=%+v err=%v", got, err)
	}
}

func TestStore_UnknownTokenIsAnonymous(t *testing.T) {
	st := newTestStore(t)
	got, err := st.Get(context.Background(), "never-issued")
	if err != nil {
		t.Fatalf("miss no es error: %v", err)
	}
	if got != nil {
		t.Fatalf("esperaba nil, got %+v", got)
	}
}

func TestCookieSource_Resolve(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	src := NewCookieSource(st, "acme_session")

	if err := st.Put(ctx, "tok-1", authz.Session{UserID: "u-9", Role: "editor"}); err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: "acme_session", Value: "tok-1"})
	sess, err := src.Resolve(ctx, r)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if sess == nil || sess.UserID != "u-9" || sess.Role != "editor" {
		t.Fatalf("sesión inesperada: %+v", sess)
	}

	// sin cookie => anónimo
	r2 := httptest.NewRequest("GET", "/", nil)
	sess, err = src.Resolve(ctx, r2)
	if err != nil || sess != nil {
		t.Fatalf("sin cookie: sess=%+v err=%v", sess, err)
	}
}

func TestMulti_BearerFirstThenCookie(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	if err := st.Put(ctx, "tok-cookie", authz.Session{UserID: "cookie-user", Role: "viewer"}); err != nil {
		t.Fatal(err)
	}
	src := Multi{NewJWTSource([]byte(testSecret), ""), NewCookieSource(st, "acme_session")}

	// sólo cookie presente => resuelve por cookie
	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: "acme_session", Value: "tok-cookie"})
	sess, err := src.Resolve(ctx, r)
	if err != nil || sess == nil || sess.UserID != "cookie-user" {
		t.Fatalf("multi cookie: sess=%+v err=%v", sess, err)
	}

	// nada presente => anónimo sin error
	sess, err = src.Resolve(ctx, httptest.NewRequest("GET", "/", nil))
	if err != nil || sess != nil {
		t.Fatalf("multi anónimo: sess=%+v err=%v", sess, err)
	}
}

func TestContextProvider(t *testing.T) {
	ctx := context.Background()
	var p ContextProvider

	sess, err := p.Current(ctx)
	if err != nil || sess != nil {
		t.Fatalf("contexto vacío: sess=%+v err=%v", sess, err)
	}

	want := &authz.Session{UserID: "u-1", Role: "admin"}
	sess, err = p.Current(ToContext(ctx, want))
	if err != nil || sess != want {
		t.Fatalf("contexto con sesión: sess=%+v err=%v", sess, err)
	}
}
