package authz

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

// fakeProvider implementa SessionProvider para los tests.
type fakeProvider struct {
	sess  *Session
	err   error
	calls int
}

func (f *fakeProvider) Current(ctx context.Context) (*Session, error) {
	f.calls++
	return f.sess, f.err
}

func TestCurrentRole_NoSession(t *testing.T) {
	rs := NewResolver(&fakeProvider{})
	role, err := rs.CurrentRole(context.Background())
	if err != nil {
		t.Fatalf("sin sesión no debería fallar: %v", err)
	}
	if role != RoleViewer {
		t.Fatalf("sin sesión => viewer, got %s", role)
	}
}

func TestCurrentRole_SessionWithoutRole(t *testing.T) {
	rs := NewResolver(&fakeProvider{sess: &Session{UserID: "u1", Email: "u1@acme.dev"}})
	role, err := rs.CurrentRole(context.Background())
	if err != nil {
		t.Fatalf("sesión sin rol no debería fallar: %v", err)
	}
	if role != RoleViewer {
		t.Fatalf("sesión sin rol => viewer, got %s", role)
	}
}

func TestCurrentRole_ProviderError(t *testing.T) {
	boom := errors.New("redis down")
	rs := NewResolver(&fakeProvider{err: boom})
	_, err := rs.CurrentRole(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("el fallo del provider debe propagarse, got %v", err)
	}
}

func TestCurrentRole_OneReadPerCall(t *testing.T) {
	p := &fakeProvider{sess: &Session{UserID: "u1", Role: "editor"}}
	rs := NewResolver(p)
	if _, err := rs.CurrentRole(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := rs.CurrentRole(context.Background()); err != nil {
		t.Fatal(err)
	}
	// sin cache: cada resolución lee el provider
	if p.calls != 2 {
		t.Fatalf("esperaba 2 lecturas al provider, got %d", p.calls)
	}
}

func TestRequireRole_Denied(t *testing.T) {
	rs := NewResolver(&fakeProvider{sess: &Session{UserID: "u1", Role: "editor"}})
	role, err := rs.RequireRole(context.Background(), RoleAdmin)
	if err == nil {
		t.Fatal("editor pidiendo admin debería fallar")
	}
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("esperaba ErrAccessDenied, got %v", err)
	}
	var denied *AccessDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("esperaba *AccessDeniedError, got %T", err)
	}
	if denied.StatusCode() != http.StatusForbidden {
		t.Fatalf("StatusCode() = %d, want 403", denied.StatusCode())
	}
	if denied.Role != RoleEditor || denied.Required != RoleAdmin {
		t.Fatalf("error sin contexto: %+v", denied)
	}
	if role != RoleEditor {
		t.Fatalf("aun denegado, devuelve el rol resuelto: got %s", role)
	}
}

func TestRequireRole_Granted(t *testing.T) {
	rs := NewResolver(&fakeProvider{sess: &Session{UserID: "u1", Role: "admin"}})
	role, err := rs.RequireRole(context.Background(), RoleAdmin)
	if err != nil {
		t.Fatalf("admin pidiendo admin no debería fallar: %v", err)
	}
	if role != RoleAdmin {
		t.Fatalf("RequireRole devuelve el rol resuelto, got %s", role)
	}
}

// Anónimo y sesión-sin-rol colapsan en el mismo resultado: viewer denegado.
// No se distingue "no hay sesión" de "sesión sin privilegio" en el error.
func TestRequireRole_AnonymousEqualsRoleless(t *testing.T) {
	for _, p := range []*fakeProvider{
		{},                                  // sin sesión
		{sess: &Session{UserID: "u2"}},      // sesión sin rol
		{sess: &Session{Role: "whatever"}},  // rol desconocido
	} {
		rs := NewResolver(p)
		_, err := rs.RequireRole(context.Background(), RoleEditor)
		var denied *AccessDeniedError
		if !errors.As(err, &denied) || denied.Role != RoleViewer {
			t.Fatalf("esperaba denegación como viewer, got %v", err)
		}
	}
}

func TestRequireRole_ProviderErrorIsNotDenial(t *testing.T) {
	boom := errors.New("session backend unavailable")
	rs := NewResolver(&fakeProvider{err: boom})
	_, err := rs.RequireRole(context.Background(), RoleViewer)
	if err == nil || errors.Is(err, ErrAccessDenied) {
		t.Fatalf("un fallo de infraestructura no es una denegación: %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("el error original debe seguir envuelto: %v", err)
	}
}
