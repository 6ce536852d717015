package authz

import "testing"

var allRoles = []Role{RoleViewer, RoleEditor, RoleAdmin}

func TestAtLeast_Matrix(t *testing.T) {
	cases := []struct {
		role, required Role
		want           bool
	}{
		{RoleViewer, RoleViewer, true},
		{RoleViewer, RoleEditor, false},
		{RoleViewer, RoleAdmin, false},
		{RoleEditor, RoleViewer, true},
		{RoleEditor, RoleEditor, true},
		{RoleEditor, RoleAdmin, false},
		{RoleAdmin, RoleViewer, true},
		{RoleAdmin, RoleEditor, true},
		{RoleAdmin, RoleAdmin, true},
	}
	for _, c := range cases {
		if got := c.role.AtLeast(c.required); got != c.want {
			t.Fatalf("AtLeast(%s, %s) = %v, want %v", c.role, c.required, got, c.want)
		}
		// AtLeast es exactamente la comparación de rangos
		if got := c.role.AtLeast(c.required); got != (int(c.role) >= int(c.required)) {
			t.Fatalf("AtLeast(%s, %s) no coincide con rank(%d) >= rank(%d)", c.role, c.required, c.role, c.required)
		}
	}
}

func TestAtLeast_Reflexive(t *testing.T) {
	for _, r := range allRoles {
		if !r.AtLeast(r) {
			t.Fatalf("AtLeast(%s, %s) debería ser true", r, r)
		}
	}
}

func TestAtLeast_Transitive(t *testing.T) {
	for _, a := range allRoles {
		for _, b := range allRoles {
			for _, c := range allRoles {
				if a.AtLeast(b) && b.AtLeast(c) && !a.AtLeast(c) {
					t.Fatalf("transitividad rota: %s>=%s y %s>=%s pero no %s>=%s", a, b, b, c, a, c)
				}
			}
		}
	}
}

func TestInvoicePredicates(t *testing.T) {
	cases := []struct {
		role                 Role
		create, update, del  bool
	}{
		{RoleViewer, false, false, false},
		{RoleEditor, true, true, false},
		{RoleAdmin, true, true, true},
	}
	for _, c := range cases {
		if got := CanCreateInvoice(c.role); got != c.create {
			t.Fatalf("CanCreateInvoice(%s) = %v, want %v", c.role, got, c.create)
		}
		if got := CanUpdateInvoice(c.role); got != c.update {
			t.Fatalf("CanUpdateInvoice(%s) = %v, want %v", c.role, got, c.update)
		}
		if got := CanDeleteInvoice(c.role); got != c.del {
			t.Fatalf("CanDeleteInvoice(%s) = %v, want %v", c.role, got, c.del)
		}
	}
}

// Create y update comparten umbral (editor); delete es estrictamente más
// restrictivo: existe un rol (editor) donde update pasa y delete no.
func TestInvoicePredicates_Thresholds(t *testing.T) {
	for _, r := range allRoles {
		if CanCreateInvoice(r) != CanUpdateInvoice(r) {
			t.Fatalf("create y update divergen para %s", r)
		}
		if CanDeleteInvoice(r) && !CanUpdateInvoice(r) {
			t.Fatalf("delete permitido sin update para %s", r)
		}
	}
	if !CanUpdateInvoice(RoleEditor) || CanDeleteInvoice(RoleEditor) {
		t.Fatal("editor debería poder update pero no delete")
	}
}

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"viewer":  RoleViewer,
		"editor":  RoleEditor,
		"admin":   RoleAdmin,
		"":        RoleViewer,
		"unknown": RoleViewer,
		"ADMIN":   RoleViewer, // case-sensitive: la sesión guarda el nombre canónico
	}
	for in, want := range cases {
		if got := ParseRole(in); got != want {
			t.Fatalf("ParseRole(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestRoleString_RoundTrip(t *testing.T) {
	for _, r := range allRoles {
		if got := ParseRole(r.String()); got != r {
			t.Fatalf("ParseRole(%s.String()) = %s", r, got)
		}
	}
}
