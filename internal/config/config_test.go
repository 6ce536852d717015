package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("load vacío: %v", err)
	}
	if c.Server.Addr != ":8080" || c.Storage.Driver != "memory" || c.Cache.Kind != "memory" {
		t.Fatalf("defaults inesperados: %+v", c)
	}
	if c.SessionTTL() != 24*time.Hour || c.SummaryTTL() != 60*time.Second {
		t.Fatalf("TTLs por defecto: session=%s summary=%s", c.SessionTTL(), c.SummaryTTL())
	}
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
app:
  env: prod
server:
  addr: ":9090"
storage:
  driver: postgres
  dsn: "postgres://app@localhost/acme"
auth:
  jwt_secret: "yaml-secret"
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("AUTH_JWT_SECRET", "env-secret")
	t.Setenv("SERVER_ADDR", ":7070")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.App.Env != "prod" || c.Storage.DSN != "postgres://app@localhost/acme" {
		t.Fatalf("yaml no aplicado: %+v", c)
	}
	// env pisa yaml
	if c.Auth.JWTSecret != "env-secret" || c.Server.Addr != ":7070" {
		t.Fatalf("override de env no aplicado: %+v", c)
	}
}

func TestLoad_PostgresRequiresDSN(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  driver: postgres\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("postgres sin dsn debería fallar")
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  driver: oracle\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("driver desconocido debería fallar")
	}
}
