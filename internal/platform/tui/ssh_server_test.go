package tui

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewSSHServerUnknownScenario(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Scenario = "no-such-scenario"
	cfg.DBPath = filepath.Join(t.TempDir(), "runs.db")

	_, err := NewSSHServer(cfg, log.New(io.Discard))
	if err == nil || !strings.Contains(err.Error(), "unknown scenario") {
		t.Fatalf("expected unknown scenario error, got %v", err)
	}
}

func TestNewSSHServer(t *testing.T) {
	registerRunsTestScenario()
	dir := t.TempDir()

	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.Scenario = "runs-test"
	cfg.DBPath = filepath.Join(dir, "runs.db")
	cfg.HostKeyPath = filepath.Join(dir, "keys", "host_key")

	srv, err := NewSSHServer(cfg, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewSSHServer: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "keys")); err != nil {
		t.Errorf("host key directory not created: %v", err)
	}
	if srv.store == nil {
		t.Error("expected the runs database to be open")
	}

	if got := srv.sessionScenario(nil); got != "runs-test" {
		t.Errorf("no command: scenario = %q", got)
	}
	if got := srv.sessionScenario([]string{"bogus"}); got != "runs-test" {
		t.Errorf("unknown command: scenario = %q", got)
	}
	if srv.Sessions() != 0 || srv.Addr() != "127.0.0.1:0" {
		t.Errorf("sessions = %d, addr = %q", srv.Sessions(), srv.Addr())
	}

	if err := srv.Shutdown(); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
	if srv.store != nil {
		t.Error("Shutdown should close the runs database")
	}
}

func TestResolveHostKey(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := resolveHostKey("")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".arena", "host_key"); got != want {
		t.Errorf("resolveHostKey(\"\") = %q, expected %q", got, want)
	}
	if _, err := os.Stat(filepath.Join(home, ".arena")); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}
