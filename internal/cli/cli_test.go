package cli

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNew(t *testing.T) {
	c := New(io.Discard, LogInfo)

	if c.Logger == nil {
		t.Fatal("New() returned CLI with nil logger")
	}
	if c.Config.Server.Addr == "" {
		t.Error("New() should seed the default config")
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.SetLogLevel(LogDebug)

	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want %v", c.Logger.GetLevel(), log.DebugLevel)
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != appName {
		t.Errorf("root.Use = %q, want %q", root.Use, appName)
	}

	want := []string{"resolve", "verify", "graph", "serve", "tui", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestResolveCommandFlags(t *testing.T) {
	c := New(io.Discard, LogInfo)
	cmd := c.resolveCommand()

	for _, name := range []string{"focus", "all", "store", "json", "refresh", "no-recovery", "no-cache"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("resolve command missing flag %q", name)
		}
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if dir == "" {
		t.Error("cacheDir() returned empty path")
	}
}
