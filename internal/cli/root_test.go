package cli

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	want := []string{"marts", "datasets", "filters", "attributes", "query", "browse", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestRootCommandPersistentFlags(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	for _, name := range []string{"verbose", "server"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("root command is missing persistent flag --%s", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.SetLogLevel(log.DebugLevel)

	if got := c.Logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("log level = %v, want %v", got, log.DebugLevel)
	}
}
