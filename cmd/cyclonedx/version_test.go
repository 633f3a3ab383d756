package main

import (
	"fmt"
	"runtime"
	"strings"
	"testing"
)

func TestVersionBanner(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	}()

	Version = "1.2.3"
	GitCommit = "abc123"
	BuildDate = "2026-08-25T10:00:00Z"

	banner := versionBanner()

	if !strings.HasPrefix(banner, "cyclonedx 1.2.3\n") {
		t.Errorf("banner should lead with the tool version: %q", banner)
	}
	for _, want := range []string{
		"abc123",
		"2026-08-25T10:00:00Z",
		runtime.Version(),
		fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	} {
		if !strings.Contains(banner, want) {
			t.Errorf("banner missing %q:\n%s", want, banner)
		}
	}
	if !strings.HasSuffix(banner, "\n") {
		t.Error("banner should end with a newline")
	}
}

func TestVersionCommandRegistered(t *testing.T) {
	if versionCmd.Use != "version" {
		t.Errorf("versionCmd.Use = %q, want %q", versionCmd.Use, "version")
	}
	if versionCmd.Run == nil {
		t.Error("versionCmd.Run should not be nil")
	}

	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd == versionCmd {
			found = true
			break
		}
	}
	if !found {
		t.Error("version command not registered on the root command")
	}
}
