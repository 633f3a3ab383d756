//go:build integration

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

// These tests exercise the built binary end to end: spawning it, feeding
// it real files and configs, and asserting on output, exit codes, and the
// metrics endpoint. They need the Go toolchain on PATH to build the
// binary on first use.

func TestWatchStartStop(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()

	configFile := filepath.Join(tmpDir, "config.yaml")
	writeConfig(t, configFile, `
logging:
  level: "info"
  format: "json"

history:
  enabled: false

watch:
  debounce_interval: 100ms

metrics:
  enabled: true
  port: 18090
`)

	sbomDir := filepath.Join(tmpDir, "sboms")
	if err := os.MkdirAll(sbomDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeSBOM(t, filepath.Join(sbomDir, "app.json"), validSBOM)

	binaryPath := buildBinary(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binaryPath, "watch", "--dir", sbomDir, "--config", configFile)
	cmd.Dir = tmpDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}
	defer func() {
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
	}()

	if !waitForEndpoint("http://127.0.0.1:18090/metrics", 10*time.Second) {
		t.Fatalf("watcher never served metrics\nStdout: %s\nStderr: %s", stdout.String(), stderr.String())
	}

	resp, err := http.Get("http://127.0.0.1:18090/metrics")
	if err != nil {
		t.Fatalf("metrics scrape failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}

	var body bytes.Buffer
	if _, err := body.ReadFrom(resp.Body); err != nil {
		t.Fatalf("failed to read metrics body: %v", err)
	}
	if !bytes.Contains(body.Bytes(), []byte("cyclonedx_watched_files")) {
		t.Errorf("expected cyclonedx_watched_files in metrics output, got: %s", body.String())
	}

	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		t.Errorf("failed to send SIGINT: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		// A clean exit or the shell's SIGINT status are both fine
		if err != nil {
			exitErr, ok := err.(*exec.ExitError)
			if !ok || exitErr.ExitCode() != 130 {
				t.Logf("shutdown output - Stdout: %s\nStderr: %s", stdout.String(), stderr.String())
				t.Errorf("unexpected shutdown error: %v", err)
			}
		}
	case <-time.After(5 * time.Second):
		t.Error("watcher did not shut down within 5 seconds")
	}
}

func TestValidationPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()

	validFile := filepath.Join(tmpDir, "valid.json")
	writeSBOM(t, validFile, validSBOM)

	invalidFile := filepath.Join(tmpDir, "invalid.json")
	writeSBOM(t, invalidFile, invalidSBOM)

	binaryPath := buildBinary(t)

	validCmd := exec.Command(binaryPath, "validate", "--file", validFile)
	validCmd.Dir = tmpDir
	output, err := validCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("validate failed on a well-formed document: %v\nOutput: %s", err, output)
	}
	if !bytes.Contains(output, []byte("valid")) {
		t.Errorf("expected 'valid' in validate output, got: %s", output)
	}

	invalidCmd := exec.Command(binaryPath, "validate", "--file", invalidFile)
	invalidCmd.Dir = tmpDir
	output, err = invalidCmd.CombinedOutput()
	if err == nil {
		t.Fatalf("validate passed a malformed document\nOutput: %s", output)
	}
	if !bytes.Contains(output, []byte("Invalid")) {
		t.Errorf("expected diagnostic message in output, got: %s", output)
	}

	jsonCmd := exec.Command(binaryPath, "validate", "--file", validFile, "--format", "json")
	jsonCmd.Dir = tmpDir
	jsonOutput, err := jsonCmd.Output()
	if err != nil {
		t.Fatalf("validate with JSON output failed: %v", err)
	}

	var results []map[string]interface{}
	if err := json.Unmarshal(jsonOutput, &results); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, jsonOutput)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0]["file"] == nil || results[0]["valid"] != true {
		t.Fatalf("JSON result missing required fields: %+v", results[0])
	}
}

func TestHistoryQueryPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "history.db")

	configFile := filepath.Join(tmpDir, "config.yaml")
	writeConfig(t, configFile, fmt.Sprintf(`
logging:
  level: "warn"
  format: "json"

history:
  enabled: true
  sqlite:
    path: "%s"
`, dbPath))

	sbomFile := filepath.Join(tmpDir, "app.json")
	writeSBOM(t, sbomFile, validSBOM)

	binaryPath := buildBinary(t)

	// The recorder drains before the process exits, so the archived
	// record is durable once validate returns
	validateCmd := exec.Command(binaryPath, "validate",
		"--file", sbomFile,
		"--config", configFile)
	validateCmd.Dir = tmpDir

	output, err := validateCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("validate failed: %v\nOutput: %s", err, output)
	}

	queryCmd := exec.Command(binaryPath, "history", "list",
		"--config", configFile,
		"--limit", "10",
		"--format", "json")
	queryCmd.Dir = tmpDir

	jsonOutput, err := queryCmd.Output()
	if err != nil {
		t.Fatalf("history list failed: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(jsonOutput, &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, jsonOutput)
	}

	records, ok := result["records"].([]interface{})
	if !ok {
		t.Fatalf("JSON output missing 'records' field: %+v", result)
	}
	if len(records) == 0 {
		t.Error("expected the validate run to appear in history, got none")
	}
}

func TestVersionCommand(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	binaryPath := buildBinary(t)

	cmd := exec.Command(binaryPath, "version")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("version command failed: %v\nOutput: %s", err, output)
	}
	if !bytes.Contains(output, []byte("cyclonedx")) {
		t.Errorf("version output should contain 'cyclonedx', got: %s", output)
	}
}

func TestStrictModeExitCode(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()

	sbomFile := filepath.Join(tmpDir, "deprecated.json")
	writeSBOM(t, sbomFile, deprecatedSBOM)

	binaryPath := buildBinary(t)

	// A document with only warnings passes by default
	cmd := exec.Command(binaryPath, "validate", "--file", sbomFile)
	cmd.Dir = tmpDir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("validate failed on a document with only warnings: %v\nOutput: %s", err, output)
	}
	if !bytes.Contains(output, []byte("deprecated")) {
		t.Errorf("expected deprecation warning in output, got: %s", output)
	}

	// --strict promotes the warning to a failure
	strictCmd := exec.Command(binaryPath, "validate", "--file", sbomFile, "--strict")
	strictCmd.Dir = tmpDir
	output, err = strictCmd.CombinedOutput()
	if err == nil {
		t.Errorf("validate --strict passed a document with warnings\nOutput: %s", output)
	}
}

const validSBOM = `{
  "bomFormat": "CycloneDX",
  "specVersion": "1.5",
  "serialNumber": "urn:uuid:3e671687-395b-41f5-a30f-a58921a69b79",
  "version": 1,
  "components": [
    {
      "type": "library",
      "bom-ref": "pkg:golang/github.com/goccy/go-json@0.10.5",
      "name": "go-json",
      "version": "0.10.5"
    }
  ]
}
`

const invalidSBOM = `{
  "bomFormat": "SPDX",
  "specVersion": "1.5",
  "version": 1,
  "components": [
    {
      "type": "middleware",
      "name": ""
    }
  ]
}
`

const deprecatedSBOM = `{
  "bomFormat": "CycloneDX",
  "specVersion": "1.5",
  "version": 1,
  "components": [
    {
      "type": "library",
      "name": "legacy-lib",
      "modified": false
    }
  ]
}
`

// buildBinary compiles cmd/cyclonedx once and reuses the result across
// tests in the run.
func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := "../bin/cyclonedx"
	if _, err := os.Stat(binaryPath); err == nil {
		return binaryPath
	}

	cmd := exec.Command("go", "build", "-o", binaryPath, "../cmd/cyclonedx")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build cyclonedx: %v\nOutput: %s", err, output)
	}
	return binaryPath
}

// waitForEndpoint polls url until it answers 200 or the timeout passes.
func waitForEndpoint(url string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: 1 * time.Second}

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return true
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(100 * time.Millisecond)
	}
	return false
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
}

func writeSBOM(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write SBOM file: %v", err)
	}
}
