package cli

import (
	"os"
	"syscall"
	"testing"
	"time"
)

func TestWaitForShutdownStaysQuiet(t *testing.T) {
	sigChan := WaitForShutdown()
	if sigChan == nil {
		t.Fatal("WaitForShutdown() returned nil channel")
	}

	select {
	case sig := <-sigChan:
		t.Errorf("received %v before any signal was sent", sig)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWaitForShutdownDeliversSignal(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping signal delivery test in short mode")
	}

	sigChan := WaitForShutdown()

	proc, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatalf("FindProcess: %v", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		t.Fatalf("sending SIGTERM: %v", err)
	}

	select {
	case sig := <-sigChan:
		if sig != syscall.SIGTERM {
			t.Errorf("received %v, want SIGTERM", sig)
		}
	case <-time.After(2 * time.Second):
		t.Skip("Signal not delivered within timeout (this is okay)")
	}
}
