package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ProgressReporter shows how far a multi-file validation run has come.
type ProgressReporter interface {
	Start(total int)
	File(name string)
	Finish()
}

// barWidth is the number of cells in the rendered bar.
const barWidth = 30

// SimpleProgress renders a single line that is rewritten in place, so it
// should only write to a terminal-backed stream.
type SimpleProgress struct {
	mu      sync.Mutex
	total   int
	done    int
	lastLen int
	writer  io.Writer
}

// NewProgressReporter returns a reporter writing to w. A nil w defaults
// to os.Stderr, which keeps stdout clean for command results.
func NewProgressReporter(w io.Writer) ProgressReporter {
	if w == nil {
		w = os.Stderr
	}
	return &SimpleProgress{writer: w}
}

// Start begins a run over total files.
func (p *SimpleProgress) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = total
	p.done = 0
	p.render("")
}

// File advances the bar past one more file. The name is shown next to
// the bar so a slow run points at the document responsible.
func (p *SimpleProgress) File(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	p.render(name)
}

// Finish completes the bar and moves the cursor to the next line.
func (p *SimpleProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done = p.total
	p.render("")
	fmt.Fprintln(p.writer)
}

func (p *SimpleProgress) render(name string) {
	if p.total <= 0 {
		return
	}

	filled := p.done * barWidth / p.total
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	line := fmt.Sprintf("Validating [%s] %d/%d", bar, p.done, p.total)
	if name != "" {
		line += " " + shortenPath(name)
	}

	// Pad so a shorter line fully covers the previous one.
	visible := len([]rune(line))
	if pad := p.lastLen - visible; pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	p.lastLen = visible

	fmt.Fprint(p.writer, "\r"+line)
}

// shortenPath keeps the tail of a long path, which is the part that
// identifies the file.
func shortenPath(path string) string {
	const max = 40
	if len(path) <= max {
		return path
	}
	return "..." + path[len(path)-max+3:]
}
