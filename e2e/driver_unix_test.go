//go:build e2e && unix

package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

// Key sequences understood by the editor
const (
	KeyEnter = "\r"
	KeyEsc   = "\x1b"
	KeyCtrlC = "\x03"
	KeyCtrlS = "\x13"
	KeySpace = " "
)

// ANSI escape sequence regex for normalization - covers CSI, OSC, charset, keypad modes
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` + // CSI sequences
		`(?:\x1b\][^\x07]*\x07)|` + // OSC sequences
		`(?:\x1b[\(\)][A-Za-z])|` + // charset sequences
		`(?:\x1b=|\x1b>)|` + // keypad mode sequences
		`\r`, // carriage returns
)

// Editor drives the alien binary through a pseudo terminal
type Editor struct {
	t         *testing.T
	pty       *os.File
	cmd       *exec.Cmd
	workspace string
	exited    chan error

	mu  sync.Mutex
	out strings.Builder
}

// StartEditor launches the editor in a fresh workspace. The workspace is
// both $HOME and the working directory for file prompts.
func StartEditor(t *testing.T, args ...string) *Editor {
	t.Helper()
	workspace := t.TempDir()

	e := &Editor{t: t, workspace: workspace, exited: make(chan error, 1)}
	args = append([]string{
		"--dir", workspace,
		"--config", filepath.Join(workspace, "config.toml"),
		"--log", filepath.Join(workspace, "alien.log"),
	}, args...)
	e.cmd = exec.Command(binPath, args...)
	e.cmd.Dir = workspace
	e.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+workspace,
	)

	ptyFile, err := pty.StartWithSize(e.cmd, &pty.Winsize{Rows: 40, Cols: 140})
	if err != nil {
		t.Fatalf("failed to start editor: %v", err)
	}
	e.pty = ptyFile

	go e.read()
	go func() { e.exited <- e.cmd.Wait() }()
	t.Cleanup(e.Close)
	return e
}

func (e *Editor) read() {
	buf := make([]byte, 8192)
	for {
		n, err := e.pty.Read(buf)
		if n > 0 {
			e.mu.Lock()
			e.out.Write(buf[:n])
			e.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// Workspace returns the directory the editor saves into
func (e *Editor) Workspace() string { return e.workspace }

// Type sends keystrokes to the editor
func (e *Editor) Type(keys ...string) {
	e.t.Helper()
	for _, k := range keys {
		if _, err := e.pty.Write([]byte(k)); err != nil {
			e.t.Fatalf("failed to send %q: %v", k, err)
		}
		// bubbletea splits input by read, so pace the keys
		time.Sleep(30 * time.Millisecond)
	}
}

// Command runs an action through the command prompt
func (e *Editor) Command(text string) {
	e.t.Helper()
	e.Type(":")
	e.Type(text, KeyEnter)
}

// Plain returns everything the editor printed with ANSI sequences removed
func (e *Editor) Plain() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ansiRe.ReplaceAllString(e.out.String(), "")
}

// See waits until text shows up in the output
func (e *Editor) See(text string) bool {
	e.t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(e.Plain(), text) {
			return true
		}
		time.Sleep(25 * time.Millisecond)
	}
	e.dumpTail()
	return false
}

// WaitExit waits for the editor process to end
func (e *Editor) WaitExit(timeout time.Duration) error {
	select {
	case err := <-e.exited:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("editor did not exit within %s", timeout)
	}
}

func (e *Editor) dumpTail() {
	tail := e.Plain()
	if len(tail) > 4096 {
		tail = tail[len(tail)-4096:]
	}
	e.t.Logf("--- editor output tail ---\n%s", tail)
}

// Close terminates the editor
func (e *Editor) Close() {
	if e.pty != nil {
		_ = e.pty.Close()
		e.pty = nil
	}
	if e.cmd != nil && e.cmd.Process != nil {
		_ = e.cmd.Process.Kill()
		e.cmd = nil
	}
}
