package tui

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/tesso57/tektune/internal/infrastructure/clipboard"
)

// OSOpenCmd allows mocking the open command.
var OSOpenCmd = func(url string) *exec.Cmd {
	var cmd string
	var args []string
	switch runtime.GOOS {
	case "linux":
		cmd = "xdg-open"
		args = []string{url}
	case "windows":
		cmd = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		cmd = "open"
		args = []string{url}
	default:
		return nil
	}
	return exec.Command(cmd, args...) //nolint:gosec
}

// CopyFunc allows mocking the system clipboard.
var CopyFunc = clipboard.Copy

// OpenFileFunc allows mocking image file reads.
var OpenFileFunc = func(path string) (io.ReadCloser, error) {
	return os.Open(path) //nolint:gosec
}

func openBrowser(url string) error {
	cmd := OSOpenCmd(url)
	if cmd == nil {
		return fmt.Errorf("unsupported platform")
	}
	return cmd.Start()
}

func copyText(text string) error { return CopyFunc(text) }

func openFile(path string) (io.ReadCloser, error) { return OpenFileFunc(path) }
