// Package browser hands targets to the operating system's default
// opener. A target may be a URL or a local file, such as an exported
// CSV report.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open asks the OS to open target with its default handler. The
// handler process is started and not waited on.
func Open(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "linux":
		cmd = exec.Command("xdg-open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("no opener for %s", runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("browser.Open %s: %w", target, err)
	}
	return nil
}
