package pipeline

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/carbocation/polarbars"
)

// Show opens path in the desktop's default image viewer and returns without
// waiting for the viewer to exit.
func Show(path string) error {
	if polarbars.IsGoogleStoragePath(path) {
		return fmt.Errorf("cannot display remote file %s", path)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}

	return cmd.Start()
}
