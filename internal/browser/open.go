// Package browser opens call-to-action links in the user's default browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Open opens link in the user's default browser. Only absolute http(s)
// links are accepted so content-source data cannot launch other handlers.
func Open(link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("browser.Open: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("browser.Open: refusing non-http link %q", link)
	}
	return command(runtime.GOOS, u.String()).Start()
}

func command(goos, link string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.Command("open", link)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", link)
	default:
		return exec.Command("xdg-open", link)
	}
}
