// Package browser hands web dashboard links to the desktop browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	log "github.com/sirupsen/logrus"
)

// start launches name with args without waiting for it. Replaced in tests.
var start = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Command returns the launcher and its arguments for goos.
func Command(goos, link string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{link}, nil
	case "linux", "freebsd", "openbsd":
		return "xdg-open", []string{link}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", link}, nil
	default:
		return "", nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}

// Open opens link in the user's default browser. Only absolute http and
// https links are accepted.
func Open(link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("parse link: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("refusing to open %q: not an http(s) link", link)
	}
	name, args, err := Command(runtime.GOOS, u.String())
	if err != nil {
		return err
	}
	log.WithField("url", u.String()).Debug("opening browser")
	return start(name, args...)
}
