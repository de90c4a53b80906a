// Package profile discovers the host OS, distribution and desktop
// environment once at startup.
package profile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/doeshing/vosh/internal/domain"
)

const osReleasePath = "/etc/os-release"

// Collect builds the process-lifetime system profile string. On Linux it
// reads /etc/os-release for the distribution and the XDG desktop variables
// for the desktop environment; elsewhere the bare OS name is returned.
func Collect() domain.SystemProfile {
	osName := canonicalOSName(runtime.GOOS)
	if runtime.GOOS != "linux" {
		return domain.SystemProfile(osName)
	}

	dist := "Linux"
	version := ""
	if f, err := os.Open(osReleasePath); err == nil {
		dist, version = parseOSRelease(f)
		f.Close()
	}

	de := desktopEnvironment()
	return domain.SystemProfile(fmt.Sprintf("%s (%s %s, %s)", osName, dist, version, de))
}

// parseOSRelease extracts NAME and VERSION_ID from os-release data.
func parseOSRelease(r io.Reader) (name, version string) {
	name = "Linux"
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"`)
		switch key {
		case "NAME":
			if value != "" {
				name = value
			}
		case "VERSION_ID":
			version = value
		}
	}
	return name, version
}

func desktopEnvironment() string {
	if de := os.Getenv("XDG_CURRENT_DESKTOP"); de != "" {
		return de
	}
	if de := os.Getenv("DESKTOP_SESSION"); de != "" {
		return de
	}
	return "Unknown DE"
}

func canonicalOSName(goos string) string {
	switch goos {
	case "linux":
		return "Linux"
	case "darwin":
		return "Darwin"
	case "windows":
		return "Windows"
	default:
		return goos
	}
}
