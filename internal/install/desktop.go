// Package install places the desktop entry that adds an "upload to imgur"
// action to file manager context menus.
package install

import (
	"os"
	"path/filepath"
)

const desktopFileName = "imgurup.desktop"

const desktopEntry = `[Desktop Entry]
Type=Application
Name=Upload to imgur
Exec=imgurup -g -f %f
MimeType=image/png;image/jpeg;image/gif;image/bmp;
Categories=Graphics;Network;
NoDisplay=true
`

// DefaultApplicationsDir returns the per-user applications directory.
func DefaultApplicationsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share", "applications"), nil
}

// Desktop writes the context-menu entry into dir, creating it if needed.
func Desktop(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, desktopFileName), []byte(desktopEntry), 0644)
}
