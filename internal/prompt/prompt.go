// Package prompt is the interactive surface of imgurup.
//
// The upload core talks to a single Provider; the implementations here cover
// terminal forms and the desktop dialog tools of KDE, GNOME and macOS. All
// calls block until the user answers — external dialog processes have no
// timeout, matching the tools they shell out to.
package prompt

import (
	"os"
	"runtime"

	"github.com/carlcarl/imgurup/internal/model"
)

// Provider performs all interactive input and output.
//
// Contract:
//   - RequestPIN shows the authorization URL and collects the PIN code.
//   - RequestImagePath asks for the file to upload; an empty result means
//     the user cancelled.
//   - RequestAlbumChoice shows the albums as a numbered menu plus a final
//     "no album" entry and returns the 1-based selection.
//   - ShowResult and ShowError display the outcome; they never fail.
type Provider interface {
	RequestPIN(authorizeURL string) (string, error)
	RequestImagePath() (string, error)
	RequestAlbumChoice(albums []model.Album) (int, error)
	ShowResult(link, deleteLink string)
	ShowError(message string)
}

// Messages shared by every backend.
const (
	authMessage = "This is the first time you use this program, " +
		"you have to visit this URL in your browser and copy the PIN code:"
	pinMessage     = "Enter PIN code displayed in the browser:"
	noAlbumLabel   = "Do not move to any album"
	chooseAlbumMsg = "Choose the album"
)

// Detect picks a provider for the current environment. With gui set it
// prefers the desktop dialog tool of the running session; otherwise, and as
// the fallback, it uses terminal forms.
func Detect(gui bool) Provider {
	switch {
	case gui && os.Getenv("KDE_FULL_SESSION") == "true":
		return NewKDialog()
	case gui && runtime.GOOS == "darwin":
		return NewOSAScript()
	case gui && os.Getenv("DESKTOP_SESSION") == "gnome":
		return NewZenity()
	default:
		return NewForm()
	}
}
