package prompt

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/carlcarl/imgurup/internal/model"
)

// runDialog executes a dialog command and returns its trimmed stdout. A
// non-zero exit is how these tools report a dismissed dialog, so it maps to
// an empty answer rather than an error.
func runDialog(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", nil
		}
		return "", fmt.Errorf("run %s: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func parseAlbumNumber(answer string) (int, error) {
	if answer == "" {
		return 0, errors.New("album selection must not be empty")
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("album selection %q is not a number", answer)
	}
	return n, nil
}

// KDialog prompts through KDE's kdialog tool.
type KDialog struct{}

// NewKDialog returns the KDE dialog provider.
func NewKDialog() *KDialog { return &KDialog{} }

func (k *KDialog) RequestPIN(authorizeURL string) (string, error) {
	if _, err := runDialog("kdialog", "--msgbox", authMessage+"\n"+authorizeURL); err != nil {
		return "", err
	}
	return runDialog("kdialog", "--title", "Input dialog", "--inputbox", pinMessage)
}

func (k *KDialog) RequestImagePath() (string, error) {
	return runDialog("kdialog", "--getopenfilename", ".")
}

func (k *KDialog) RequestAlbumChoice(albums []model.Album) (int, error) {
	args := []string{"--menu", chooseAlbumMsg}
	for i, album := range albums {
		args = append(args, strconv.Itoa(i+1), album.Display())
	}
	args = append(args, strconv.Itoa(len(albums)+1), noAlbumLabel)
	answer, err := runDialog("kdialog", args...)
	if err != nil {
		return 0, err
	}
	return parseAlbumNumber(answer)
}

func (k *KDialog) ShowResult(link, deleteLink string) {
	_, _ = runDialog("kdialog", "--msgbox", resultText(link, deleteLink))
}

func (k *KDialog) ShowError(message string) {
	_, _ = runDialog("kdialog", "--error", message)
	fmt.Fprintln(os.Stderr, message)
}

// Zenity prompts through GNOME's zenity tool.
type Zenity struct{}

// NewZenity returns the GNOME dialog provider.
func NewZenity() *Zenity { return &Zenity{} }

func (z *Zenity) RequestPIN(authorizeURL string) (string, error) {
	if _, err := runDialog("zenity", "--entry",
		"--text="+authMessage, "--entry-text="+authorizeURL); err != nil {
		return "", err
	}
	return runDialog("zenity", "--entry", "--text="+pinMessage)
}

func (z *Zenity) RequestImagePath() (string, error) {
	return runDialog("zenity", "--file-selection")
}

func (z *Zenity) RequestAlbumChoice(albums []model.Album) (int, error) {
	args := []string{
		"--list",
		"--text=" + chooseAlbumMsg,
		"--column=No.",
		"--column=Album name",
		"--column=Privacy",
	}
	for i, album := range albums {
		args = append(args, strconv.Itoa(i+1), album.Title, album.Privacy)
	}
	args = append(args, strconv.Itoa(len(albums)+1), noAlbumLabel, "public")
	answer, err := runDialog("zenity", args...)
	if err != nil {
		return 0, err
	}
	return parseAlbumNumber(answer)
}

func (z *Zenity) ShowResult(link, deleteLink string) {
	_, _ = runDialog("zenity", "--info", "--text="+resultText(link, deleteLink))
}

func (z *Zenity) ShowError(message string) {
	_, _ = runDialog("zenity", "--error", "--text="+message)
	fmt.Fprintln(os.Stderr, message)
}

// OSAScript prompts through macOS AppleScript dialogs.
type OSAScript struct{}

// NewOSAScript returns the macOS dialog provider.
func NewOSAScript() *OSAScript { return &OSAScript{} }

func (o *OSAScript) RequestPIN(authorizeURL string) (string, error) {
	if _, err := runDialog("osascript", "-e",
		fmt.Sprintf(`tell app "SystemUIServer" to display dialog %q default answer %q with icon 1`,
			authMessage, authorizeURL)); err != nil {
		return "", err
	}
	return runDialog("osascript",
		"-e", fmt.Sprintf(`tell app "SystemUIServer" to display dialog %q default answer "" with icon 1`, pinMessage),
		"-e", "text returned of result")
}

func (o *OSAScript) RequestImagePath() (string, error) {
	return runDialog("osascript", "-e",
		`tell app "Finder" to POSIX path of (choose file with prompt "Choose Image:")`)
}

func (o *OSAScript) RequestAlbumChoice(albums []model.Album) (int, error) {
	entries := make([]string, 0, len(albums)+1)
	for i, album := range albums {
		entries = append(entries, fmt.Sprintf("%q", fmt.Sprintf("%d %s", i+1, album.Display())))
	}
	entries = append(entries, fmt.Sprintf("%q", fmt.Sprintf("%d %s", len(albums)+1, noAlbumLabel)))
	script := fmt.Sprintf(
		`tell app "Finder" to choose from list {%s} with title %q with prompt "Pick one" `+
			`OK button name "Select" cancel button name "Quit"`,
		strings.Join(entries, ","), chooseAlbumMsg)
	answer, err := runDialog("osascript", "-e", script)
	if err != nil {
		return 0, err
	}
	return parseAlbumNumber(firstWord(answer))
}

func (o *OSAScript) ShowResult(link, deleteLink string) {
	_, _ = runDialog("osascript", "-e",
		fmt.Sprintf(`tell app "Finder" to display dialog "Image link" default answer %q`, link))
	_, _ = runDialog("osascript", "-e",
		fmt.Sprintf(`tell app "Finder" to display dialog "Delete link" default answer %q`, deleteLink))
}

func (o *OSAScript) ShowError(message string) {
	_, _ = runDialog("osascript", "-e",
		fmt.Sprintf(`tell app "Finder" to display alert %q as warning`, message))
	fmt.Fprintln(os.Stderr, message)
}

// firstWord isolates the leading menu number from a "choose from list"
// answer such as "2 Holiday pics(hidden)".
func firstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

func resultText(link, deleteLink string) string {
	return "Link: " + link + "\nDelete link: " + deleteLink
}
