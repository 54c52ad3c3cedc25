package prompt

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/carlcarl/imgurup/internal/model"
)

var (
	linkStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#95E1A3"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))
)

// Form prompts through interactive terminal forms. It is the default
// provider when no desktop dialog tool applies.
type Form struct {
	theme *huh.Theme
}

// NewForm returns a terminal form provider.
func NewForm() *Form {
	return &Form{theme: huh.ThemeCharm()}
}

// RequestPIN shows the authorization URL and collects the PIN code.
func (f *Form) RequestPIN(authorizeURL string) (string, error) {
	var pin string
	form := huh.NewForm(huh.NewGroup(
		huh.NewNote().
			Title("Authorize imgurup").
			Description(authMessage+"\n\n"+authorizeURL),
		huh.NewInput().
			Title(pinMessage).
			Value(&pin),
	)).WithTheme(f.theme)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(pin), nil
}

// RequestImagePath opens a file picker. An aborted picker yields an empty
// path, which the caller treats as cancellation.
func (f *Form) RequestImagePath() (string, error) {
	var path string
	form := huh.NewForm(huh.NewGroup(
		huh.NewFilePicker().
			Title("Choose an image to upload").
			Value(&path),
	)).WithTheme(f.theme)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(path), nil
}

// RequestAlbumChoice shows the albums as a select menu and returns the
// 1-based selection; the final entry is the "no album" sentinel.
func (f *Form) RequestAlbumChoice(albums []model.Album) (int, error) {
	options := make([]huh.Option[int], 0, len(albums)+1)
	for i, album := range albums {
		options = append(options, huh.NewOption(album.Display(), i+1))
	}
	options = append(options, huh.NewOption(noAlbumLabel, len(albums)+1))

	var choice int
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title(chooseAlbumMsg).
			Options(options...).
			Value(&choice),
	)).WithTheme(f.theme)
	if err := form.Run(); err != nil {
		return 0, err
	}
	return choice, nil
}

// ShowResult prints the public and delete links.
func (f *Form) ShowResult(link, deleteLink string) {
	fmt.Println(labelStyle.Render("Link: ") + linkStyle.Render(link))
	fmt.Println(labelStyle.Render("Delete link: ") + linkStyle.Render(deleteLink))
}

// ShowError prints the error message to stderr.
func (f *Form) ShowError(message string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(message))
}
