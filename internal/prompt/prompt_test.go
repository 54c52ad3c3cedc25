package prompt

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	t.Setenv("KDE_FULL_SESSION", "")
	t.Setenv("DESKTOP_SESSION", "")

	// Terminal forms without the GUI flag, regardless of session.
	t.Setenv("KDE_FULL_SESSION", "true")
	require.IsType(t, &Form{}, Detect(false))

	require.IsType(t, &KDialog{}, Detect(true))

	t.Setenv("KDE_FULL_SESSION", "")
	if runtime.GOOS != "darwin" {
		t.Setenv("DESKTOP_SESSION", "gnome")
		require.IsType(t, &Zenity{}, Detect(true))

		t.Setenv("DESKTOP_SESSION", "xfce")
		require.IsType(t, &Form{}, Detect(true))
	}
}

func TestParseAlbumNumber(t *testing.T) {
	n, err := parseAlbumNumber("3")
	require.NoError(t, err)
	require.Equal(t, 3, n)

	_, err = parseAlbumNumber("")
	require.Error(t, err)

	_, err = parseAlbumNumber("first")
	require.Error(t, err)
}

func TestFirstWord(t *testing.T) {
	require.Equal(t, "2", firstWord("2 Holiday pics(hidden)"))
	require.Equal(t, "7", firstWord("7"))
	require.Equal(t, "", firstWord(""))
}
