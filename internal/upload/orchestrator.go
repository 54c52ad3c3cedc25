// Package upload coordinates the whole upload transaction: credential
// resolution, album selection, multipart assembly and the retried API call.
package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/carlcarl/imgurup/internal/config"
	"github.com/carlcarl/imgurup/internal/imgur"
	"github.com/carlcarl/imgurup/internal/model"
	"github.com/carlcarl/imgurup/internal/multipart"
	"github.com/carlcarl/imgurup/internal/prompt"
	"github.com/carlcarl/imgurup/internal/retry"
)

// ErrCancelled reports that the user dismissed the image picker. It is a
// distinct exit path from a failure: the process exits non-zero but no error
// dialog is shown.
var ErrCancelled = errors.New("upload cancelled")

// ValidationError reports invalid interactive input. It is fatal and raised
// before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelSuccess
)

// ProgressEvent represents an upload progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// CredentialStore is the slice of config.CredentialStore the orchestrator
// needs. Credentials are re-read through it on every attempt instead of
// being cached, so a refresh mid-transaction takes effect immediately.
type CredentialStore interface {
	Load() (model.Credentials, error)
	Save(model.Credentials) error
}

// Orchestrator runs one upload from credential resolution to result display.
type Orchestrator struct {
	settings *config.Settings
	api      *imgur.Client
	store    CredentialStore
	prompt   prompt.Provider
	log      *slog.Logger

	onProgress func(ProgressEvent)
}

// NewOrchestrator wires the upload collaborators together.
func NewOrchestrator(settings *config.Settings, api *imgur.Client, store CredentialStore,
	provider prompt.Provider, log *slog.Logger, onProgress func(ProgressEvent)) *Orchestrator {
	return &Orchestrator{
		settings:   settings,
		api:        api,
		store:      store,
		prompt:     provider,
		log:        log,
		onProgress: onProgress,
	}
}

// Upload performs one upload transaction and shows the resulting links
// through the prompt provider.
//
// A missing image path is requested interactively; a blank answer returns
// ErrCancelled. Anonymous uploads are sent exactly once and never touch the
// credential store. Authenticated uploads run the PIN flow on first use and
// go through the retry policy, which refreshes the token pair between
// attempts.
func (o *Orchestrator) Upload(ctx context.Context, req model.UploadRequest) (model.UploadResult, error) {
	if req.ImagePath == "" {
		path, err := o.prompt.RequestImagePath()
		if err != nil {
			return model.UploadResult{}, fmt.Errorf("image prompt: %w", err)
		}
		if strings.TrimSpace(path) == "" {
			return model.UploadResult{}, ErrCancelled
		}
		req.ImagePath = path
	}

	if req.Anonymous {
		return o.uploadAnonymous(ctx, req)
	}
	return o.uploadAuthenticated(ctx, req)
}

// uploadAnonymous sends the image once with the client id. A failure cannot
// be a stale token, so it is immediately fatal.
func (o *Orchestrator) uploadAnonymous(ctx context.Context, req model.UploadRequest) (model.UploadResult, error) {
	o.progress(ProgressEvent{Message: "Uploading the image anonymously...", Level: LevelInfo})

	body, header, err := multipart.Encode(nil, []multipart.File{{Name: "image", Path: req.ImagePath}})
	if err != nil {
		return model.UploadResult{}, err
	}

	envelope, err := o.api.UploadImage(ctx, body, header, o.api.ClientIDAuthorization())
	if err != nil {
		return model.UploadResult{}, err
	}
	if !envelope.Success {
		return model.UploadResult{}, &imgur.APIError{Op: "image upload", Message: envelope.ErrorMessage()}
	}
	return o.finish(envelope.Data)
}

func (o *Orchestrator) uploadAuthenticated(ctx context.Context, req model.UploadRequest) (model.UploadResult, error) {
	creds, err := o.store.Load()
	if err != nil {
		return model.UploadResult{}, err
	}
	if !creds.Complete() {
		if err := o.authorize(ctx); err != nil {
			return model.UploadResult{}, err
		}
	}

	policy, err := retry.New(o.settings.UploadMaxAttempts, o.settings.UploadRetryDelay, o.reauthorize, o.log)
	if err != nil {
		return model.UploadResult{}, err
	}

	albumID := req.AlbumID
	if albumID == "" {
		albumID, err = o.chooseAlbum(ctx, policy)
		if err != nil {
			return model.UploadResult{}, err
		}
	}

	var fields []multipart.Field
	if albumID != "" {
		fields = append(fields, multipart.Field{Name: "album_id", Value: albumID})
		o.progress(ProgressEvent{Message: "Uploading the image to the album...", Level: LevelInfo})
	} else {
		o.progress(ProgressEvent{Message: "Uploading the image...", Level: LevelInfo})
	}
	body, header, err := multipart.Encode(fields, []multipart.File{{Name: "image", Path: req.ImagePath}})
	if err != nil {
		return model.UploadResult{}, err
	}

	data, err := policy.Do(ctx, "image upload", func(ctx context.Context) (*imgur.Envelope, error) {
		creds, err := o.store.Load()
		if err != nil {
			return nil, err
		}
		return o.api.UploadImage(ctx, body, header, o.api.BearerAuthorization(creds.AccessToken))
	})
	if err != nil {
		return model.UploadResult{}, err
	}
	return o.finish(data)
}

// authorize runs the full PIN flow and persists the resulting pair.
func (o *Orchestrator) authorize(ctx context.Context) error {
	o.progress(ProgressEvent{Message: "First run, requesting authorization...", Level: LevelInfo})

	pin, err := o.prompt.RequestPIN(o.api.AuthorizationURL())
	if err != nil {
		return fmt.Errorf("pin prompt: %w", err)
	}
	if strings.TrimSpace(pin) == "" {
		return &ValidationError{Message: "PIN code must not be empty"}
	}

	creds, err := o.api.ExchangePIN(ctx, pin)
	if err != nil {
		return err
	}
	return o.store.Save(creds)
}

// reauthorize refreshes the token pair and persists it; it runs between
// retry attempts. The refresh token is re-read from the store each time.
func (o *Orchestrator) reauthorize(ctx context.Context) error {
	creds, err := o.store.Load()
	if err != nil {
		return err
	}
	if creds.RefreshToken == "" {
		return imgur.ErrNoCredentials
	}
	next, err := o.api.RefreshTokens(ctx, creds.RefreshToken)
	if err != nil {
		return err
	}
	return o.store.Save(next)
}

// chooseAlbum fetches the album list through the retry policy and asks the
// user to pick a target.
func (o *Orchestrator) chooseAlbum(ctx context.Context, policy *retry.Policy) (string, error) {
	data, err := policy.Do(ctx, "album list", func(ctx context.Context) (*imgur.Envelope, error) {
		creds, err := o.store.Load()
		if err != nil {
			return nil, err
		}
		return o.api.ListAlbums(ctx, "me", creds.AccessToken)
	})
	if err != nil {
		return "", err
	}

	var albums []model.Album
	if err := json.Unmarshal(data, &albums); err != nil {
		return "", fmt.Errorf("decode album list: %w", err)
	}

	choice, err := o.prompt.RequestAlbumChoice(albums)
	if err != nil {
		return "", fmt.Errorf("album prompt: %w", err)
	}
	return ResolveAlbumChoice(albums, choice)
}

// ResolveAlbumChoice maps a 1-based menu selection to an album id. The entry
// after the last album is the "no album" sentinel and resolves to the empty
// id; anything out of range is a validation failure.
func ResolveAlbumChoice(albums []model.Album, choice int) (string, error) {
	switch {
	case choice >= 1 && choice <= len(albums):
		return albums[choice-1].ID, nil
	case choice == len(albums)+1:
		return "", nil
	default:
		return "", &ValidationError{Message: fmt.Sprintf("album selection %d is out of range", choice)}
	}
}

// finish decodes the upload response and shows the links.
func (o *Orchestrator) finish(data json.RawMessage) (model.UploadResult, error) {
	var result model.UploadResult
	if err := json.Unmarshal(data, &result); err != nil {
		return model.UploadResult{}, fmt.Errorf("decode upload response: %w", err)
	}
	o.progress(ProgressEvent{Message: "Upload complete", Level: LevelSuccess})
	o.prompt.ShowResult(result.Link, result.DeleteLink())
	return result, nil
}

func (o *Orchestrator) progress(event ProgressEvent) {
	if o.onProgress != nil {
		o.onProgress(event)
	}
}
