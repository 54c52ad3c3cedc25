package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/carlcarl/imgurup/internal/config"
	"github.com/carlcarl/imgurup/internal/imgur"
	"github.com/carlcarl/imgurup/internal/install"
	"github.com/carlcarl/imgurup/internal/model"
	"github.com/carlcarl/imgurup/internal/prompt"
	"github.com/carlcarl/imgurup/internal/upload"
)

func main() {
	// Command line flags
	var (
		fileFlag      = flag.String("f", "", "The image you want to upload")
		albumFlag     = flag.String("d", "", "The album id you want your image to be uploaded to")
		anonymousFlag = flag.Bool("n", false, "Anonymous upload")
		guiFlag       = flag.Bool("g", false, "Use desktop dialogs instead of terminal prompts")
		installFlag   = flag.Bool("s", false, "Add command in the context menu of the file manager")
		verboseFlag   = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Parse()

	// A .env file may carry a custom client id/secret
	_ = godotenv.Load()

	settings := config.DefaultSettings()
	settings.ApplyEnv()

	level := slog.LevelWarn
	if *verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *installFlag {
		dir, err := install.DefaultApplicationsDir()
		if err == nil {
			err = install.Desktop(dir)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error installing desktop entry: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Installed the file manager context menu entry.")
		return
	}

	imagePath := *fileFlag
	if imagePath == "" && flag.NArg() > 0 {
		imagePath = flag.Arg(0)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	provider := prompt.Detect(*guiFlag)
	store := config.NewCredentialStore(settings.CredentialsPath, logger)
	api := imgur.NewClient(settings, logger)

	orchestrator := upload.NewOrchestrator(settings, api, store, provider, logger, func(event upload.ProgressEvent) {
		if event.Level == upload.LevelVerbose && !*verboseFlag {
			return
		}
		fmt.Println(event.Message)
	})

	_, err := orchestrator.Upload(ctx, model.UploadRequest{
		ImagePath: imagePath,
		Anonymous: *anonymousFlag,
		AlbumID:   *albumFlag,
	})
	if err != nil {
		// A dismissed file picker is a plain cancel, not an error dialog.
		if errors.Is(err, upload.ErrCancelled) {
			os.Exit(1)
		}
		logger.Error("upload failed", "error", err)
		provider.ShowError(err.Error())
		os.Exit(1)
	}
}
