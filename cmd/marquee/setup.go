package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tmdb"
)

// verifyTimeout bounds the request used to check a new API key
const verifyTimeout = 15 * time.Second

// maxSetupAttempts limits how often an invalid key is re-prompted
const maxSetupAttempts = 3

// runSetupFlow prompts for an API key, checks it against the catalog and saves it
func runSetupFlow(cfg *config.Config, configFile string, in *os.File, out io.Writer, logger *slog.Logger) error {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Welcome to Marquee!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Marquee needs a TMDB API key (v3). Create one at https://www.themoviedb.org/settings/api")
	fmt.Fprintln(out)

	reader := bufio.NewReader(in)
	for attempt := 1; ; attempt++ {
		fmt.Fprint(out, "API key: ")
		apiKey, err := readSecret(in, reader)
		fmt.Fprintln(out)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if apiKey == "" {
			fmt.Fprintln(out, "API key cannot be empty. Please try again.")
			continue
		}

		fmt.Fprintln(out, "Checking key...")
		err = verifyAPIKey(cfg, apiKey, logger)
		if err == nil {
			cfg.TMDB.APIKey = apiKey
			break
		}
		if !errors.Is(err, domain.ErrInvalidAPIKey) {
			return fmt.Errorf("could not reach TMDB: %w", err)
		}
		fmt.Fprintln(out, "✗ TMDB rejected that key.")
		if attempt >= maxSetupAttempts {
			return domain.ErrInvalidAPIKey
		}
		fmt.Fprintln(out, "Please try again.")
	}

	if err := config.SaveConfig(cfg, configFile); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "✓ Configuration saved to %s\n", cfg.Path())
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run marquee again to start browsing.")
	return nil
}

// readSecret reads a line without echo when in is a terminal
func readSecret(in *os.File, reader *bufio.Reader) (string, error) {
	if isTerminal(in) {
		b, err := term.ReadPassword(int(in.Fd()))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// verifyAPIKey makes one cheap authenticated request with apiKey
func verifyAPIKey(cfg *config.Config, apiKey string, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	client := tmdb.NewClient(cfg.TMDB.BaseURL, apiKey, cfg.TMDB.Timeout, logger)
	_, err := client.Get(ctx, tmdb.PathGenres, nil)
	return err
}
