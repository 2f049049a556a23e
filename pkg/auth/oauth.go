package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
)

const (
	// TokenFile holds an OAuth token (as written by oauth2.Token's JSON form)
	// inside the config directory. It is used when no access token is configured.
	TokenFile = "token.json"

	xdgAppName = "tickctx"
)

var ErrNoToken = errors.New("no TickTick access token configured")

// ResolveToken returns the configured access token, falling back to TokenFile.
func ResolveToken(accessToken string) (*oauth2.Token, error) {
	if accessToken != "" {
		return &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}, nil
	}

	xdgConfigBase, err := GetXdgHome()
	if err != nil {
		return nil, err
	}
	tokenFile := filepath.Join(xdgConfigBase, TokenFile)
	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: set TICKTICK_TOKEN or create %s", ErrNoToken, tokenFile)
		}
		return nil, err
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("%w: %s has no access_token", ErrNoToken, tokenFile)
	}
	if !tok.Expiry.IsZero() && tok.Expiry.Before(time.Now()) {
		log.Printf("Warning: token in %s expired at %s", tokenFile, tok.Expiry.Format(time.RFC3339))
	}
	return tok, nil
}

// NewClient returns an *http.Client that sends tok as a bearer token on every
// request and gives up after timeout.
func NewClient(ctx context.Context, tok *oauth2.Token, timeout time.Duration) *http.Client {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(tok))
	client.Timeout = timeout
	return client
}

// tokenFromFile reads an oauth2.Token from a JSON file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	if err != nil {
		return nil, fmt.Errorf("failed to decode token from file %s: %w", file, err)
	}
	return tok, nil
}

// SaveToken stores an access token in TokenFile so later runs need no
// environment.
func SaveToken(accessToken string) (string, error) {
	xdgConfigBase, err := GetXdgHome()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(xdgConfigBase, 0700); err != nil {
		return "", fmt.Errorf("could not create token directory %s: %w", xdgConfigBase, err)
	}

	path := filepath.Join(xdgConfigBase, TokenFile)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600) // 0600: read/write for owner only
	if err != nil {
		return "", fmt.Errorf("unable to save token to %s: %w", path, err)
	}
	defer f.Close()
	tok := &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}
	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return "", fmt.Errorf("unable to save token to %s: %w", path, err)
	}
	return path, nil
}

func GetXdgHome() (string, error) {
	xdgHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgHome, ".config", xdgAppName), nil
}
