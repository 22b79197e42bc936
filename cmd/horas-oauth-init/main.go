// Command horas-oauth-init runs the OAuth consent flow once and saves a
// read-only Sheets token for TIMESHEET_SOURCE=sheets.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"

	"horas/internal/cli"
	applog "horas/internal/log"
)

const authTimeout = 5 * time.Minute

func main() {
	cli.LoadEnvFile()
	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentSheets)

	clientJSON, err := clientCredentials()
	if err != nil {
		cli.Fatal(logger, "Missing OAuth client", err)
	}
	cfg, err := google.ConfigFromJSON(clientJSON, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		cli.Fatal(logger, "Invalid OAuth client", err)
	}

	// The redirect URI must be registered on the OAuth client.
	redirectPort := getenv("OAUTH_REDIRECT_PORT", "8085")
	cfg.RedirectURL = "http://localhost:" + redirectPort + "/callback"

	state := newState()
	codeCh := make(chan string, 1)
	mux := http.NewServeMux()
	srv := &http.Server{Addr: ":" + redirectPort, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	mux.HandleFunc("GET /callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if e := q.Get("error"); e != "" {
			http.Error(w, "OAuth error: "+e, http.StatusBadRequest)
			return
		}
		if q.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		fmt.Fprintln(w, "You may close this window and return to the terminal.")
		select {
		case codeCh <- q.Get("code"):
		default:
		}
	})
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Callback server failed", applog.FieldError, err)
		}
	}()
	defer srv.Close()

	fmt.Printf("Open this URL to authorize:\n%s\n", cfg.AuthCodeURL(state, oauth2.AccessTypeOffline))

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, authTimeout)
	defer cancelTimeout()

	var code string
	select {
	case code = <-codeCh:
	case <-ctx.Done():
		cli.Fatal(logger, "Authorization not completed", ctx.Err())
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		cli.Fatal(logger, "Token exchange failed", err)
	}

	outFile := getenv("GOOGLE_OAUTH_TOKEN_FILE", "token.json")
	if err := saveToken(outFile, tok); err != nil {
		cli.Fatal(logger, "Failed to save token", err, "path", outFile)
	}
	logger.Info("Saved OAuth token", "path", outFile)
}

func clientCredentials() ([]byte, error) {
	if v := os.Getenv("GOOGLE_OAUTH_CLIENT_JSON"); v != "" {
		return []byte(v), nil
	}
	if path := os.Getenv("GOOGLE_OAUTH_CLIENT_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read client file: %w", err)
		}
		return b, nil
	}
	return nil, errors.New("set GOOGLE_OAUTH_CLIENT_JSON or GOOGLE_OAUTH_CLIENT_FILE")
}

func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(f).Encode(tok); err != nil {
		f.Close()
		return fmt.Errorf("write token: %w", err)
	}
	return f.Close()
}

func newState() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("state-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
