package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	ports "horas/internal/sheets"

	"golang.org/x/oauth2"
	gauth "golang.org/x/oauth2/google"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// DefaultSheetName is the tab read when none is configured.
const DefaultSheetName = "Horas"

// columnRange covers the six timesheet columns.
const columnRange = "A:F"

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Ensure interface conformance
var _ ports.TimesheetReader = (*Client)(nil)

// New creates a Sheets client for the given spreadsheet and tab. Credentials
// come from the environment, see newSheetsService.
func New(ctx context.Context, spreadsheetID, sheetName string) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return NewWithService(svc, spreadsheetID, sheetName), nil
}

// NewWithService wraps an existing service.
func NewWithService(svc *gsheet.Service, spreadsheetID, sheetName string) *Client {
	sheetName = strings.TrimSpace(sheetName)
	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}
}

// ReadRows returns the formatted cell values of the timesheet tab.
func (c *Client) ReadRows(ctx context.Context) ([][]string, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!%s", c.sheetName, columnRange)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("get values %s: %w", rng, err)
	}
	return valuesToRows(resp.Values), nil
}

func (c *Client) Source() string {
	return fmt.Sprintf("sheets:%s/%s", c.spreadsheetID, c.sheetName)
}

// newSheetsService initializes a read-only Sheets service.
// Service account credentials are preferred (GOOGLE_SERVICE_ACCOUNT_JSON,
// GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_APPLICATION_CREDENTIALS); otherwise an
// OAuth client plus a token saved by horas-oauth-init is used.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case serviceAccountJSON != "":
		slog.InfoContext(ctx, "Using inline service account credentials")
		return serviceFromCredentials(ctx, []byte(serviceAccountJSON))
	case serviceAccountFile != "":
		slog.InfoContext(ctx, "Reading service account credentials", "path", serviceAccountFile)
		b, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return serviceFromCredentials(ctx, b)
	}

	ts, err := oauthTokenSource(ctx)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "Using OAuth user credentials")
	service, err := gsheet.NewService(ctx, goption.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func serviceFromCredentials(ctx context.Context, credentialsJSON []byte) (*gsheet.Service, error) {
	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func oauthTokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	clientJSON, err := envOrFile("GOOGLE_OAUTH_CLIENT_JSON", "GOOGLE_OAUTH_CLIENT_FILE")
	if err != nil {
		return nil, err
	}
	if clientJSON == nil {
		return nil, errors.New("missing credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_OAUTH_CLIENT_JSON)")
	}
	tokenJSON, err := envOrFile("GOOGLE_OAUTH_TOKEN_JSON", "GOOGLE_OAUTH_TOKEN_FILE")
	if err != nil {
		return nil, err
	}
	if tokenJSON == nil {
		return nil, errors.New("missing oauth token (set GOOGLE_OAUTH_TOKEN_JSON or GOOGLE_OAUTH_TOKEN_FILE)")
	}

	cfg, err := gauth.ConfigFromJSON(clientJSON, gsheet.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("oauth config: %w", err)
	}
	var tok oauth2.Token
	if err := jsonUnmarshal(tokenJSON, &tok); err != nil {
		return nil, fmt.Errorf("oauth token: %w", err)
	}
	return cfg.TokenSource(ctx, &tok), nil
}

// envOrFile returns the inline value of jsonKey, or the contents of the file
// named by fileKey. Both unset yields nil.
func envOrFile(jsonKey, fileKey string) ([]byte, error) {
	if v := strings.TrimSpace(os.Getenv(jsonKey)); v != "" {
		return []byte(v), nil
	}
	path := strings.TrimSpace(os.Getenv(fileKey))
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fileKey, err)
	}
	return b, nil
}
