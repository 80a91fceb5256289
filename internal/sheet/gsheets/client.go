// Package gsheets implements sheet.Table on the Google Sheets v4 API, authenticated as a
// service account.
package gsheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauthjwt "golang.org/x/oauth2/jwt"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/mmynk/ourfinance/internal/metrics"
	"github.com/mmynk/ourfinance/internal/sheet"
)

// ErrMissingCredentials is returned when the spreadsheet ID, service account email or
// private key is not configured.
var ErrMissingCredentials = errors.New("missing Google Sheets credentials")

// Ensure Client implements sheet.Table
var _ sheet.Table = (*Client)(nil)

// Config configures a Client.
type Config struct {
	SpreadsheetID string
	Email         string
	// PrivateKey is the PEM-encoded RSA key of the service account.
	PrivateKey string

	// RequestsPerSecond caps API calls. Zero means unlimited.
	RequestsPerSecond float64

	// TokenURL and Endpoint default to Google's.
	TokenURL   string
	Endpoint   string
	HTTPClient *http.Client
}

// Client talks to one spreadsheet.
type Client struct {
	spreadsheetID string
	values        *sheets.SpreadsheetsValuesService
	limiter       *rate.Limiter
}

// New validates the credentials and creates a Client. No network call is made; the
// first call fetches an access token, which is cached and refreshed using ctx.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.SpreadsheetID == "" || cfg.Email == "" || cfg.PrivateKey == "" {
		return nil, ErrMissingCredentials
	}
	if _, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.PrivateKey)); err != nil {
		return nil, fmt.Errorf("failed to parse service account key: %w", err)
	}

	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = google.JWTTokenURL
	}
	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: 30 * time.Second}
	}
	jwtConfig := &oauthjwt.Config{
		Email:      cfg.Email,
		PrivateKey: []byte(cfg.PrivateKey),
		Scopes:     []string{sheets.SpreadsheetsScope},
		TokenURL:   tokenURL,
	}
	httpClient := jwtConfig.Client(context.WithValue(ctx, oauth2.HTTPClient, base))

	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &Client{
		spreadsheetID: cfg.SpreadsheetID,
		values:        svc.Spreadsheets.Values,
		limiter:       rate.NewLimiter(limit, 1),
	}, nil
}

// call runs one rate-limited API call and records it.
func (c *Client) call(ctx context.Context, op string, fn func() error) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordSheetCall(op, time.Since(start), err == nil)
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	return classify(fn())
}

// classify maps an unknown tab to sheet.ErrCollectionNotFound and adds the OAuth error
// description to token failures.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusBadRequest && strings.Contains(apiErr.Message, "Unable to parse range") {
		return fmt.Errorf("%w: %s", sheet.ErrCollectionNotFound, apiErr.Message)
	}
	var tokenErr *oauth2.RetrieveError
	if errors.As(err, &tokenErr) {
		if desc := gjson.GetBytes(tokenErr.Body, "error_description").String(); desc != "" {
			slog.Error("Sheets token exchange failed", "description", desc)
			return fmt.Errorf("failed to authorize: %s: %w", desc, err)
		}
	}
	return err
}

// quoteTab quotes a tab name for use in an A1 range when it needs it.
func quoteTab(tab string) string {
	if strings.ContainsAny(tab, " '!:") {
		return "'" + strings.ReplaceAll(tab, "'", "''") + "'"
	}
	return tab
}

func (c *Client) readRows(ctx context.Context, collection string) ([][]string, error) {
	var vr *sheets.ValueRange
	err := c.call(ctx, "read", func() error {
		var err error
		vr, err = c.values.Get(c.spreadsheetID, quoteTab(collection)).
			MajorDimension("ROWS").
			ValueRenderOption("UNFORMATTED_VALUE").
			DateTimeRenderOption("FORMATTED_STRING").
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", collection, err)
	}

	rows := make([][]string, 0, len(vr.Values))
	for _, row := range vr.Values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cellText(v)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// cellText renders an unformatted cell value in the wire form sheet.ParseCell expects.
func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case bool:
		if x {
			return sheet.True
		}
		return sheet.False
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func rowValues(row []string) [][]any {
	cells := make([]any, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return [][]any{cells}
}

// Header returns the header row of a tab.
func (c *Client) Header(ctx context.Context, collection string) ([]string, error) {
	rows, err := c.readRows(ctx, collection)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ReadAll returns every record of a tab.
func (c *Client) ReadAll(ctx context.Context, collection string) ([]sheet.Record, error) {
	rows, err := c.readRows(ctx, collection)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	records := make([]sheet.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, sheet.NewRecord(rows[0], row))
	}
	return records, nil
}

// Append adds a row after the last row of the tab.
func (c *Client) Append(ctx context.Context, collection string, row []string) error {
	err := c.call(ctx, "append", func() error {
		_, err := c.values.Append(c.spreadsheetID, quoteTab(collection), &sheets.ValueRange{
			MajorDimension: "ROWS",
			Values:         rowValues(row),
		}).
			ValueInputOption("USER_ENTERED").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to append to %s: %w", collection, err)
	}
	return nil
}

// UpdateRange overwrites the cells at address in the tab.
func (c *Client) UpdateRange(ctx context.Context, collection, address string, values []string) error {
	if _, err := sheet.ParseRange(address); err != nil {
		return err
	}
	a1 := quoteTab(collection) + "!" + address
	err := c.call(ctx, "update", func() error {
		_, err := c.values.Update(c.spreadsheetID, a1, &sheets.ValueRange{
			Range:          a1,
			MajorDimension: "ROWS",
			Values:         rowValues(values),
		}).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", a1, err)
	}
	return nil
}
