// Package google provides shared plumbing for Google API access:
// service construction, credential handling, error wrapping and rate
// limiting.
package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	googleauth "golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// NewSheetsService creates a Sheets API service using the provided TokenSource.
func NewSheetsService(ctx context.Context, ts oauth2.TokenSource) (*sheets.Service, error) {
	return sheets.NewService(ctx, option.WithTokenSource(ts))
}

// NewSheetsServiceWithAPIKey creates a Sheets API service using an API
// key. Only works for spreadsheets shared publicly ("anyone with the
// link"); private spreadsheets need a token source.
func NewSheetsServiceWithAPIKey(ctx context.Context, apiKey string) (*sheets.Service, error) {
	return sheets.NewService(ctx, option.WithAPIKey(apiKey))
}

// TokenSourceFromServiceAccount builds a TokenSource from a service
// account JSON key, scoped to read-only spreadsheet access.
func TokenSourceFromServiceAccount(ctx context.Context, keyJSON []byte) (oauth2.TokenSource, error) {
	creds, err := googleauth.CredentialsFromJSON(ctx, keyJSON, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parsing service account key: %w", err)
	}
	return creds.TokenSource, nil
}
