package file

import "sort"

// Configuration keys understood by the application. Anything else in
// the file is preserved but ignored.
const (
	KeySourceType = "source.type"

	KeyCSVPath = "csv.path"

	KeySheetsSpreadsheetID  = "sheets.spreadsheet_id"
	KeySheetsSheetName      = "sheets.sheet_name"
	KeySheetsAPIKey         = "sheets.api_key"
	KeySheetsCredentials    = "sheets.credentials_file"
	KeySheetsPageSize       = "sheets.page_size"
	KeySheetsMaxConcurrency = "sheets.max_concurrency"

	KeyBuildArtifactPath    = "build.artifact_path"
	KeyBuildRegionReference = "build.region_reference"

	KeyServeListen         = "serve.listen"
	KeyServeOrigin         = "serve.origin"
	KeyServeBaseDomain     = "serve.base_domain"
	KeyServeReservedLabels = "serve.reserved_labels"
)

// keyDescriptions documents each known key for `config` output.
var keyDescriptions = map[string]string{
	KeySourceType:           "row source: google-sheets (default) or csv",
	KeyCSVPath:              "path to the CSV source file",
	KeySheetsSpreadsheetID:  "Google Sheets spreadsheet document ID",
	KeySheetsSheetName:      "sheet tab to read (default: first sheet)",
	KeySheetsAPIKey:         "API key for publicly shared spreadsheets",
	KeySheetsCredentials:    "service account JSON key file",
	KeySheetsPageSize:       "rows fetched per API request",
	KeySheetsMaxConcurrency: "concurrent page fetches",
	KeyBuildArtifactPath:    "artifact output path",
	KeyBuildRegionReference: "curated region display-name TOML file",
	KeyServeListen:          "edge router listen address",
	KeyServeOrigin:          "origin base URL the router forwards to",
	KeyServeBaseDomain:      "apex host served without rewriting",
	KeyServeReservedLabels:  "host labels never treated as region slugs",
}

// KnownKeys returns all recognized keys in sorted order.
func KnownKeys() []string {
	keys := make([]string, 0, len(keyDescriptions))
	for key := range keyDescriptions {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// IsKnownKey reports whether the application reads the given key.
func IsKnownKey(key string) bool {
	_, ok := keyDescriptions[key]
	return ok
}

// DescribeKey returns the one-line description of a known key.
func DescribeKey(key string) string {
	return keyDescriptions[key]
}
