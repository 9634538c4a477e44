package settings

import "errors"

var (
	ErrSettingsNotFound = errors.New("booking settings not found")
	ErrBuildQuery       = errors.New("failed to build query")
	ErrExecQuery        = errors.New("failed to execute query")
	ErrScanRow          = errors.New("failed to scan row")
)
