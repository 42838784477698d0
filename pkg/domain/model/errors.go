package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrEmptyView      = goerr.New("view has no data to render")
	ErrDatasetMissing = goerr.New("no dataset loaded")
)

// Error tags attached to validation failures
var (
	ErrTagInvalidSelection = goerr.NewTag("invalid_selection")
	ErrTagMissingColumn    = goerr.NewTag("missing_column")
	ErrTagInvalidConfig    = goerr.NewTag("invalid_config")
)
