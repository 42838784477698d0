package types

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// RecordID identifies a tracked item (the pull request number)
type RecordID int

// String returns the string representation
func (id RecordID) String() string {
	return strconv.Itoa(int(id))
}

// Validate checks if the record ID is valid (positive)
func (id RecordID) Validate() error {
	if id <= 0 {
		return goerr.New("record ID must be positive", goerr.V("id", int(id)))
	}
	return nil
}

// ParseRecordID parses a record ID from its decimal form
func ParseRecordID(s string) (RecordID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to parse record ID", goerr.V("value", s))
	}
	id := RecordID(n)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// DatasetID identifies one loaded snapshot of the record list
type DatasetID string

// String returns the string representation
func (id DatasetID) String() string {
	return string(id)
}

// NewDatasetID creates a new DatasetID using UUID v7
func NewDatasetID() (DatasetID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate dataset ID")
	}
	return DatasetID(id.String()), nil
}
