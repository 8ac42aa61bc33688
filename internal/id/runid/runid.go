// Package runid generates identifiers for scrape runs.
package runid

import (
	"fmt"

	"github.com/google/uuid"
)

// New returns a UUIDv7 string used to correlate logs and metrics of one run.
func New() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	return id.String(), nil
}
