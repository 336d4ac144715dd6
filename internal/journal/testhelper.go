package journal

import (
	"fmt"

	"github.com/medboard/medboard/internal/util"
)

// NewInMemory creates an in-memory journal for testing purposes.
func NewInMemory() (*Journal, error) {
	j, err := Open("", util.NewIDGenerator())
	if err != nil {
		return nil, fmt.Errorf("opening in-memory journal: %w", err)
	}
	return j, nil
}
