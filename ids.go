package agriassist

import "github.com/google/uuid"

// newUUID returns a random id for new records.
func newUUID() string {
	return uuid.NewString()
}
