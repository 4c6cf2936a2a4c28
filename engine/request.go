package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// FileRequest identifies one named-file request passing through the Context.
// The ID correlates log lines across the resolver chain; the Name is the
// logical file name, never a filesystem path.
type FileRequest struct {
	ID   uuid.UUID
	Name string
}

// NewFileRequest creates a request with a fresh ID.
func NewFileRequest(name string) FileRequest {
	return FileRequest{ID: uuid.New(), Name: name}
}

// String returns a log-friendly rendering
func (r FileRequest) String() string {
	return fmt.Sprintf("%s (%s)", r.Name, r.ID)
}
