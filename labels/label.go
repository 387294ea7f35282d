package labels

import (
	"time"

	"github.com/google/uuid"
)

// Label groups related proof under a shared name, independently of the
// controls the proof is attached to.
type Label struct {
	// ID is the unique identifier associated with this label.
	ID uuid.UUID `json:"id"`

	// Name is the display name of the label.
	Name string `json:"name"`

	// Description explains what the label collects.
	Description string `json:"description"`

	// CreatedOn is the creation time of the label.
	CreatedOn time.Time `json:"createdOn"`

	// UpdatedOn is the time of the last change to the label.
	UpdatedOn time.Time `json:"updatedOn"`
}
