package controls

import (
	"time"

	"github.com/google/uuid"
)

// Control is a single compliance requirement tracked in a Hyperproof
// organization.
type Control struct {
	// ID is the unique identifier associated with this control.
	ID uuid.UUID `json:"id"`

	// ControlIdentifier is the human-assigned short code of the control,
	// e.g. "AC-2".
	ControlIdentifier string `json:"controlIdentifier"`

	// Name is the short display name of the control.
	Name string `json:"name"`

	// Description explains what the control requires.
	Description string `json:"description"`

	// Status is the current health of the control as assessed in
	// Hyperproof.
	Status string `json:"status"`

	// CreatedOn is the creation time of the control record.
	CreatedOn time.Time `json:"createdOn"`

	// UpdatedOn is the time of the last change to the control record.
	UpdatedOn time.Time `json:"updatedOn"`
}
