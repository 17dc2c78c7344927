package memory

import (
	"fmt"

	"github.com/mitchellh/copystructure"

	"github.com/brunoga/livesync/live"
)

// Register is an opaque leaf. Its payload is copied on creation so later
// changes to the caller's value do not leak into the document.
type Register struct {
	node
	payload any
}

var _ live.Register = (*Register)(nil)

// NewRegister returns an unattached register holding a deep copy of payload.
func (d *Document) NewRegister(payload any) (*Register, error) {
	copied, err := copystructure.Copy(payload)
	if err != nil {
		return nil, fmt.Errorf("memory: copying register payload: %w", err)
	}
	return &Register{node: node{doc: d}, payload: copied}, nil
}

func (r *Register) Payload() any {
	return r.payload
}
