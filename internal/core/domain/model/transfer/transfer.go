// Package transfer models a stock transfer between two outlets: the root
// entity a packing plan is computed for.
package transfer

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/packing"
	"freight/internal/pkg/errs"
)

var ErrTransferIsNotConstructed = errors.New("Transfer must be created via NewTransfer")

// Transfer is read from storage and never modified by the packing pipeline.
type Transfer struct {
	id          kernel.UUID
	outletFrom  string
	outletTo    string
	lines       []packing.Line
	constructed bool
}

// NewTransfer validates the identifier and copies the lines.
func NewTransfer(id kernel.UUID, outletFrom, outletTo string, lines []packing.Line) (*Transfer, error) {
	if err := id.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("transfer id", err)
	}
	for _, line := range lines {
		if line.ProductID == "" {
			return nil, errs.NewValueIsRequiredError("transfer line product id")
		}
	}

	cp := make([]packing.Line, len(lines))
	copy(cp, lines)

	return &Transfer{
		id:          id,
		outletFrom:  outletFrom,
		outletTo:    outletTo,
		lines:       cp,
		constructed: true,
	}, nil
}

func (t *Transfer) ID() kernel.UUID    { return t.id }
func (t *Transfer) OutletFrom() string { return t.outletFrom }
func (t *Transfer) OutletTo() string   { return t.outletTo }

// Lines returns a copy of the transfer lines.
func (t *Transfer) Lines() []packing.Line {
	out := make([]packing.Line, len(t.lines))
	copy(out, t.lines)
	return out
}

// ProductIDs returns the distinct products on the transfer, sorted.
func (t *Transfer) ProductIDs() []kernel.ProductID {
	ids := make([]kernel.ProductID, 0, len(t.lines))
	for _, line := range t.lines {
		ids = append(ids, line.ProductID)
	}
	return kernel.NormalizeProductIDs(ids)
}

// IsEmpty reports whether no line would produce a unit.
func (t *Transfer) IsEmpty() bool {
	for _, line := range t.lines {
		if line.Quantity > 0 {
			return false
		}
	}
	return true
}

func (t *Transfer) Validate() error {
	if t == nil || !t.constructed {
		return ErrTransferIsNotConstructed
	}
	return nil
}
