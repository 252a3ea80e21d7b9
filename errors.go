package bridges

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady is returned by Start before the map has registered its bridges.
	ErrNotReady = errors.New("bridges: map not ready")
	// ErrNoBridges is returned by Start when the map became ready with no bridges.
	ErrNoBridges = errors.New("bridges: map has no bridges")
	// ErrOffDrawableArea is returned by Start when the position is not land
	// or a bridge. Mid-stroke it is the cause of a water violation.
	ErrOffDrawableArea = errors.New("bridges: position is not drawable")
	// ErrWaterContact is the violation raised when a stroke touches water or
	// leaves the map.
	ErrWaterContact = fmt.Errorf("%w: stroke touched water", ErrOffDrawableArea)
	// ErrIllegalRecross is the violation raised when a stroke starts a second
	// traversal of an already-crossed bridge.
	ErrIllegalRecross = errors.New("bridges: bridge already crossed")
	// ErrMalformedGeometry marks a bridge whose footprint cannot be measured.
	ErrMalformedGeometry = errors.New("bridges: bridge footprint cannot be measured")
	// ErrComplete is returned by Start once the level is complete.
	ErrComplete = errors.New("bridges: level already complete")
	// ErrAlreadyDrawing is returned by Start while a stroke is in progress.
	ErrAlreadyDrawing = errors.New("bridges: stroke already in progress")
	// ErrUnmappable is returned by Start when the pointer position cannot be
	// converted into map coordinates.
	ErrUnmappable = errors.New("bridges: position cannot be mapped")
)
