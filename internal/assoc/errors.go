package assoc

import "errors"

var (
	// ErrInvalidAssociationTarget is returned when one or more requested
	// parent ids do not reference an existing, non-deleted parent row. The
	// whole write is rejected; no partial application happens.
	ErrInvalidAssociationTarget = errors.New("invalid association target")

	// ErrUnsupportedOwnerType is returned when the owner's discriminator is
	// not on the allow-list registered for the association kind. With
	// correct routing this never happens, so it is treated as a server
	// fault: logged with full context, then returned.
	ErrUnsupportedOwnerType = errors.New("unsupported owner type")

	// ErrDuplicateAssociation is returned by AttachOne when the
	// (owner, kind, parent) triple already exists and the kind requires
	// uniqueness.
	ErrDuplicateAssociation = errors.New("association already exists")
)
