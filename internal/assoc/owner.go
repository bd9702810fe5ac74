package assoc

// OwnerType is the stable discriminator stored in the *_type column of a
// join table. It is a table-style name rather than a Go type name so the
// stored value survives refactors.
type OwnerType string

const (
	OwnerGame OwnerType = "games"
	OwnerDlc  OwnerType = "dlcs"
)

// OwnerRef identifies one owning entity by discriminator and primary key.
// Construct refs through GameRef/DlcRef so an unknown discriminator can
// never be built outside this package.
type OwnerRef struct {
	Type OwnerType
	ID   uint
}

// GameRef returns an OwnerRef for a game.
func GameRef(id uint) OwnerRef { return OwnerRef{Type: OwnerGame, ID: id} }

// DlcRef returns an OwnerRef for a DLC.
func DlcRef(id uint) OwnerRef { return OwnerRef{Type: OwnerDlc, ID: id} }

// OwnerRefFor maps a discriminator string (e.g. a route segment) to an
// OwnerRef. The boolean is false for unknown discriminators.
func OwnerRefFor(ownerType string, id uint) (OwnerRef, bool) {
	switch OwnerType(ownerType) {
	case OwnerGame:
		return GameRef(id), true
	case OwnerDlc:
		return DlcRef(id), true
	}
	return OwnerRef{}, false
}
