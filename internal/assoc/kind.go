package assoc

// Kind is the static registration of one association kind: which join
// table it lives in, which reference table its parents come from, which
// owner discriminators it accepts, and which extra pivot columns it
// carries. All kinds are registered below at package init; handlers look
// them up by name, nothing is resolved from strings at storage time.
type Kind struct {
	// Name is the registry key and route segment, e.g. "tags".
	Name string

	// Table is the join table, e.g. "taggables".
	Table string

	// ParentTable holds the reference entities, e.g. "tags".
	ParentTable string

	// ParentColumn is the join table's foreign key to ParentTable.
	ParentColumn string

	// OwnerIDColumn and OwnerTypeColumn store the owning entity's id and
	// discriminator, e.g. "taggable_id" / "taggable_type".
	OwnerIDColumn   string
	OwnerTypeColumn string

	// Owners is the allow-list of discriminators this kind accepts.
	Owners []OwnerType

	// Unique marks kinds where (parent, owner) is a pure tag-link and must
	// not repeat. Multi-valued kinds (critic reviews, torrents) leave this
	// false and may hold several records for the same pair.
	Unique bool

	// Extras are the pivot columns specific to this kind, beyond the
	// parent/owner triple and timestamps.
	Extras []string
}

// Allows reports whether the kind accepts the given owner discriminator.
func (k Kind) Allows(t OwnerType) bool {
	for _, o := range k.Owners {
		if o == t {
			return true
		}
	}
	return false
}

func (k Kind) allowsExtra(col string) bool {
	for _, e := range k.Extras {
		if e == col {
			return true
		}
	}
	return false
}

var gameAndDlc = []OwnerType{OwnerGame, OwnerDlc}

// The registry. One entry per "-able" join table.
var (
	Tags = Kind{
		Name: "tags", Table: "taggables", ParentTable: "tags",
		ParentColumn: "tag_id", OwnerIDColumn: "taggable_id", OwnerTypeColumn: "taggable_type",
		Owners: gameAndDlc, Unique: true,
	}
	Genres = Kind{
		Name: "genres", Table: "genreables", ParentTable: "genres",
		ParentColumn: "genre_id", OwnerIDColumn: "genreable_id", OwnerTypeColumn: "genreable_type",
		Owners: gameAndDlc, Unique: true,
	}
	Categories = Kind{
		Name: "categories", Table: "categoriables", ParentTable: "categories",
		ParentColumn: "category_id", OwnerIDColumn: "categoriable_id", OwnerTypeColumn: "categoriable_type",
		Owners: gameAndDlc, Unique: true,
	}
	Platforms = Kind{
		Name: "platforms", Table: "platformables", ParentTable: "platforms",
		ParentColumn: "platform_id", OwnerIDColumn: "platformable_id", OwnerTypeColumn: "platformable_type",
		Owners: gameAndDlc, Unique: true,
	}
	Developers = Kind{
		Name: "developers", Table: "developerables", ParentTable: "developers",
		ParentColumn: "developer_id", OwnerIDColumn: "developerable_id", OwnerTypeColumn: "developerable_type",
		Owners: gameAndDlc, Unique: true,
	}
	Publishers = Kind{
		Name: "publishers", Table: "publisherables", ParentTable: "publishers",
		ParentColumn: "publisher_id", OwnerIDColumn: "publisherable_id", OwnerTypeColumn: "publisherable_type",
		Owners: gameAndDlc, Unique: true,
	}
	Languages = Kind{
		Name: "languages", Table: "languageables", ParentTable: "languages",
		ParentColumn: "language_id", OwnerIDColumn: "languageable_id", OwnerTypeColumn: "languageable_type",
		Owners: gameAndDlc, Unique: true,
		Extras: []string{"menu", "dubs", "subtitles"},
	}
	Requirements = Kind{
		Name: "requirements", Table: "requirementables", ParentTable: "requirement_types",
		ParentColumn: "requirement_type_id", OwnerIDColumn: "requirementable_id", OwnerTypeColumn: "requirementable_type",
		Owners: []OwnerType{OwnerGame},
		Extras: []string{"so", "dx", "cpu", "ram", "gpu", "rom", "obs", "network"},
	}
	Stores = Kind{
		Name: "stores", Table: "storeables", ParentTable: "stores",
		ParentColumn: "store_id", OwnerIDColumn: "storeable_id", OwnerTypeColumn: "storeable_type",
		Owners: gameAndDlc, Unique: true,
		Extras: []string{"price", "url"},
	}
	Critics = Kind{
		Name: "critics", Table: "criticables", ParentTable: "critics",
		ParentColumn: "critic_id", OwnerIDColumn: "criticable_id", OwnerTypeColumn: "criticable_type",
		Owners: gameAndDlc,
		Extras: []string{"rate", "url", "posted_at"},
	}
	Crackers = Kind{
		Name: "crackers", Table: "crackables", ParentTable: "crackers",
		ParentColumn: "cracker_id", OwnerIDColumn: "crackable_id", OwnerTypeColumn: "crackable_type",
		Owners: []OwnerType{OwnerGame}, Unique: true,
		Extras: []string{"cracked_at"},
	}
	Torrents = Kind{
		Name: "torrents", Table: "torrentables", ParentTable: "torrent_providers",
		ParentColumn: "torrent_provider_id", OwnerIDColumn: "torrentable_id", OwnerTypeColumn: "torrentable_type",
		Owners: []OwnerType{OwnerGame},
		Extras: []string{"url", "posted_at"},
	}
)

var registry = map[string]Kind{}

func init() {
	for _, k := range []Kind{
		Tags, Genres, Categories, Platforms, Developers, Publishers,
		Languages, Requirements, Stores, Critics, Crackers, Torrents,
	} {
		registry[k.Name] = k
	}
}

// KindByName resolves a kind from its registry name. The boolean is false
// for unknown names.
func KindByName(name string) (Kind, bool) {
	k, ok := registry[name]
	return k, ok
}

// KindNames lists every registered kind name. Order is not defined.
func KindNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
