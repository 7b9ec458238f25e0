package content

// Translation mirrors one row in `entity_translation`: the localized text
// for one entity in one language.  Summary and body are optional at the
// schema level; the repository coalesces them to empty strings.
type Translation struct {
	EntityType string `db:"entity_type"`
	EntityID   uint64 `db:"entity_id"`
	Lang       string `db:"lang"`
	Title      string `db:"title"`
	Summary    string `db:"summary"`
	Body       string `db:"body"`
}
