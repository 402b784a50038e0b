package i18n

// Columns is the persisted shape of a localized field: one column per
// supported locale. Models embed it with a bun column prefix, e.g.
//
//	Title i18n.Columns `bun:"embed:title_"`
//
// so a single logical field decomposes into title_en, title_hi and title_sa
// in the table store and recomposes on read.
type Columns struct {
	EN string `bun:"en" json:"en,omitempty"`
	HI string `bun:"hi" json:"hi,omitempty"`
	SA string `bun:"sa" json:"sa,omitempty"`
}

// ColumnsOf decomposes a Text into storage columns. Plain values land in the
// default-locale column.
func ColumnsOf(t Text) Columns {
	variants := t.Variants()
	return Columns{
		EN: variants["en"],
		HI: variants["hi"],
		SA: variants["sa"],
	}
}

// Text recomposes the column set into a localized Text value.
func (c Columns) Text() Text {
	return Localized(map[string]string{
		"en": c.EN,
		"hi": c.HI,
		"sa": c.SA,
	})
}

// Resolve applies the standard fallback chain directly on the column set.
func (c Columns) Resolve(locale string) string {
	return c.Text().Resolve(locale)
}

// IsEmpty reports whether every column is blank.
func (c Columns) IsEmpty() bool {
	return c.EN == "" && c.HI == "" && c.SA == ""
}
