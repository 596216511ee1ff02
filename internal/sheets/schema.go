package sheets

// ColumnLayout pins the positional contract with the external sheet. The
// sheet has no schema of its own; these indices are the schema, versioned so
// a reordered sheet becomes a config change instead of silent garbage.
type ColumnLayout struct {
	Version int

	Name            int // client name
	RequirementType int // free-text classification column
	DetailC         int
	DetailD         int // location text
	DetailE         int // description
	Email           int
	Phone           int
	Company         int
	City            int
}

// DefaultLayout matches the brokerage sheet as of layout version 1:
// A=name, B=requirement type, C/D/E=details, F=email, G=phone, H=company,
// K=city.
func DefaultLayout() ColumnLayout {
	return ColumnLayout{
		Version:         1,
		Name:            0,
		RequirementType: 1,
		DetailC:         2,
		DetailD:         3,
		DetailE:         4,
		Email:           5,
		Phone:           6,
		Company:         7,
		City:            10,
	}
}

// Validate checks the layout against a header row. Data rows may be ragged
// (trailing blanks are dropped by both sources), but the header row must at
// least cover the classification and identity columns.
func (l ColumnLayout) Validate(headers []string) error {
	for _, idx := range []int{l.Name, l.RequirementType, l.DetailC, l.DetailD, l.DetailE, l.Email, l.Phone, l.Company, l.City} {
		if idx < 0 {
			return srcErr(KindMalformed, "layout v%d has a negative column index", l.Version)
		}
	}
	if len(headers) <= l.RequirementType || len(headers) <= l.Name {
		return srcErr(KindMalformed, "header row has %d columns, layout v%d needs the requirement-type column at %d",
			len(headers), l.Version, l.RequirementType)
	}
	return nil
}

// cell indexes a possibly ragged row without panicking.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
