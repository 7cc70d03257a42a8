package model

// RangeField is the canonical name of the column holding a row's numeric
// range description. Source adapters remap drifted header spellings to
// this name before rows reach the query engine.
const RangeField = "Range"

// Table describes one instrument table: where its rows live in the
// spreadsheet and how they are queried. The instrument catalog is
// configuration, not code — adding an instrument means adding a Table.
type Table struct {
	// Name identifies the table (e.g., "Magnetic Flow Meter") and is the
	// value of the Instrument column on its rows.
	Name string `yaml:"name" mapstructure:"name"`

	// Slug is the URL path segment for the instrument's query page.
	Slug string `yaml:"slug" mapstructure:"slug"`

	// Tab is the spreadsheet tab holding the rows. Empty means the
	// spreadsheet's first tab, filtered by the Instrument column.
	Tab string `yaml:"tab,omitempty" mapstructure:"tab"`

	// Columns lists the canonical column names in display order.
	Columns []string `yaml:"columns" mapstructure:"columns"`

	// Remap translates drifted source header spellings to canonical
	// column names (e.g., "Rnage" -> "Range"). Applied by the source
	// adapter; the query engine never sees raw headers.
	Remap map[string]string `yaml:"remap,omitempty" mapstructure:"remap"`

	// Facets lists the columns used for cascading dropdown queries, in
	// the order the UI narrows them.
	Facets []string `yaml:"facets,omitempty" mapstructure:"facets"`

	// QueryLabel names the numeric quantity matched against the Range
	// column (e.g., "Flow rate (m3/h)").
	QueryLabel string `yaml:"query_label" mapstructure:"query_label"`
}

// HasFacet reports whether name is one of the table's configured facets.
func (t Table) HasFacet(name string) bool {
	for _, f := range t.Facets {
		if f == name {
			return true
		}
	}
	return false
}
