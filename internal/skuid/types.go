// =============================================================================
// SKUID Intake Report - Domain Types
// =============================================================================
//
// These types describe what the report extracts from a SKUID page export:
//
//   Model    one <model> element: its id, bound object and fields
//   Field    one <field> element inside a model, decorated with overrides
//   Override one label or inline-help record found under a field editor
//   Row      one flattened line of the report
//
// Optional attributes are carried as Value so that "absent" and "present but
// empty" stay distinct all the way to the writer.
//
// =============================================================================

package skuid

// =============================================================================
// OPTIONAL VALUES
// =============================================================================

// Value is an optional string.
// The zero Value is absent.
type Value struct {
	value   string
	present bool
}

// Some returns a present Value holding s.
func Some(s string) Value {
	return Value{value: s, present: true}
}

// None returns an absent Value.
func None() Value {
	return Value{}
}

// valueOf adapts the (string, bool) lookups of the XML tree.
func valueOf(s string, ok bool) Value {
	if !ok {
		return None()
	}
	return Some(s)
}

// Get returns the string and whether it is present.
func (v Value) Get() (string, bool) {
	return v.value, v.present
}

// Present reports whether the value is set.
func (v Value) Present() bool {
	return v.present
}

// String renders an absent value as the empty string.
func (v Value) String() string {
	return v.value
}

// =============================================================================
// MODEL AND FIELD
// =============================================================================

// Model is a SKUID data model bound to an underlying object.
type Model struct {
	// Name is the model's id. It is unique within a page.
	Name string

	// Object is the bound object name (the sobject attribute).
	Object Value

	// Fields are the model's fields in document order.
	Fields []*Field
}

// Field is one field of a model.
type Field struct {
	// APIName is the field's id. Fields without one are never recorded.
	APIName string

	// Label is the display label override from a field editor.
	Label Value

	// UIOnly is the raw uionly attribute ("true" for UI-only fields).
	UIOnly Value

	// Formula is the UI-only formula text. Only set for UI-only fields
	// whose display type is FORMULA.
	Formula Value

	// HelpText is the showhelp flag from a field editor.
	HelpText Value
}

// =============================================================================
// OVERRIDES
// =============================================================================

// Override is a value found under a field editor, addressed by model and
// field id. Either part of the address may be missing in the export, in
// which case the record matches no field.
type Override struct {
	Model Value
	Field Value
	Value Value
}

// Key returns the record's join key and whether both parts are present.
func (o Override) Key() (Key, bool) {
	model, modelOK := o.Model.Get()
	field, fieldOK := o.Field.Get()
	if !modelOK || !fieldOK {
		return Key{}, false
	}
	return Key{Model: model, Field: field}, true
}

// Overrides holds everything the collector found.
type Overrides struct {
	Labels []Override
	Help   []Override
}

// Key addresses a field within a model.
type Key struct {
	Model string
	Field string
}

// =============================================================================
// ROWS
// =============================================================================

// Header is the fixed header line of the report.
var Header = []string{
	"Field Name",
	"Field Label",
	"Model",
	"Object",
	"UI-Only",
	"UI-Only Formula",
	"Show Inline Help",
}

// Row is one line of the report.
type Row struct {
	FieldAPIName string
	FieldLabel   string
	ModelName    string
	ObjectName   string
	UIOnly       string
	Formula      string
	ShowHelp     string
}

// Record returns the row's cells in header order.
func (r Row) Record() []string {
	return []string{
		r.FieldAPIName,
		r.FieldLabel,
		r.ModelName,
		r.ObjectName,
		r.UIOnly,
		r.Formula,
		r.ShowHelp,
	}
}
