// =============================================================================
// SKUID Intake Report - Joiner & Row Builder
// =============================================================================
//
// The joiner decorates extracted fields with the overrides collected from
// field editors, then flattens models into report rows.
//
// MATCHING RULES:
//   - A record matches a field when its (model, field) key equals the
//     field's (Model.Name, Field.APIName).
//   - When several records share a key, the one that appears LAST in the
//     document wins.
//   - Records missing either half of the key match nothing.
//
// =============================================================================

package skuid

import "github.com/ginjaninja78/skuid-intake-report/internal/xmltree"

// Index is a lookup table of override values by key.
type Index map[Key]Value

// NewIndex builds an index from records in document order. A later record
// replaces an earlier one with the same key.
func NewIndex(records []Override) Index {
	index := make(Index, len(records))
	for _, record := range records {
		key, ok := record.Key()
		if !ok {
			continue
		}
		index[key] = record.Value
	}
	return index
}

// Lookup returns the value stored for key.
func (idx Index) Lookup(key Key) (Value, bool) {
	value, ok := idx[key]
	return value, ok
}

// JoinStats summarises what the join applied.
type JoinStats struct {
	// LabelsApplied counts fields that received a label override.
	LabelsApplied int

	// HelpApplied counts fields that received an inline-help flag.
	HelpApplied int

	// Unmatched lists the override records that addressed no field,
	// including records with a missing model or field id.
	Unmatched []Override
}

// Join applies label and help overrides to every field of every model.
// Fields are updated in place.
func Join(models []*Model, overrides Overrides) JoinStats {
	var stats JoinStats

	labels := NewIndex(overrides.Labels)
	help := NewIndex(overrides.Help)
	known := make(map[Key]bool)

	for _, model := range models {
		for _, field := range model.Fields {
			key := Key{Model: model.Name, Field: field.APIName}
			known[key] = true

			if value, ok := help.Lookup(key); ok {
				field.HelpText = value
				stats.HelpApplied++
			}
			if value, ok := labels.Lookup(key); ok {
				field.Label = value
				stats.LabelsApplied++
			}
		}
	}

	for _, records := range [][]Override{overrides.Help, overrides.Labels} {
		for _, record := range records {
			if key, ok := record.Key(); !ok || !known[key] {
				stats.Unmatched = append(stats.Unmatched, record)
			}
		}
	}

	return stats
}

// BuildRows flattens models into report rows: model order outer, field
// order inner. Absent values become empty cells.
func BuildRows(models []*Model) []Row {
	var rows []Row
	for _, model := range models {
		for _, field := range model.Fields {
			rows = append(rows, Row{
				FieldAPIName: field.APIName,
				FieldLabel:   field.Label.String(),
				ModelName:    model.Name,
				ObjectName:   model.Object.String(),
				UIOnly:       field.UIOnly.String(),
				Formula:      field.Formula.String(),
				ShowHelp:     field.HelpText.String(),
			})
		}
	}
	return rows
}

// =============================================================================
// REPORT
// =============================================================================

// Report is the complete result of processing one page.
type Report struct {
	Models    []*Model
	Overrides Overrides
	Rows      []Row

	// SkippedFields counts model field elements without an id.
	SkippedFields int

	JoinStats
}

// FieldCount returns the number of extracted fields.
func (r *Report) FieldCount() int {
	count := 0
	for _, model := range r.Models {
		count += len(model.Fields)
	}
	return count
}

// BuildReport runs the extractor, the collector and the joiner over a
// parsed page and returns the flattened rows.
func BuildReport(root *xmltree.Node) (*Report, error) {
	extraction, err := Extract(root)
	if err != nil {
		return nil, err
	}

	overrides := Collect(root)
	stats := Join(extraction.Models, overrides)

	return &Report{
		Models:        extraction.Models,
		Overrides:     overrides,
		Rows:          BuildRows(extraction.Models),
		SkippedFields: extraction.SkippedFields,
		JoinStats:     stats,
	}, nil
}
