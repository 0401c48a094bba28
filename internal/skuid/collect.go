package skuid

import "github.com/ginjaninja78/skuid-intake-report/internal/xmltree"

// Collect gathers label and inline-help overrides from every basic field
// editor in the page, in document order.
//
// A field editor's model binding and a field's id are taken as found; when
// either is missing the record is still collected and simply matches nothing
// at join time.
func Collect(root *xmltree.Node) Overrides {
	var overrides Overrides

	for _, editor := range root.Descendants(elemBasicFieldEditor) {
		model := valueOf(editor.Attr(attrModel))

		for _, field := range editor.Descendants(elemField) {
			id := valueOf(field.Attr(attrID))

			if showHelp, ok := field.Attr(attrShowHelp); ok {
				overrides.Help = append(overrides.Help, Override{
					Model: model,
					Field: id,
					Value: Some(showHelp),
				})
			}

			for _, label := range field.Descendants(elemLabel) {
				overrides.Labels = append(overrides.Labels, Override{
					Model: model,
					Field: id,
					Value: valueOf(label.Text()),
				})
			}
		}
	}

	return overrides
}
