package skuid

import (
	"errors"
	"fmt"

	"github.com/ginjaninja78/skuid-intake-report/internal/xmltree"
)

// Element and attribute names used by SKUID page exports.
const (
	elemModels           = "models"
	elemField            = "field"
	elemFormula          = "formula"
	elemBasicFieldEditor = "basicfieldeditor"
	elemLabel            = "label"
	attrID               = "id"
	attrObject           = "sobject"
	attrUIOnly           = "uionly"
	attrDisplayType      = "displaytype"
	attrModel            = "model"
	attrShowHelp         = "showhelp"
	displayTypeFormula   = "FORMULA"
)

var (
	// ErrNoModels is returned when the document root has no <models> child.
	ErrNoModels = errors.New("document has no models element")

	// ErrModelWithoutID is returned for a model element without an id.
	ErrModelWithoutID = errors.New("model element has no id")

	// ErrMissingFormula is returned for a UI-only FORMULA field that has no
	// <formula> child.
	ErrMissingFormula = errors.New("formula field has no formula element")
)

// Extraction is the extractor's output.
type Extraction struct {
	// Models are the page's models in document order.
	Models []*Model

	// SkippedFields counts field elements dropped for lacking an id.
	SkippedFields int
}

// Extract walks the <models> section of a page and builds one Model per
// model element, each holding every field element found beneath it.
//
// The uionly marker is read before the id check, so a field without an id
// is still validated for its formula even though it is then dropped.
func Extract(root *xmltree.Node) (*Extraction, error) {
	container := root.Child(elemModels)
	if container == nil {
		return nil, ErrNoModels
	}

	extraction := &Extraction{}

	for index, element := range container.Elements() {
		name, ok := element.Attr(attrID)
		if !ok {
			return nil, fmt.Errorf("model %d (<%s>): %w", index+1, element.Name, ErrModelWithoutID)
		}

		model := &Model{
			Name:   name,
			Object: valueOf(element.Attr(attrObject)),
		}

		for _, fieldElement := range element.Descendants(elemField) {
			field, err := extractField(fieldElement)
			if err != nil {
				return nil, fmt.Errorf("model %s: %w", name, err)
			}
			if field == nil {
				extraction.SkippedFields++
				continue
			}
			model.Fields = append(model.Fields, field)
		}

		extraction.Models = append(extraction.Models, model)
	}

	return extraction, nil
}

// extractField reads one field element. It returns nil for fields without
// an id.
func extractField(element *xmltree.Node) (*Field, error) {
	field := &Field{}

	if uiOnly, ok := element.Attr(attrUIOnly); ok {
		field.UIOnly = Some(uiOnly)

		if displayType, _ := element.Attr(attrDisplayType); displayType == displayTypeFormula {
			formula := element.Child(elemFormula)
			if formula == nil {
				id, _ := element.Attr(attrID)
				return nil, fmt.Errorf("field %q: %w", id, ErrMissingFormula)
			}
			field.Formula = valueOf(formula.Text())
		}
	}

	apiName, ok := element.Attr(attrID)
	if !ok {
		return nil, nil
	}
	field.APIName = apiName

	return field, nil
}
