package xmltree

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Structure(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8"?>
<skuidpage unsavedchangeswarning="yes">
	<models>
		<model id="M1" sobject="Account">
			<fields>
				<field id="Name"/>
			</fields>
		</model>
	</models>
</skuidpage>`

	root, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, "skuidpage", root.Name)
	value, ok := root.Attr("unsavedchangeswarning")
	assert.True(t, ok)
	assert.Equal(t, "yes", value)

	models := root.Child("models")
	require.NotNil(t, models)
	require.Len(t, models.Elements(), 1)

	model := models.Elements()[0]
	id, ok := model.Attr("id")
	assert.True(t, ok)
	assert.Equal(t, "M1", id)

	_, ok = model.Attr("missing")
	assert.False(t, ok)
	assert.Nil(t, root.Child("missing"))
}

func TestNode_Text(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantText string
		wantOK   bool
	}{
		{name: "plain text", src: `<label>Account Name</label>`, wantText: "Account Name", wantOK: true},
		{name: "empty element", src: `<label></label>`, wantOK: false},
		{name: "self closing", src: `<label/>`, wantOK: false},
		{name: "whitespace is kept", src: `<label>  </label>`, wantText: "  ", wantOK: true},
		{name: "cdata", src: `<formula><![CDATA[{{A}} & {{B}}]]></formula>`, wantText: "{{A}} & {{B}}", wantOK: true},
		{name: "entities", src: `<formula>A &lt; B</formula>`, wantText: "A < B", wantOK: true},
		{name: "text before child only", src: `<label>Head<b>bold</b>tail</label>`, wantText: "Head", wantOK: true},
		{name: "comment is skipped", src: `<label>One<!-- note -->Two</label>`, wantText: "OneTwo", wantOK: true},
		{name: "child first", src: `<label><b>bold</b>tail</label>`, wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root, err := Parse(strings.NewReader(tc.src))
			require.NoError(t, err)

			text, ok := root.Text()
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantText, text)
		})
	}
}

func TestNode_Descendants(t *testing.T) {
	src := `<field id="outer">
	<a><field id="one"/></a>
	<field id="two"><field id="three"/></field>
	<b><c><field id="four"/></c></b>
</field>`

	root, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	var ids []string
	for _, node := range root.Descendants("field") {
		id, _ := node.Attr("id")
		ids = append(ids, id)
	}

	assert.Equal(t, []string{"outer", "one", "two", "three", "four"}, ids)
	assert.Empty(t, root.Descendants("label"))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "empty", src: ""},
		{name: "whitespace only", src: "  \n"},
		{name: "unclosed element", src: "<root><models>"},
		{name: "mismatched tags", src: "<root><models></root></models>"},
		{name: "two roots", src: "<root/><root/>"},
		{name: "text after root", src: "<root/>junk"},
		{name: "bad attribute", src: `<root id=M1/>`},
		{name: "duplicate attribute", src: `<field id="A" id="B"/>`},
		{name: "duplicate namespaced attribute", src: `<root xmlns:a="u" xmlns:b="u"><f a:id="A" b:id="B"/></root>`},
		{name: "undeclared element prefix", src: `<root><sk:field id="A"/></root>`},
		{name: "undeclared attribute prefix", src: `<root><field sk:id="A"/></root>`},
		{name: "prefix used outside its scope", src: `<root><a xmlns:sk="u"/><sk:field/></root>`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.src))
			assert.Error(t, err)
		})
	}
}

func TestParse_Namespaces(t *testing.T) {
	src := `<root xmlns="urn:page" xmlns:sk="urn:skuid">
	<sk:field id="A" xml:lang="en"/>
	<field sk:id="B"/>
</root>`

	root, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, root.Descendants("field"), 2)

	id, ok := root.Children[0].Attr("id")
	assert.True(t, ok)
	assert.Equal(t, "A", id)
}

func TestParse_DuplicateAttributeMessage(t *testing.T) {
	_, err := Parse(strings.NewReader("<root>\n<field id=\"A\" id=\"B\"/></root>"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed XML at line 2")
	assert.Contains(t, err.Error(), `duplicate attribute "id"`)
}

func TestParse_DeclaredCharset(t *testing.T) {
	// "Café" encoded as ISO-8859-1.
	src := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><label>Caf\xe9</label>")

	root, err := Parse(strings.NewReader(string(src)))
	require.NoError(t, err)

	text, ok := root.Text()
	assert.True(t, ok)
	assert.Equal(t, "Café", text)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "intake.xml")
	require.NoError(t, os.WriteFile(path, []byte(`<skuidpage><models/></skuidpage>`), 0644))

	root, err := ParseFile(path)
	require.NoError(t, err)
	assert.NotNil(t, root.Child("models"))

	_, err = ParseFile(filepath.Join(dir, "missing.xml"))
	assert.Error(t, err)
}
