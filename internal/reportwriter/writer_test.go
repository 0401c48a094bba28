package reportwriter

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/skuid-intake-report/internal/skuid"
)

const headerLine = "Field Name,Field Label,Model,Object,UI-Only,UI-Only Formula,Show Inline Help"

func TestWriteCSV(t *testing.T) {
	rows := []skuid.Row{
		{FieldAPIName: "Name", FieldLabel: "Account Name", ModelName: "M1", ObjectName: "Account", ShowHelp: "true"},
		{FieldAPIName: "Total", ModelName: "M1", ObjectName: "Account", UIOnly: "true", Formula: "X+Y"},
	}

	tests := []struct {
		name    string
		options CSVOptions
		want    string
	}{
		{
			name:    "defaults",
			options: DefaultCSVOptions(),
			want: headerLine + "\r\n" +
				"Name,Account Name,M1,Account,,,true\r\n" +
				"Total,,M1,Account,true,X+Y,\r\n",
		},
		{
			name:    "lf",
			options: CSVOptions{CRLF: false},
			want: headerLine + "\n" +
				"Name,Account Name,M1,Account,,,true\n" +
				"Total,,M1,Account,true,X+Y,\n",
		},
		{
			name:    "bom",
			options: CSVOptions{BOM: true},
			want: "\xef\xbb\xbf" + headerLine + "\n" +
				"Name,Account Name,M1,Account,,,true\n" +
				"Total,,M1,Account,true,X+Y,\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteCSV(&buf, rows, tc.options))
			if diff := cmp.Diff(tc.want, buf.String()); diff != "" {
				t.Errorf("CSV mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteCSV_Quoting(t *testing.T) {
	rows := []skuid.Row{
		{FieldAPIName: "Desc", FieldLabel: `Say "hi", please`, ModelName: "M", Formula: "IF(A,\nB)"},
		{FieldAPIName: "G", FieldLabel: "x\ry", ModelName: "M"},
	}

	tests := []struct {
		name    string
		options CSVOptions
		want    string
	}{
		{
			name:    "lf",
			options: CSVOptions{},
			want: headerLine + "\n" +
				"Desc,\"Say \"\"hi\"\", please\",M,,,\"IF(A,\nB)\",\n" +
				"G,\"x\ry\",M,,,,\n",
		},
		{
			// Line breaks inside cells keep their original bytes.
			name:    "crlf",
			options: DefaultCSVOptions(),
			want: headerLine + "\r\n" +
				"Desc,\"Say \"\"hi\"\", please\",M,,,\"IF(A,\nB)\",\r\n" +
				"G,\"x\ry\",M,,,,\r\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteCSV(&buf, rows, tc.options))
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, DefaultCSVOptions()))
	assert.Equal(t, headerLine+"\r\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	rows := []skuid.Row{
		{FieldAPIName: "Name", FieldLabel: "Account Name", ModelName: "M1", ObjectName: "Account", ShowHelp: "true"},
		{FieldAPIName: "Code", ModelName: "M1", ObjectName: "Account", UIOnly: "true", Formula: "00123"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, rows, XLSXOptions{Sheet: "Intake"}))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Intake"}, f.GetSheetList())

	got, err := f.GetRows("Intake")
	require.NoError(t, err)
	for i := range got {
		// GetRows drops trailing empty cells.
		for len(got[i]) < len(skuid.Header) {
			got[i] = append(got[i], "")
		}
	}

	want := [][]string{
		skuid.Header,
		{"Name", "Account Name", "M1", "Account", "", "", "true"},
		{"Code", "", "M1", "Account", "true", "00123", ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sheet mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteXLSX_DefaultSheet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil, XLSXOptions{}))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Fields"}, f.GetSheetList())
}
