// Package output provides formatters for command output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	md "github.com/nao1215/markdown"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format types for output.
type Format string

const (
	// FormatTable represents table output format.
	FormatTable Format = "table"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
	// FormatMarkdown represents a markdown table.
	FormatMarkdown Format = "markdown"
)

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc allows functions to implement Formatter.
type FormatterFunc func(io.Writer, any) error

// Format implements the Formatter interface.
func (f FormatterFunc) Format(w io.Writer, data any) error {
	return f(w, data)
}

// NewFormatter creates appropriate formatter based on format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format outputs data in YAML format.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	yamlData, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(yamlData)
	return err
}

// TableFormatter outputs table format.
type TableFormatter struct{}

// Format outputs data in table format.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if tableData, ok := toData(data); ok {
		return f.formatTable(w, tableData)
	}

	// Fall back to JSON for non-table data
	jsonFormatter := &JSONFormatter{Indent: "  "}
	return jsonFormatter.Format(w, data)
}

func (f *TableFormatter) formatTable(w io.Writer, data Data) error {
	config := tablewriter.Config{}

	if len(data.ColumnAlignment) > 0 {
		twAlign := make([]tw.Align, len(data.ColumnAlignment))
		for i, align := range data.ColumnAlignment {
			switch align {
			case AlignLeft:
				twAlign[i] = tw.AlignLeft
			case AlignCenter:
				twAlign[i] = tw.AlignCenter
			case AlignRight:
				twAlign[i] = tw.AlignRight
			default:
				twAlign[i] = tw.Skip
			}
		}

		config.Header.Alignment = tw.CellAlignment{PerColumn: twAlign}
		config.Row.Alignment = tw.CellAlignment{PerColumn: twAlign}
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))

	if len(data.Headers) > 0 {
		headers := make([]any, len(data.Headers))
		for i, h := range data.Headers {
			headers[i] = h
		}
		table.Header(headers...)
	}

	for _, row := range data.Rows {
		rowData := make([]any, len(row))
		for i, cell := range row {
			rowData[i] = cell
		}
		if err := table.Append(rowData...); err != nil {
			return err
		}
	}

	return table.Render()
}

// MarkdownFormatter outputs a GitHub-flavored markdown table.
type MarkdownFormatter struct {
	// Title, when set, is rendered as a level-two heading above the table.
	Title string
}

// Format outputs data as markdown.
func (f *MarkdownFormatter) Format(w io.Writer, data any) error {
	doc := md.NewMarkdown(w)
	if f.Title != "" {
		doc.H2(f.Title).LF()
	}

	tableData, ok := toData(data)
	if !ok {
		raw, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return err
		}
		return doc.CodeBlocks(md.SyntaxHighlight("json"), string(raw)).Build()
	}

	return doc.Table(md.TableSet{
		Header: tableData.Headers,
		Rows:   tableData.Rows,
	}).Build()
}

// Align is the horizontal alignment of a table column.
type Align int

// Column alignments.
const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Data represents data formatted for table output.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align
}

// DetectFormat auto-detects format based on terminal and environment.
func DetectFormat(explicitFormat string) Format {
	if explicitFormat != "" {
		return Format(strings.ToLower(explicitFormat))
	}

	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}

	// Default to JSON for pipes/redirects
	return FormatJSON
}

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, FormatMarkdown, "":
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: table, json, yaml, markdown", s)
	}
}

// Tabular is implemented by values that know how to lay themselves out
// as a table.
type Tabular interface {
	TableData() Data
}

// toData converts data to Data, using Tabular when available and
// reflection over struct slices otherwise.
func toData(data any) (Data, bool) {
	switch v := data.(type) {
	case Data:
		return v, true
	case *Data:
		return *v, v != nil
	case Tabular:
		return v.TableData(), true
	}

	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		v = v.Elem()
	}

	switch {
	case v.Kind() == reflect.Slice && v.Len() > 0 && v.Index(0).Kind() == reflect.Struct:
		return structSliceToTableData(v), true
	case v.Kind() == reflect.Struct:
		return singleStructToTableData(v), true
	}
	return Data{}, false
}

// structSliceToTableData converts a slice of structs to Data.
func structSliceToTableData(v reflect.Value) Data {
	elemType := v.Index(0).Type()

	var headers []string
	for i := 0; i < elemType.NumField(); i++ {
		headers = append(headers, columnName(elemType.Field(i)))
	}

	var rows [][]string
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		var row []string
		for j := 0; j < elem.NumField(); j++ {
			row = append(row, fmt.Sprintf("%v", elem.Field(j).Interface()))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows}
}

// singleStructToTableData converts a single struct to a key-value table.
func singleStructToTableData(v reflect.Value) Data {
	elemType := v.Type()

	var rows [][]string
	for i := 0; i < elemType.NumField(); i++ {
		rows = append(rows, []string{
			columnName(elemType.Field(i)),
			fmt.Sprintf("%v", v.Field(i).Interface()),
		})
	}

	return Data{Headers: []string{"Property", "Value"}, Rows: rows}
}

// columnName uses the json tag if available, otherwise the field name.
func columnName(field reflect.StructField) string {
	jsonTag := field.Tag.Get("json")
	if jsonTag == "" || jsonTag == "-" {
		return field.Name
	}
	if idx := strings.Index(jsonTag, ","); idx > 0 {
		jsonTag = jsonTag[:idx]
	}
	caser := cases.Title(language.English)
	return caser.String(strings.ReplaceAll(jsonTag, "_", " "))
}
