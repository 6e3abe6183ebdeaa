package output

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/setlist/internal/cmd/table"
)

// TableFormatter renders table.Data, structs and slices of structs as a
// table. Anything else is written as JSON.
type TableFormatter struct{}

// Format implements Formatter.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case table.Data:
		return render(w, v)
	case *table.Data:
		return render(w, *v)
	}
	if tbl, ok := reflectTable(data); ok {
		return render(w, tbl)
	}
	return (&JSONFormatter{Indent: "  "}).Format(w, data)
}

var alignments = map[table.Align]tw.Align{
	table.AlignLeft:   tw.AlignLeft,
	table.AlignCenter: tw.AlignCenter,
	table.AlignRight:  tw.AlignRight,
}

func render(w io.Writer, data table.Data) error {
	config := tablewriter.Config{}
	if len(data.ColumnAlignment) > 0 {
		perColumn := make([]tw.Align, len(data.ColumnAlignment))
		for i, align := range data.ColumnAlignment {
			if a, ok := alignments[align]; ok {
				perColumn[i] = a
			} else {
				perColumn[i] = tw.Skip
			}
		}
		config.Header.Alignment = tw.CellAlignment{PerColumn: perColumn}
		config.Row.Alignment = tw.CellAlignment{PerColumn: perColumn}
	}

	tbl := tablewriter.NewTable(w, tablewriter.WithConfig(config))
	if len(data.Headers) > 0 {
		tbl.Header(anySlice(data.Headers)...)
	}
	for _, row := range data.Rows {
		if err := tbl.Append(anySlice(row)...); err != nil {
			return err
		}
	}
	return tbl.Render()
}

func anySlice(cells []string) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}

// reflectTable builds a property/value table from a struct, or one row per
// element from a non-empty slice of structs.
func reflectTable(data any) (table.Data, bool) {
	v := reflect.Indirect(reflect.ValueOf(data))

	switch v.Kind() {
	case reflect.Struct:
		out := table.Data{Headers: []string{"Property", "Value"}}
		for _, col := range columns(v.Type()) {
			out.Rows = append(out.Rows, []string{col.header, cell(v.Field(col.index))})
		}
		return out, true

	case reflect.Slice:
		if v.Len() == 0 {
			return table.Data{}, false
		}
		elemType := v.Type().Elem()
		if elemType.Kind() == reflect.Pointer {
			elemType = elemType.Elem()
		}
		if elemType.Kind() != reflect.Struct {
			return table.Data{}, false
		}
		cols := columns(elemType)
		out := table.Data{}
		for _, col := range cols {
			out.Headers = append(out.Headers, col.header)
		}
		for i := range v.Len() {
			elem := reflect.Indirect(v.Index(i))
			row := make([]string, len(cols))
			if elem.IsValid() {
				for j, col := range cols {
					row[j] = cell(elem.Field(col.index))
				}
			}
			out.Rows = append(out.Rows, row)
		}
		return out, true
	}

	return table.Data{}, false
}

type column struct {
	index  int
	header string
}

// columns lists exported fields that JSON does not hide, titled from their
// JSON names.
func columns(t reflect.Type) []column {
	caser := cases.Title(language.English)
	var cols []column
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}
		cols = append(cols, column{index: i, header: caser.String(strings.ReplaceAll(name, "_", " "))})
	}
	return cols
}

func cell(v reflect.Value) string {
	return fmt.Sprintf("%v", v.Interface())
}
