package console

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/githubnext/runner-guard/pkg/logger"
)

var renderLog = logger.New("console:render")

// RenderStruct renders a Go struct to console output using reflection and struct tags.
// It supports:
// - Rendering structs as markdown-style headers with key-value pairs
// - Rendering slices of structs as tables using the console table renderer
// - Rendering other slices as bulleted lists
//
// Struct tags:
// - `console:"title:My Title"` - Sets the title for a section
// - `console:"header:Column Name"` - Sets the column header name for table columns
// - `console:"default:none"` - Shown instead of a zero value
// - `console:"maxlen:40"` - Truncates long values
// - `console:"omitempty"` - Skips zero values
// - `console:"-"` - Skips the field entirely
func RenderStruct(v any) string {
	renderLog.Printf("Rendering struct: type=%T", v)
	var output strings.Builder
	renderValue(reflect.ValueOf(v), "", &output, 0)
	renderLog.Printf("Struct rendering complete: output_size=%d bytes", output.Len())
	return output.String()
}

// renderValue recursively renders a reflect.Value to the output builder
func renderValue(val reflect.Value, title string, output *strings.Builder, depth int) {
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Struct:
		renderStruct(val, title, output, depth)
	case reflect.Slice, reflect.Array:
		renderSlice(val, title, output, depth)
	}
}

func writeTitle(output *strings.Builder, title string, depth int) {
	if title == "" {
		return
	}
	fmt.Fprintf(output, "%s %s\n\n", strings.Repeat("#", depth+1), title)
}

// renderStruct renders a struct as a title followed by aligned key-value
// pairs. Slice fields become sections of their own after the pairs.
func renderStruct(val reflect.Value, title string, output *strings.Builder, depth int) {
	typ := val.Type()
	renderLog.Printf("Rendering struct: type=%s, title=%s, depth=%d, fields=%d", typ.Name(), title, depth, val.NumField())

	writeTitle(output, title, depth)

	type section struct {
		field reflect.Value
		title string
	}
	var sections []section

	maxFieldLen := 0
	for i := 0; i < val.NumField(); i++ {
		tag := parseConsoleTag(typ.Field(i).Tag.Get("console"))
		if tag.skip || (tag.omitempty && isZeroValue(val.Field(i))) {
			continue
		}
		if name := fieldLabel(typ.Field(i), tag); len(name) > maxFieldLen {
			maxFieldLen = len(name)
		}
	}

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)
		if !fieldType.IsExported() {
			continue
		}

		tag := parseConsoleTag(fieldType.Tag.Get("console"))
		if tag.skip || (tag.omitempty && isZeroValue(field)) {
			continue
		}
		fieldName := fieldLabel(fieldType, tag)

		fieldToCheck := field
		if field.Kind() == reflect.Ptr && !field.IsNil() {
			fieldToCheck = field.Elem()
		}

		switch fieldToCheck.Kind() {
		case reflect.Struct, reflect.Slice, reflect.Array:
			subTitle := tag.title
			if subTitle == "" {
				subTitle = fieldName
			}
			sections = append(sections, section{field: field, title: subTitle})
		default:
			paddedName := fmt.Sprintf("%-*s", maxFieldLen, fieldName)
			fmt.Fprintf(output, "  %s: %s\n", paddedName, formatFieldValueWithTag(field, tag))
		}
	}
	output.WriteString("\n")

	for _, s := range sections {
		renderValue(s.field, s.title, output, depth+1)
	}
}

// renderSlice renders a slice of structs as a table and any other slice as
// a bulleted list. Empty slices render nothing.
func renderSlice(val reflect.Value, title string, output *strings.Builder, depth int) {
	if val.Len() == 0 {
		return
	}

	writeTitle(output, title, depth)

	elemType := val.Type().Elem()
	for elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}

	if elemType.Kind() == reflect.Struct {
		output.WriteString(RenderTable(buildTableConfig(val)))
		output.WriteString("\n")
		return
	}

	for i := 0; i < val.Len(); i++ {
		output.WriteString(FormatListItem(formatFieldValue(val.Index(i))))
		output.WriteString("\n")
	}
	output.WriteString("\n")
}

// buildTableConfig builds a TableConfig from a slice of structs
func buildTableConfig(val reflect.Value) TableConfig {
	var config TableConfig

	elemType := val.Type().Elem()
	for elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}

	var fieldIndices []int
	var fieldTags []consoleTag
	for i := 0; i < elemType.NumField(); i++ {
		field := elemType.Field(i)
		tag := parseConsoleTag(field.Tag.Get("console"))
		if tag.skip || !field.IsExported() {
			continue
		}
		config.Headers = append(config.Headers, fieldLabel(field, tag))
		fieldIndices = append(fieldIndices, i)
		fieldTags = append(fieldTags, tag)
	}

	for i := 0; i < val.Len(); i++ {
		elem := val.Index(i)
		for elem.Kind() == reflect.Ptr {
			if elem.IsNil() {
				break
			}
			elem = elem.Elem()
		}
		if elem.Kind() != reflect.Struct {
			continue
		}

		row := make([]string, 0, len(fieldIndices))
		for j, fieldIdx := range fieldIndices {
			row = append(row, formatFieldValueWithTag(elem.Field(fieldIdx), fieldTags[j]))
		}
		config.Rows = append(config.Rows, row)
	}

	return config
}

func fieldLabel(field reflect.StructField, tag consoleTag) string {
	if tag.header != "" {
		return tag.header
	}
	return field.Name
}

// consoleTag represents parsed console struct tag
type consoleTag struct {
	title      string
	header     string
	defaultVal string
	maxLen     int
	omitempty  bool
	skip       bool
}

// parseConsoleTag parses the console struct tag
func parseConsoleTag(tag string) consoleTag {
	result := consoleTag{}

	if tag == "-" {
		result.skip = true
		return result
	}

	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "omitempty" {
			result.omitempty = true
		} else if after, ok := strings.CutPrefix(part, "title:"); ok {
			result.title = after
		} else if after, ok := strings.CutPrefix(part, "header:"); ok {
			result.header = after
		} else if after, ok := strings.CutPrefix(part, "default:"); ok {
			result.defaultVal = after
		} else if after, ok := strings.CutPrefix(part, "maxlen:"); ok {
			if n, err := strconv.Atoi(after); err == nil {
				result.maxLen = n
			}
		}
	}

	return result
}

// isZeroValue checks if a reflect.Value is the zero value for its type
func isZeroValue(val reflect.Value) bool {
	if !val.IsValid() {
		return true
	}

	switch val.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return val.Len() == 0
	case reflect.Bool:
		return !val.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return val.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return val.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return val.IsNil()
	}

	return false
}

// formatFieldValue formats a reflect.Value as a string for display. Empty
// strings and nil pointers show as "-"; string slices are joined with ", ".
func formatFieldValue(val reflect.Value) string {
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return "-"
		}
		val = val.Elem()
	}

	if !val.IsValid() {
		return "-"
	}

	switch val.Kind() {
	case reflect.String:
		if val.Len() == 0 {
			return "-"
		}
		return val.String()
	case reflect.Bool:
		return strconv.FormatBool(val.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(val.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(val.Uint(), 10)
	case reflect.Slice, reflect.Array:
		if val.Len() == 0 {
			return "-"
		}
		items := make([]string, val.Len())
		for i := 0; i < val.Len(); i++ {
			items[i] = formatFieldValue(val.Index(i))
		}
		return strings.Join(items, ", ")
	}

	if !val.CanInterface() {
		return val.Type().String()
	}
	return fmt.Sprintf("%v", val.Interface())
}

// formatFieldValueWithTag formats a reflect.Value with default and maxlen tag support
func formatFieldValueWithTag(val reflect.Value, tag consoleTag) string {
	baseValue := formatFieldValue(val)

	if tag.defaultVal != "" && isZeroValue(val) {
		baseValue = tag.defaultVal
	}

	if tag.maxLen > 0 && len(baseValue) > tag.maxLen {
		if tag.maxLen > 3 {
			baseValue = baseValue[:tag.maxLen-3] + "..."
		} else {
			baseValue = baseValue[:tag.maxLen]
		}
	}

	return baseValue
}
