package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// modelColumn maps a db tag to the field index path that holds it.
type modelColumn struct {
	name  string
	index []int
}

var modelColumnsCache sync.Map // reflect.Type -> []modelColumn

// InsertModel builds an INSERT from the `db` tags of a struct. Anonymous
// embedded structs contribute their own tagged fields.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return "", nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return "", nil, fmt.Errorf("model must be struct")
	}

	columns := columnsForType(value.Type())
	if len(columns) == 0 {
		return "", nil, fmt.Errorf("model has no db columns")
	}

	names := make([]string, 0, len(columns))
	values := make([]any, 0, len(columns))
	for _, col := range columns {
		names = append(names, col.name)
		values = append(values, value.FieldByIndex(col.index).Interface())
	}

	return InsertInto(table).
		Columns(names...).
		Values(values...).
		Suffix(suffix).
		ToSQL()
}

func columnsForType(typ reflect.Type) []modelColumn {
	if cached, ok := modelColumnsCache.Load(typ); ok {
		return cached.([]modelColumn)
	}

	columns := appendModelColumns(nil, typ, nil)
	modelColumnsCache.Store(typ, columns)
	return columns
}

func appendModelColumns(out []modelColumn, typ reflect.Type, prefix []int) []modelColumn {
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		index := append(append([]int(nil), prefix...), i)

		tag := strings.TrimSpace(strings.Split(field.Tag.Get("db"), ",")[0])
		if field.Anonymous && field.IsExported() && tag == "" && field.Type.Kind() == reflect.Struct {
			out = appendModelColumns(out, field.Type, index)
			continue
		}
		if !field.IsExported() || tag == "" || tag == "-" {
			continue
		}
		out = append(out, modelColumn{name: tag, index: index})
	}
	return out
}
