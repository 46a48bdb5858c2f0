// Package querybuilder renders the small set of Postgres statements the
// repositories need, numbering placeholders in argument order.
package querybuilder

import (
	"strconv"
	"strings"
)

// argList collects bound values and hands out the matching $n placeholders.
type argList struct {
	values []any
}

func (a *argList) bind(value any) string {
	a.values = append(a.values, value)
	return "$" + strconv.Itoa(len(a.values))
}

// expand replaces each ? in expr with the next bound value. A ? without a
// value is left untouched.
func (a *argList) expand(expr string, values []any) string {
	if len(values) == 0 {
		return expr
	}

	var out strings.Builder
	out.Grow(len(expr) + len(values)*2)
	for _, r := range expr {
		if r != '?' || len(values) == 0 {
			out.WriteRune(r)
			continue
		}
		out.WriteString(a.bind(values[0]))
		values = values[1:]
	}
	return out.String()
}

func writeWhere(buf *strings.Builder, conditions []Condition, args *argList) {
	for i, cond := range conditions {
		if i == 0 {
			buf.WriteString(" WHERE ")
		} else {
			buf.WriteString(" AND ")
		}
		buf.WriteString(cond.render(args))
	}
}

func writeSuffix(buf *strings.Builder, suffix string) {
	if suffix == "" {
		return
	}
	buf.WriteByte(' ')
	buf.WriteString(suffix)
}
