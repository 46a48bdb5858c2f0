package querybuilder

// Condition is one predicate of a WHERE clause. Predicates are joined with AND.
type Condition interface {
	render(args *argList) string
}

type conditionFunc func(args *argList) string

func (f conditionFunc) render(args *argList) string { return f(args) }

func Eq(column string, value any) Condition {
	return conditionFunc(func(args *argList) string {
		return column + " = " + args.bind(value)
	})
}

func IsNull(column string) Condition {
	return conditionFunc(func(*argList) string { return column + " IS NULL" })
}

func IsNotNull(column string) Condition {
	return conditionFunc(func(*argList) string { return column + " IS NOT NULL" })
}
