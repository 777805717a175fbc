package store

import (
	sq "github.com/Masterminds/squirrel"
)

// Query filters and orders a List or Count. The zero value matches every
// record in store order. Methods return a copy so a base query can be
// extended without aliasing.
type Query struct {
	where []sq.Sqlizer
	order []string
}

// Eq filters on column = v. A slice value becomes an IN list.
func (q Query) Eq(column string, v any) Query {
	return q.with(sq.Eq{column: v}, "")
}

// NotEq filters on column <> v.
func (q Query) NotEq(column string, v any) Query {
	return q.with(sq.NotEq{column: v}, "")
}

func (q Query) Asc(column string) Query {
	return q.with(nil, column+" ASC")
}

func (q Query) Desc(column string) Query {
	return q.with(nil, column+" DESC")
}

func (q Query) with(pred sq.Sqlizer, order string) Query {
	out := Query{
		where: append([]sq.Sqlizer(nil), q.where...),
		order: append([]string(nil), q.order...),
	}
	if pred != nil {
		out.where = append(out.where, pred)
	}
	if order != "" {
		out.order = append(out.order, order)
	}
	return out
}

func (q Query) applySelect(b sq.SelectBuilder) sq.SelectBuilder {
	for _, w := range q.where {
		b = b.Where(w)
	}
	if len(q.order) > 0 {
		b = b.OrderBy(q.order...)
	}
	return b
}
