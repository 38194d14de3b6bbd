package repo

import (
	"strings"

	"github.com/jackc/pgx/v5"
)

// whereClause accumulates conjunctive WHERE conditions together with their
// named arguments. Registering a condition and its argument in one call keeps
// placeholder and parameter aligned by construction, so a filter can never
// reference an argument that was not bound.
type whereClause struct {
	conds []string
	args  pgx.NamedArgs
}

func newWhere() *whereClause {
	return &whereClause{args: pgx.NamedArgs{}}
}

// cond appends a condition that needs no argument, e.g. "is_deleted = false".
func (w *whereClause) cond(c string) *whereClause {
	w.conds = append(w.conds, c)
	return w
}

// condArg appends a condition referencing @name and binds name to val.
func (w *whereClause) condArg(c, name string, val any) *whereClause {
	w.conds = append(w.conds, c)
	w.args[name] = val
	return w
}

// sql renders "WHERE a AND b AND c", or "" when no condition was added.
func (w *whereClause) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conds, " AND ")
}

// namedArgs returns the accumulated arguments, optionally merged with extras.
// Extras win on key collision.
func (w *whereClause) namedArgs(extra pgx.NamedArgs) pgx.NamedArgs {
	out := pgx.NamedArgs{}
	for k, v := range w.args {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// setClause accumulates SET assignments for a partial UPDATE the same way
// whereClause accumulates conditions.
type setClause struct {
	assigns []string
	args    pgx.NamedArgs
}

func newSet() *setClause {
	return &setClause{args: pgx.NamedArgs{}}
}

// set appends an assignment that needs no argument, e.g. "updated_at = now()".
func (s *setClause) set(a string) *setClause {
	s.assigns = append(s.assigns, a)
	return s
}

// setArg appends "column = @name" and binds name to val.
func (s *setClause) setArg(a, name string, val any) *setClause {
	s.assigns = append(s.assigns, a)
	s.args[name] = val
	return s
}

// sql renders the comma-joined assignment list.
func (s *setClause) sql() string {
	return strings.Join(s.assigns, ", ")
}
