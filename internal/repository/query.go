package repository

import (
	"fmt"
	"strings"
)

const (
	// DefaultPage and DefaultLimit apply when a list request omits or
	// mangles its pagination params.
	DefaultPage  = 1
	DefaultLimit = 12

	// MaxLimit caps how many rows a single page may request.
	MaxLimit = 100
)

// ListParams is the pagination window shared by every list query.
type ListParams struct {
	Page  int
	Limit int
}

// Normalized clamps the window to valid bounds: page and limit fall back
// to their defaults when below 1, limit is capped at MaxLimit.
func (p ListParams) Normalized() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Skip is the row offset of the window.
func (p ListParams) Skip() int {
	return (p.Page - 1) * p.Limit
}

// Predicate accumulates AND-combined SQL conditions with positional
// arguments. Every listing predicate starts from the active-row filter;
// inactive rows never appear in list results.
//
// Helpers silently skip empty values, so handlers can pass query params
// straight through without presence checks.
type Predicate struct {
	conds []string
	args  []any
}

// NewPredicate starts a predicate anchored on the given is_active
// column (qualified when the query joins, e.g. "l.is_active").
func NewPredicate(activeColumn string) *Predicate {
	return &Predicate{
		conds: []string{activeColumn + " = true"},
	}
}

// Bind registers a query argument and returns its placeholder. Exposed
// so callers can append LIMIT/OFFSET args to the same argument list.
func (p *Predicate) Bind(value any) string {
	p.args = append(p.args, value)
	return fmt.Sprintf("$%d", len(p.args))
}

// Eq adds an exact-match condition. Skipped when value is empty.
func (p *Predicate) Eq(column, value string) {
	if value == "" {
		return
	}
	p.conds = append(p.conds, fmt.Sprintf("%s = %s", column, p.Bind(value)))
}

// ILikeContains adds a case-insensitive substring condition. Skipped
// when value is empty.
func (p *Predicate) ILikeContains(column, value string) {
	if value == "" {
		return
	}
	p.conds = append(p.conds, fmt.Sprintf("%s ILIKE %s", column, p.Bind(containsPattern(value))))
}

// SearchOr adds a single OR group of case-insensitive substring matches
// across the given columns, all bound to one argument. Skipped when
// value is empty.
func (p *Predicate) SearchOr(value string, columns ...string) {
	if value == "" || len(columns) == 0 {
		return
	}

	placeholder := p.Bind(containsPattern(value))

	parts := make([]string, len(columns))
	for i, column := range columns {
		parts[i] = fmt.Sprintf("%s ILIKE %s", column, placeholder)
	}

	p.conds = append(p.conds, "("+strings.Join(parts, " OR ")+")")
}

// NumRange adds inclusive lower/upper bounds on a numeric column. Either
// bound may be nil.
func (p *Predicate) NumRange(column string, min, max *float64) {
	if min != nil {
		p.conds = append(p.conds, fmt.Sprintf("%s >= %s", column, p.Bind(*min)))
	}
	if max != nil {
		p.conds = append(p.conds, fmt.Sprintf("%s <= %s", column, p.Bind(*max)))
	}
}

// Where renders the full WHERE clause.
func (p *Predicate) Where() string {
	return "WHERE " + strings.Join(p.conds, " AND ")
}

// Args returns a copy of the bound arguments. Copied so the count query
// can snapshot its argument list before LIMIT/OFFSET are bound for the
// fetch.
func (p *Predicate) Args() []any {
	out := make([]any, len(p.args))
	copy(out, p.args)
	return out
}

// byIDWhere renders the WHERE clause of a single-row lookup. Public
// reads filter inactive rows out; mutation reads must not, or an owner
// who deactivates a row could never reactivate or delete it.
func byIDWhere(alias string, activeOnly bool) string {
	clause := fmt.Sprintf("WHERE %s.id = $1", alias)
	if activeOnly {
		clause += fmt.Sprintf(" AND %s.is_active = true", alias)
	}
	return clause
}

// containsPattern builds an ILIKE pattern matching value as a literal
// substring. LIKE metacharacters in user input are escaped so they
// cannot widen the match.
func containsPattern(value string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
	return "%" + escaped + "%"
}

// SetClause accumulates columns for a partial UPDATE. Callers add only
// the fields present in the request, so absent fields are left
// untouched.
type SetClause struct {
	parts []string
	args  []any
}

// Set registers a column assignment.
func (s *SetClause) Set(column string, value any) {
	s.args = append(s.args, value)
	s.parts = append(s.parts, fmt.Sprintf("%s = $%d", column, len(s.args)))
}

// Empty reports whether no assignments were registered.
func (s *SetClause) Empty() bool {
	return len(s.parts) == 0
}

// Bind registers a bare argument (e.g. the row id in the WHERE clause)
// and returns its placeholder.
func (s *SetClause) Bind(value any) string {
	s.args = append(s.args, value)
	return fmt.Sprintf("$%d", len(s.args))
}

// Assignments renders the SET list, always touching updated_at.
func (s *SetClause) Assignments() string {
	return strings.Join(append(s.parts, "updated_at = now()"), ", ")
}

// Args returns the accumulated arguments.
func (s *SetClause) Args() []any {
	return s.args
}
