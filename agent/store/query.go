package store

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/uptrace/bun"
)

// CarField is a column of the cars table that may appear in a filter.
type CarField string

const (
	FieldBrand           CarField = "brand"
	FieldModel           CarField = "model"
	FieldCategory        CarField = "category"
	FieldLocationCity    CarField = "location_city"
	FieldLocationState   CarField = "location_state"
	FieldLocationAddress CarField = "location_address"
)

var filterableFields = map[CarField]struct{}{
	FieldBrand:           {},
	FieldModel:           {},
	FieldCategory:        {},
	FieldLocationCity:    {},
	FieldLocationState:   {},
	FieldLocationAddress: {},
}

const likeEscape = '!'

// Contains is a case-insensitive substring match on one field.
type Contains struct {
	Field CarField
	Term  string
}

// CarQuery is built from untrusted tool arguments. Terms are always bound as
// escaped LIKE patterns and fields must be on the allow-list.
//
// Groups are ANDed together; the matches inside a group are ORed.
type CarQuery struct {
	groups     [][]Contains
	activeOnly bool
	limit      int
}

func NewCarQuery() CarQuery {
	return CarQuery{}
}

// ContainsAny requires term to appear in at least one of fields.
func (q CarQuery) ContainsAny(term string, fields ...CarField) CarQuery {
	if len(fields) == 0 {
		return q
	}
	group := make([]Contains, 0, len(fields))
	for _, f := range fields {
		group = append(group, Contains{Field: f, Term: term})
	}
	q.groups = append(append([][]Contains(nil), q.groups...), group)
	return q
}

// Contains requires term to appear in field.
func (q CarQuery) Contains(field CarField, term string) CarQuery {
	return q.ContainsAny(term, field)
}

func (q CarQuery) ActiveOnly() CarQuery {
	q.activeOnly = true
	return q
}

func (q CarQuery) Limit(n int) CarQuery {
	q.limit = n
	return q
}

func (q CarQuery) MaxResults() int {
	return q.limit
}

func (q CarQuery) IsActiveOnly() bool {
	return q.activeOnly
}

// Groups returns a copy of the filter groups.
func (q CarQuery) Groups() [][]Contains {
	out := make([][]Contains, 0, len(q.groups))
	for _, g := range q.groups {
		out = append(out, append([]Contains(nil), g...))
	}
	return out
}

func (q CarQuery) Validate() error {
	if q.limit < 0 {
		return fmt.Errorf("limit must be >= 0, got %d", q.limit)
	}
	for _, g := range q.groups {
		for _, c := range g {
			if _, ok := filterableFields[c.Field]; !ok {
				return fmt.Errorf("%w: %q", ErrFieldNotAllowed, c.Field)
			}
		}
	}
	return nil
}

// Match reports whether car satisfies the filters. It mirrors the SQL built by
// apply and backs in-memory stores.
func (q CarQuery) Match(car CarListing) bool {
	if q.activeOnly && !car.IsActive {
		return false
	}
	for _, g := range q.groups {
		matched := false
		for _, c := range g {
			if strings.Contains(strings.ToLower(fieldValue(car, c.Field)), foldTerm(c.Term)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// apply adds the filters to sel. lowerFunc names the SQL function used to
// fold column values and must fold the same way as strings.ToLower.
func (q CarQuery) apply(sel *bun.SelectQuery, lowerFunc string) (*bun.SelectQuery, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	cond := lowerFunc + "(?) LIKE ? ESCAPE '" + string(likeEscape) + "'"
	for _, g := range q.groups {
		group := g
		sel = sel.WhereGroup(" AND ", func(sq *bun.SelectQuery) *bun.SelectQuery {
			for i, c := range group {
				if i == 0 {
					sq = sq.Where(cond, bun.Ident(string(c.Field)), ContainsPattern(c.Term))
				} else {
					sq = sq.WhereOr(cond, bun.Ident(string(c.Field)), ContainsPattern(c.Term))
				}
			}
			return sq
		})
	}
	if q.activeOnly {
		sel = sel.Where("? = ?", bun.Ident("is_active"), true)
	}
	if q.limit > 0 {
		sel = sel.Limit(q.limit)
	}
	return sel, nil
}

// ContainsPattern lower-cases term and escapes LIKE metacharacters so the
// term only ever matches literally.
func ContainsPattern(term string) string {
	folded := foldTerm(term)
	var b strings.Builder
	b.Grow(len(folded) + 2)
	b.WriteByte('%')
	for _, r := range folded {
		switch r {
		case '%', '_', likeEscape:
			b.WriteRune(likeEscape)
		}
		b.WriteRune(r)
	}
	b.WriteByte('%')
	return b.String()
}

// foldTerm lower-cases term. Invalid UTF-8 bytes are replaced with
// utf8.RuneError first, so such a term matches nothing stored.
func foldTerm(term string) string {
	if !utf8.ValidString(term) {
		term = strings.ToValidUTF8(term, string(utf8.RuneError))
	}
	return strings.ToLower(term)
}

func fieldValue(car CarListing, f CarField) string {
	switch f {
	case FieldBrand:
		return car.Brand
	case FieldModel:
		return car.Model
	case FieldCategory:
		return car.Category
	case FieldLocationCity:
		return car.Location.City
	case FieldLocationState:
		return car.Location.State
	case FieldLocationAddress:
		return car.Location.Address
	default:
		return ""
	}
}
