package store

import (
	"fmt"
	"strings"
)

// Register column names used in narrowing predicates.
const (
	ColAddrGUID           = "addr_guid"
	ColLocGUID            = "loc_guid"
	ColAptNoLabel         = "apt_no_label"
	ColCivicNo            = "civic_no"
	ColCivicNoSuffix      = "civic_no_suffix"
	ColBuildingCivicAddr  = "bu_n_civic_add"
	ColMailStreetName     = "mail_street_name"
	ColMailStreetType     = "mail_street_type"
	ColMailStreetDir      = "mail_street_dir"
	ColOfficialStreetName = "official_street_name"
	ColOfficialStreetType = "official_street_type"
	ColOfficialStreetDir  = "official_street_dir"
	ColMailMunName        = "mail_mun_name"
	ColMailProvAbvn       = "mail_prov_abvn"
	ColMailPostalCode     = "mail_postal_code"
)

// Predicate is a node of a filter-expression tree built by the resolver and
// translated here into SQL. Rendering is deterministic, so the literal form of
// a predicate can serve as a cache key.
type Predicate interface {
	render(sb *strings.Builder, args *[]interface{})
}

type eq struct {
	col   string
	value string
}

type eqUpper struct {
	col   string
	value string
}

type iLike struct {
	col     string
	pattern string
}

type iLikeConcat struct {
	colA    string
	colB    string
	pattern string
}

type isNull struct {
	col string
}

type junction struct {
	op    string
	preds []Predicate
}

// Eq matches a column equal to a value.
func Eq(col, value string) Predicate { return eq{col, value} }

// EqUpper matches UPPER(column) equal to a value.
func EqUpper(col, value string) Predicate { return eqUpper{col, value} }

// ILike matches a column against a case-insensitive pattern.
func ILike(col, pattern string) Predicate { return iLike{col, pattern} }

// ILikeConcat matches the concatenation of two columns against a
// case-insensitive pattern.
func ILikeConcat(colA, colB, pattern string) Predicate {
	return iLikeConcat{colA, colB, pattern}
}

// IsNull matches a NULL column.
func IsNull(col string) Predicate { return isNull{col} }

// All is the conjunction of its operands.
func All(preds ...Predicate) Predicate { return junction{"AND", preds} }

// Any is the disjunction of its operands.
func Any(preds ...Predicate) Predicate { return junction{"OR", preds} }

// SQL renders a predicate as a parameterized WHERE clause body plus its
// arguments, placeholders numbered from $1.
func SQL(p Predicate) (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}
	p.render(&sb, &args)
	return sb.String(), args
}

// Key renders a predicate with inlined literals. The result is deterministic
// for equal trees and is used as the narrow-cache key.
func Key(p Predicate) string {
	var sb strings.Builder
	p.render(&sb, nil)
	return sb.String()
}

// value emits either a placeholder or a quoted literal depending on mode.
func value(sb *strings.Builder, args *[]interface{}, v string) {
	if args == nil {
		sb.WriteByte('\'')
		sb.WriteString(strings.ReplaceAll(v, "'", "''"))
		sb.WriteByte('\'')
		return
	}
	*args = append(*args, v)
	fmt.Fprintf(sb, "$%d", len(*args))
}

func (p eq) render(sb *strings.Builder, args *[]interface{}) {
	sb.WriteString(p.col)
	sb.WriteByte('=')
	value(sb, args, p.value)
}

func (p eqUpper) render(sb *strings.Builder, args *[]interface{}) {
	sb.WriteString("UPPER(")
	sb.WriteString(p.col)
	sb.WriteString(")=")
	value(sb, args, p.value)
}

func (p iLike) render(sb *strings.Builder, args *[]interface{}) {
	sb.WriteString(p.col)
	sb.WriteString(" ILIKE ")
	value(sb, args, p.pattern)
}

func (p iLikeConcat) render(sb *strings.Builder, args *[]interface{}) {
	sb.WriteString("CONCAT(")
	sb.WriteString(p.colA)
	sb.WriteByte(',')
	sb.WriteString(p.colB)
	sb.WriteString(") ILIKE ")
	value(sb, args, p.pattern)
}

func (p isNull) render(sb *strings.Builder, args *[]interface{}) {
	sb.WriteString(p.col)
	sb.WriteString(" IS NULL")
}

func (p junction) render(sb *strings.Builder, args *[]interface{}) {
	if len(p.preds) == 1 {
		p.preds[0].render(sb, args)
		return
	}
	sb.WriteByte('(')
	for i, child := range p.preds {
		if i > 0 {
			sb.WriteByte(' ')
			sb.WriteString(p.op)
			sb.WriteByte(' ')
		}
		child.render(sb, args)
	}
	sb.WriteByte(')')
}
