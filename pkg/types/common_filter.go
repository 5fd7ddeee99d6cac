package types

import (
	"fmt"

	"gorm.io/gorm/clause"
)

type CommonFilterOperator string

const (
	CommonFilterOperatorEq    CommonFilterOperator = "eq"
	CommonFilterOperatorNotEq CommonFilterOperator = "not_eq"
	CommonFilterOperatorLt    CommonFilterOperator = "lt"
	CommonFilterOperatorLte   CommonFilterOperator = "lte"
	CommonFilterOperatorGt    CommonFilterOperator = "gt"
	CommonFilterOperatorGte   CommonFilterOperator = "gte"
	CommonFilterOperatorRange CommonFilterOperator = "range"
	CommonFilterOperatorIn    CommonFilterOperator = "in"
)

type CommonFilter struct {
	Field    string               `json:"field"`
	Operator CommonFilterOperator `json:"operator"`
	Values   []any                `json:"values"`
}

// Validate rejects filters on columns outside allowed, or with too few values.
func (f *CommonFilter) Validate(allowed map[string]bool) error {
	if f == nil {
		return fmt.Errorf("nil filter")
	}
	if !allowed[f.Field] {
		return fmt.Errorf("filter on field %q is not supported", f.Field)
	}
	if len(f.Values) == 0 {
		return fmt.Errorf("filter on field %q has no values", f.Field)
	}
	switch f.Operator {
	case CommonFilterOperatorEq, CommonFilterOperatorNotEq, CommonFilterOperatorLt, CommonFilterOperatorLte,
		CommonFilterOperatorGt, CommonFilterOperatorGte, CommonFilterOperatorIn:
		return nil
	case CommonFilterOperatorRange:
		if len(f.Values) < 2 {
			return fmt.Errorf("range filter on field %q needs two values", f.Field)
		}
		return nil
	default:
		return fmt.Errorf("unsupported operator %q", f.Operator)
	}
}

// Build constructs a GORM expression.
func (f *CommonFilter) Build(builder clause.Builder) {
	if len(f.Values) == 0 {
		return
	}

	value := f.Values[0]

	switch f.Operator {
	case CommonFilterOperatorEq:
		clause.Eq{Column: clause.Column{Name: f.Field}, Value: value}.Build(builder)
	case CommonFilterOperatorNotEq:
		clause.Neq{Column: clause.Column{Name: f.Field}, Value: value}.Build(builder)
	case CommonFilterOperatorLt:
		clause.Lt{Column: clause.Column{Name: f.Field}, Value: value}.Build(builder)
	case CommonFilterOperatorLte:
		clause.Lte{Column: clause.Column{Name: f.Field}, Value: value}.Build(builder)
	case CommonFilterOperatorGt:
		clause.Gt{Column: clause.Column{Name: f.Field}, Value: value}.Build(builder)
	case CommonFilterOperatorGte:
		clause.Gte{Column: clause.Column{Name: f.Field}, Value: value}.Build(builder)
	case CommonFilterOperatorRange:
		if len(f.Values) < 2 {
			return
		}
		clause.And(
			clause.Gte{Column: clause.Column{Name: f.Field}, Value: f.Values[0]},
			clause.Lte{Column: clause.Column{Name: f.Field}, Value: f.Values[1]},
		).Build(builder)
	case CommonFilterOperatorIn:
		clause.IN{Column: clause.Column{Name: f.Field}, Values: f.Values}.Build(builder)
	default:
		return
	}
}

// FiltersAnd combines filters into a single clause.Expression.
type FiltersAnd []*CommonFilter

func (w FiltersAnd) Build(builder clause.Builder) {
	if len(w) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w))
	for _, f := range w {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}
