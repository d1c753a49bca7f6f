package ast

import "encoding/json"

// tagged encodes v and prepends a "type" member naming the variant, so that
// interface-typed fields keep their concrete kind in JSON.
func tagged(kind string, v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	head := []byte(`{"type":"` + kind + `"`)
	if len(b) <= 2 {
		return append(head, '}'), nil
	}
	head = append(head, ',')
	return append(head, b[1:]...), nil
}

func (q Quantifier) MarshalText() ([]byte, error) { return []byte(q.String()), nil }
func (d Direction) MarshalText() ([]byte, error)  { return []byte(d.String()), nil }
func (n Nulls) MarshalText() ([]byte, error)      { return []byte(n.String()), nil }

func (s *Select) MarshalJSON() ([]byte, error) {
	type plain Select
	return tagged("Select", (*plain)(s))
}

func (c *AllColumns) MarshalJSON() ([]byte, error) {
	return tagged("AllColumns", struct{}{})
}

func (c *SomeColumns) MarshalJSON() ([]byte, error) {
	type plain SomeColumns
	return tagged("SomeColumns", (*plain)(c))
}

func (c *UIDColumn) MarshalJSON() ([]byte, error) {
	type plain UIDColumn
	return tagged("UIDColumn", (*plain)(c))
}

func (c *Column) MarshalJSON() ([]byte, error) {
	type plain Column
	return tagged("Column", (*plain)(c))
}

func (c *LiteralColumn) MarshalJSON() ([]byte, error) {
	type plain LiteralColumn
	return tagged("LiteralColumn", (*plain)(c))
}

func (c *FunctionColumn) MarshalJSON() ([]byte, error) {
	type plain FunctionColumn
	return tagged("FunctionColumn", (*plain)(c))
}

func (l *IntLit) MarshalJSON() ([]byte, error) {
	type plain IntLit
	return tagged("IntLit", (*plain)(l))
}

func (l *LongLit) MarshalJSON() ([]byte, error) {
	type plain LongLit
	return tagged("LongLit", (*plain)(l))
}

func (l *FloatLit) MarshalJSON() ([]byte, error) {
	type plain FloatLit
	return tagged("FloatLit", (*plain)(l))
}

func (l *DateLit) MarshalJSON() ([]byte, error) {
	type plain DateLit
	return tagged("DateLit", (*plain)(l))
}

func (l *StringLit) MarshalJSON() ([]byte, error) {
	type plain StringLit
	return tagged("StringLit", (*plain)(l))
}

func (l *BooleanLit) MarshalJSON() ([]byte, error) {
	type plain BooleanLit
	return tagged("BooleanLit", (*plain)(l))
}

func (l *PreparedLit) MarshalJSON() ([]byte, error) {
	type plain PreparedLit
	return tagged("PreparedLit", (*plain)(l))
}

func (l *NullLit) MarshalJSON() ([]byte, error) {
	return tagged("NullLit", struct{}{})
}

func (r *TableRef) MarshalJSON() ([]byte, error) {
	type plain TableRef
	return tagged("TableRef", (*plain)(r))
}

func (p *CollectionPath) MarshalJSON() ([]byte, error) {
	type plain CollectionPath
	return tagged("CollectionPath", (*plain)(p))
}

func (c *Contains) MarshalJSON() ([]byte, error) {
	return tagged("Contains", struct{}{})
}

func (s *PathSegment) MarshalJSON() ([]byte, error) {
	type plain PathSegment
	return tagged("PathSegment", (*plain)(s))
}

func (f *FunctionCall) MarshalJSON() ([]byte, error) {
	type plain FunctionCall
	return tagged("FunctionCall", (*plain)(f))
}

func (c *And) MarshalJSON() ([]byte, error) {
	type plain And
	return tagged("And", (*plain)(c))
}

func (c *Or) MarshalJSON() ([]byte, error) {
	type plain Or
	return tagged("Or", (*plain)(c))
}

func (c *CondOp) MarshalJSON() ([]byte, error) {
	type plain CondOp
	return tagged("CondOp", (*plain)(c))
}

func (c *CondRelation) MarshalJSON() ([]byte, error) {
	type plain CondRelation
	return tagged("CondRelation", (*plain)(c))
}

func (c *CondRowNum) MarshalJSON() ([]byte, error) {
	type plain CondRowNum
	return tagged("CondRowNum", (*plain)(c))
}

func (c *CondRowNumRange) MarshalJSON() ([]byte, error) {
	type plain CondRowNumRange
	return tagged("CondRowNumRange", (*plain)(c))
}

func (c *CondIsNull) MarshalJSON() ([]byte, error) {
	type plain CondIsNull
	return tagged("CondIsNull", (*plain)(c))
}

func (c *CondBetween) MarshalJSON() ([]byte, error) {
	type plain CondBetween
	return tagged("CondBetween", (*plain)(c))
}

func (c *CondInList) MarshalJSON() ([]byte, error) {
	type plain CondInList
	return tagged("CondInList", (*plain)(c))
}

func (c *CondInSelect) MarshalJSON() ([]byte, error) {
	type plain CondInSelect
	return tagged("CondInSelect", (*plain)(c))
}
