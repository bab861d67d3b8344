package health

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// MissingFieldError is returned when a response item lacks a field the
// query reports on.
type MissingFieldError struct {
	Query string
	Item  int
	Field string
}

func (e *MissingFieldError) Error() string {
	if e.Item < 0 {
		return fmt.Sprintf("%s: response has no field %q", e.Query, e.Field)
	}
	return fmt.Sprintf("%s: item %d has no field %q", e.Query, e.Item, e.Field)
}

// FieldTypeError is returned for a field holding an object or an array.
type FieldTypeError struct {
	Query string
	Item  int
	Field string
	Value interface{}
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("%s: item %d field %q is %T, want a scalar", e.Query, e.Item, e.Field, e.Value)
}

type UnknownQueryError struct {
	Name string
}

func (e *UnknownQueryError) Error() string {
	return fmt.Sprintf("unknown query %q", e.Name)
}

// Extract turns each item of resp.Data into one row, in order. A response
// without data is a MissingFieldError with Item -1.
func (q Query) Extract(resp Response) ([]Row, error) {
	if resp.Data == nil {
		return nil, &MissingFieldError{Query: q.Name, Item: -1, Field: "data"}
	}
	items := *resp.Data
	rows := make([]Row, 0, len(items))
	for i, item := range items {
		row := make(Row, 0, len(q.Fields))
		for _, f := range q.Fields {
			v, ok := item[f.Key]
			if !ok {
				return nil, &MissingFieldError{Query: q.Name, Item: i, Field: f.Key}
			}
			s, ok := scalarString(v)
			if !ok {
				return nil, &FieldTypeError{Query: q.Name, Item: i, Field: f.Key, Value: v}
			}
			row = append(row, s)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func scalarString(v interface{}) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
