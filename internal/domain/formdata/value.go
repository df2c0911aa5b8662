package formdata

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type Kind string

const (
	KindString     Kind = "string"
	KindNumber     Kind = "number"
	KindBool       Kind = "boolean"
	KindDate       Kind = "date"
	KindStringList Kind = "string_list"
)

var knownKinds = []string{
	string(KindString),
	string(KindNumber),
	string(KindBool),
	string(KindDate),
	string(KindStringList),
}

// ParseKind maps a stored field kind to a Kind. Unknown kinds fall back to string.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !validator.IsInSlice(s, knownKinds) {
		return KindString, false
	}
	return Kind(s), true
}

const dateLayout = "2006-01-02"

// Value is a tagged form value. Only the field matching Kind is meaningful.
type Value struct {
	Kind   Kind
	String string
	Number float64
	Bool   bool
	Date   time.Time
	List   []string
}

// Values maps a form field name to its value.
type Values map[string]Value

func StringValue(s string) Value { return Value{Kind: KindString, String: s} }
func NumberValue(n float64) Value { return Value{Kind: KindNumber, Number: n} }
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }
func DateValue(t time.Time) Value { return Value{Kind: KindDate, Date: t} }
func StringListValue(l []string) Value { return Value{Kind: KindStringList, List: l} }

// Text renders the value for tabular exports.
func (v Value) Text() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindDate:
		if v.Date.IsZero() {
			return ""
		}
		return v.Date.Format(dateLayout)
	case KindStringList:
		return strings.Join(v.List, ", ")
	}
	return v.String
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Number)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindDate:
		return json.Marshal(v.Date.Format(dateLayout))
	case KindStringList:
		if v.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.List)
	}
	return json.Marshal(v.String)
}

// coerce converts a decoded JSON value into the kind declared by the schema.
func coerce(raw any, kind Kind) (Value, error) {
	switch kind {
	case KindString:
		switch t := raw.(type) {
		case string:
			return StringValue(t), nil
		case float64:
			return StringValue(strconv.FormatFloat(t, 'f', -1, 64)), nil
		case bool:
			return StringValue(strconv.FormatBool(t)), nil
		}
	case KindNumber:
		switch t := raw.(type) {
		case float64:
			return NumberValue(t), nil
		case json.Number:
			n, err := t.Float64()
			if err == nil {
				return NumberValue(n), nil
			}
		case string:
			n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
			if err == nil {
				return NumberValue(n), nil
			}
		}
	case KindBool:
		switch t := raw.(type) {
		case bool:
			return BoolValue(t), nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(t))
			if err == nil {
				return BoolValue(b), nil
			}
		}
	case KindDate:
		if s, ok := raw.(string); ok {
			d, err := parseDate(s)
			if err == nil {
				return DateValue(d), nil
			}
		}
	case KindStringList:
		switch t := raw.(type) {
		case []any:
			list := make([]string, 0, len(t))
			for _, item := range t {
				list = append(list, fmt.Sprint(item))
			}
			return StringListValue(list), nil
		case []string:
			return StringListValue(t), nil
		case string:
			return StringListValue([]string{t}), nil
		}
	}
	return Value{}, fmt.Errorf("cannot convert %T to %s", raw, kind)
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, ok := validator.IsValidDate(s); ok {
		return d, nil
	}
	return time.Parse(time.RFC3339, s)
}

// guess picks a kind for a key the schema does not declare.
func guess(raw any) Value {
	switch t := raw.(type) {
	case float64:
		return NumberValue(t)
	case bool:
		return BoolValue(t)
	case []any:
		v, _ := coerce(t, KindStringList)
		return v
	case nil:
		return StringValue("")
	case string:
		return StringValue(t)
	}
	return StringValue(fmt.Sprint(raw))
}
