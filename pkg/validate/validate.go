// Package validate provides struct-tag validation for request DTOs.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	numeric             any number
//	integer             whole number
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	gt=N                number > N
//	gte=N               number >= N
//	lt=N                number < N
//	lte=N               number <= N
//	between=min,max     number or string length between min and max (inclusive)
//	in=a,b,c            value must be one of the listed items
//	regex=pattern       value must match the regex (avoid commas in pattern)
//	confirmed           value must equal a sibling field named <field>_confirmation
//
// Example:
//
//	type Input struct {
//	    Email    string  `json:"email"    validate:"required,email"`
//	    Password string  `json:"password" validate:"required,min=8"`
//	    Quantity int     `json:"quantity" validate:"required,gte=1"`
//	    Type     string  `json:"type"     validate:"required,in=CREDIT_CARD,PIX"`
//	}
//
// Struct returns an ordered "field: message" list — ordered by field
// declaration, first failing rule per field — so error payloads are stable.
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns an ordered "field: message" slice; empty means valid.
func Struct(v interface{}) []string {
	var errs []string

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		rules := splitRules(tag)

		// `nullable` plus an empty value skips every rule for this field.
		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value, rv); msg != "" {
				errs = append(errs, name+": "+msg)
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors returns true when the error list is non-empty.
func HasErrors(errs []string) bool { return len(errs) > 0 }

// ─── Core dispatcher ──────────────────────────────────────────────────────────

func applyRule(rule, field string, v reflect.Value, parent reflect.Value) string {
	raw := fmt.Sprintf("%v", v.Interface())
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isEmpty(v) {
			return "is required"
		}

	case "email":
		if !emailRE.MatchString(raw) {
			return "must be a valid email address"
		}

	case "numeric":
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return "must be a number"
		}

	case "integer":
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return "must be an integer"
		}

	case "min":
		n := mustParseFloat(param)
		if isNumericKind(v) {
			if toFloat(v) < n {
				return "must be at least " + param
			}
		} else if float64(len([]rune(raw))) < n {
			return "must be at least " + param + " characters"
		}

	case "max":
		n := mustParseFloat(param)
		if isNumericKind(v) {
			if toFloat(v) > n {
				return "must not be greater than " + param
			}
		} else if float64(len([]rune(raw))) > n {
			return "must not exceed " + param + " characters"
		}

	case "gt":
		if toFloat(v) <= mustParseFloat(param) {
			return "must be greater than " + param
		}

	case "gte":
		if toFloat(v) < mustParseFloat(param) {
			return "must be greater than or equal to " + param
		}

	case "lt":
		if toFloat(v) >= mustParseFloat(param) {
			return "must be less than " + param
		}

	case "lte":
		if toFloat(v) > mustParseFloat(param) {
			return "must be less than or equal to " + param
		}

	case "between":
		parts := strings.SplitN(param, ",", 2)
		if len(parts) == 2 {
			lo, hi := mustParseFloat(parts[0]), mustParseFloat(parts[1])
			if isNumericKind(v) {
				f := toFloat(v)
				if f < lo || f > hi {
					return "must be between " + parts[0] + " and " + parts[1]
				}
			} else {
				l := float64(len([]rune(raw)))
				if l < lo || l > hi {
					return "must be between " + parts[0] + " and " + parts[1] + " characters"
				}
			}
		}

	case "in":
		for _, a := range strings.Split(param, ",") {
			if raw == strings.TrimSpace(a) {
				return ""
			}
		}
		return "has an invalid value"

	case "regex":
		re, err := regexp.Compile(param)
		if err != nil {
			return "has an invalid validation pattern"
		}
		if !re.MatchString(raw) {
			return "has an invalid format"
		}

	case "confirmed":
		confirmVal := siblingByJSONName(parent, strings.TrimSuffix(field, "_confirmation"))
		if confirmVal == nil || fmt.Sprintf("%v", confirmVal.Interface()) != raw {
			return "confirmation does not match"
		}
	}

	return ""
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return false // false is a valid boolean value, not empty
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

func isNumericKind(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	f, _ := strconv.ParseFloat(fmt.Sprintf("%v", v.Interface()), 64)
	return f
}

func mustParseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func jsonFieldName(f reflect.StructField) string {
	name := f.Tag.Get("json")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	if idx := strings.Index(name, ","); idx != -1 {
		name = name[:idx]
	}
	return name
}

// splitRules splits the validate tag by comma while keeping multi-value
// rule parameters (in=, between=) intact.
// e.g. "required,in=CREDIT_CARD,PIX,max=100" → ["required","in=CREDIT_CARD,PIX","max=100"]
func splitRules(tag string) []string {
	var rules []string
	var current strings.Builder
	inParam := false

	multiValuePrefixes := []string{"in=", "between="}

	for i := 0; i < len(tag); i++ {
		ch := tag[i]
		if ch == ',' {
			if inParam {
				// A comma inside a multi-value param only ends the rule when
				// the next token starts a new rule keyword.
				if looksLikeNewRule(tag[i+1:]) {
					rules = append(rules, current.String())
					current.Reset()
					inParam = false
				} else {
					current.WriteByte(ch)
				}
			} else {
				rules = append(rules, current.String())
				current.Reset()
			}
		} else {
			current.WriteByte(ch)
			if !inParam {
				for _, pfx := range multiValuePrefixes {
					if strings.HasSuffix(current.String(), pfx) {
						inParam = true
						break
					}
				}
			}
		}
	}
	if current.Len() > 0 {
		rules = append(rules, current.String())
	}
	return rules
}

func looksLikeNewRule(s string) bool {
	known := []string{
		"required", "nullable", "email", "numeric", "integer", "confirmed",
		"regex=", "min=", "max=", "gt=", "gte=", "lt=", "lte=",
		"in=", "between=",
	}
	for _, k := range known {
		if strings.HasPrefix(s, k) {
			return true
		}
	}
	return false
}

func hasRule(rules []string, target string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == target {
			return true
		}
	}
	return false
}

func siblingByJSONName(parent reflect.Value, name string) *reflect.Value {
	rt := parent.Type()
	for i := 0; i < rt.NumField(); i++ {
		if jsonFieldName(rt.Field(i)) == name {
			v := parent.Field(i)
			return &v
		}
	}
	return nil
}
