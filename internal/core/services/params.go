package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/iancoleman/strcase"
	"github.com/mitchellh/mapstructure"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

// opaqueKeys hold maps whose keys are sent to the API as-is.
var opaqueKeys = map[string]bool{
	"filters":       true,
	"custom_fields": true,
}

var idListType = reflect.TypeOf(domain.IDList{})

// decodeParams decodes a raw parameter map into a typed parameter struct.
// Keys may be given in camelCase ("additionalFields") or snake_case.
// Fields already set on out act as defaults.
func decodeParams(raw map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       idListHook,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		Result:           out,
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(normaliseKeys(raw)); err != nil {
		return domain.NewValidationError("", err)
	}
	return nil
}

// normaliseKeys converts keys to snake_case, leaving opaque maps untouched.
// When two spellings map to the same key, the one already in snake_case
// wins; otherwise the last in sorted order does.
func normaliseKeys(raw map[string]any) map[string]any {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(raw))
	exact := make(map[string]bool, len(raw))
	for _, k := range keys {
		key := strcase.ToSnake(k)
		if exact[key] {
			continue
		}
		v := raw[k]
		if nested, ok := v.(map[string]any); ok && !opaqueKeys[key] {
			v = normaliseKeys(nested)
		}
		out[key] = v
		exact[key] = k == key
	}
	return out
}

func idListHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != idListType {
		return data, nil
	}
	return ParseIDs(data)
}

// ParseIDs converts a comma-separated string, a list or a single number
// into an IDList. Fragments are trimmed; a non-numeric fragment is an
// error. An empty string yields an empty list.
func ParseIDs(v any) (domain.IDList, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case domain.IDList:
		return val, nil
	case []int:
		return domain.IDList(val), nil
	case string:
		return ParseIDList(val)
	case []string:
		return parseIDItems(len(val), func(i int) any { return val[i] })
	case []any:
		return parseIDItems(len(val), func(i int) any { return val[i] })
	default:
		id, err := toID(val)
		if err != nil {
			return nil, err
		}
		return domain.IDList{id}, nil
	}
}

// ParseIDList splits a comma-separated ID string.
func ParseIDList(s string) (domain.IDList, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make(domain.IDList, 0, len(parts))
	for _, part := range parts {
		id, err := toID(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseIDItems(n int, at func(int) any) (domain.IDList, error) {
	ids := make(domain.IDList, 0, n)
	for i := 0; i < n; i++ {
		id, err := toID(at(i))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// toID converts a single ID value. IDs start at 1.
func toID(v any) (int, error) {
	id, err := toInt(v)
	if err != nil {
		return 0, err
	}
	if id < 1 {
		return 0, fmt.Errorf("%d is not a positive ID", id)
	}
	return id, nil
}

func toInt(v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		if val != float64(int(val)) {
			return 0, fmt.Errorf("%v is not an integer ID", val)
		}
		return int(val), nil
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer ID", val.String())
		}
		return int(n), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, fmt.Errorf("%q is not a numeric ID", val)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unsupported ID value %v (%T)", v, v)
	}
}

// buildFilterSet converts the raw list filters into a FilterSet. Keys are
// visited in sorted order; IDs keep their selection order.
func buildFilterSet(raw map[string]any) (domain.FilterSet, error) {
	var fs domain.FilterSet

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := raw[key]
		switch {
		case strings.HasSuffix(key, domain.IDSetSuffix):
			ids, err := ParseIDs(value)
			if err != nil {
				return fs, domain.NewValidationError(key, err)
			}
			if len(ids) == 0 {
				continue
			}
			fs.IDSets = append(fs.IDSets, domain.IDSetFilter{
				Field: strings.TrimSuffix(key, domain.IDSetSuffix),
				IDs:   ids,
			})
		case key == domain.FilterCreatedAfter || key == domain.FilterCreatedBefore:
			day, err := normaliseDay(value)
			if err != nil {
				return fs, domain.NewValidationError(key, err)
			}
			if key == domain.FilterCreatedAfter {
				fs.CreatedAfter = day
			} else {
				fs.CreatedBefore = day
			}
		default:
			text := scalarText(value)
			if text == "" {
				continue
			}
			if fs.Extra == nil {
				fs.Extra = make(map[string]string)
			}
			fs.Extra[key] = text
		}
	}
	return fs, nil
}

func scalarText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// normaliseDay parses any common date format into YYYY-MM-DD.
func normaliseDay(v any) (string, error) {
	t, ok, err := parseDate(v)
	if err != nil || !ok {
		return "", err
	}
	return t.Format(time.DateOnly), nil
}

// normaliseTimestamp parses any common date format into RFC 3339.
func normaliseTimestamp(v any) (string, error) {
	t, ok, err := parseDate(v)
	if err != nil || !ok {
		return "", err
	}
	return t.Format(time.RFC3339), nil
}

func parseDate(v any) (time.Time, bool, error) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, false, nil
	case time.Time:
		return val, !val.IsZero(), nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, false, nil
		}
		t, err := dateparse.ParseIn(s, time.UTC)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("unrecognised date %q", s)
		}
		return t, true, nil
	default:
		return time.Time{}, false, fmt.Errorf("unsupported date value %v (%T)", v, v)
	}
}

// toValidationError converts ozzo validation errors into a ValidationError
// naming the offending parameters.
func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return domain.NewValidationError("", err)
	}

	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if len(keys) == 1 {
		return domain.NewValidationError(strcase.ToSnake(keys[0]), errs[keys[0]])
	}

	var merr *multierror.Error
	fields := make([]string, len(keys))
	for i, k := range keys {
		fields[i] = strcase.ToSnake(k)
		merr = multierror.Append(merr, fmt.Errorf("%s: %w", fields[i], errs[k]))
	}
	return domain.NewValidationError(strings.Join(fields, ", "), merr.ErrorOrNil())
}

// stringParam reads a string parameter, accepting camelCase or snake_case keys.
func stringParam(params map[string]any, key string) string {
	for k, v := range params {
		if strcase.ToSnake(k) == key {
			if s, ok := v.(string); ok {
				return s
			}
			return fmt.Sprint(v)
		}
	}
	return ""
}
