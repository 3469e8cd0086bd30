// Package extractor turns raw completion text into validated pipeline values.
package extractor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/futig/app-builder/internal/entity"
)

// ExtractJSON parses the JSON object contained in raw according to the backend's response format.
//
// FormatRaw slices from the first '{' to the last '}' inclusive so that commentary
// around the object is tolerated. FormatStrictJSON parses the whole string.
func ExtractJSON(raw string, format entity.ResponseFormat) (map[string]any, error) {
	var candidate string

	switch format {
	case entity.FormatStrictJSON:
		candidate = strings.TrimSpace(raw)
	case entity.FormatRaw, "":
		start := strings.Index(raw, "{")
		end := strings.LastIndex(raw, "}")
		if start == -1 || end < start {
			return nil, fmt.Errorf("%w: no JSON object found", entity.ErrParse)
		}
		candidate = raw[start : end+1]
	default:
		return nil, fmt.Errorf("%w: unsupported response format %q", entity.ErrParse, string(format))
	}

	if candidate == "" {
		return nil, fmt.Errorf("%w: empty response", entity.ErrParse)
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrParse, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: top-level value is not an object", entity.ErrParse)
	}

	return obj, nil
}

// ParseAppDescription extracts and validates a requirement-extraction result.
// The returned description has an empty Description field; callers fill it from the input.
func ParseAppDescription(raw string, format entity.ResponseFormat) (*entity.AppDescription, error) {
	obj, err := ExtractJSON(raw, format)
	if err != nil {
		return nil, err
	}

	appName, _ := obj["appName"].(string)
	appName = strings.TrimSpace(appName)
	if appName == "" {
		return nil, fmt.Errorf("%w: appName is missing or empty", entity.ErrIncompleteResult)
	}

	entities, err := stringList(obj, "entities")
	if err != nil {
		return nil, err
	}
	roles, err := stringList(obj, "roles")
	if err != nil {
		return nil, err
	}
	features, err := stringList(obj, "features")
	if err != nil {
		return nil, err
	}

	return &entity.AppDescription{
		AppName:  appName,
		Entities: entities,
		Roles:    roles,
		Features: features,
	}, nil
}

// ParseStyleOverrides extracts a possibly-empty style override set.
// Unknown keys and non-string values are dropped; only unparseable text is an error.
func ParseStyleOverrides(raw string, format entity.ResponseFormat) (entity.StyleOverrideSet, error) {
	obj, err := ExtractJSON(raw, format)
	if err != nil {
		return nil, err
	}

	return entity.FilterStyleOverrides(obj), nil
}

func stringList(obj map[string]any, key string) ([]string, error) {
	value, ok := obj[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s is missing", entity.ErrIncompleteResult, key)
	}

	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an array", entity.ErrIncompleteResult, key)
	}

	list := make([]string, 0, min(len(items), entity.MaxListItems))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] is not a string", entity.ErrIncompleteResult, key, i)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if len(list) == entity.MaxListItems {
			break
		}
		list = append(list, s)
	}

	return list, nil
}
