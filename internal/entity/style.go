package entity

import "strings"

type StyleKey string

const (
	StyleFormBackground StyleKey = "formBackground"
	StyleButtonColor    StyleKey = "buttonColor"
	StyleFontSize       StyleKey = "fontSize"
	StyleBorderRadius   StyleKey = "borderRadius"
)

// StyleKeys lists the recognized style keys in display order.
var StyleKeys = []StyleKey{
	StyleFormBackground,
	StyleButtonColor,
	StyleFontSize,
	StyleBorderRadius,
}

func (k StyleKey) IsValid() bool {
	switch k {
	case StyleFormBackground, StyleButtonColor, StyleFontSize, StyleBorderRadius:
		return true
	default:
		return false
	}
}

// StyleOverrideSet is a partial mapping of style keys to CSS values.
type StyleOverrideSet map[StyleKey]string

// DefaultStyle returns the style a UI session starts with.
func DefaultStyle() StyleOverrideSet {
	return StyleOverrideSet{
		StyleFormBackground: "#2a2a2a",
		StyleButtonColor:    "#4facfe",
		StyleFontSize:       "16px",
		StyleBorderRadius:   "16px",
	}
}

// FilterStyleOverrides keeps recognized keys holding non-empty strings and drops everything else.
func FilterStyleOverrides(raw map[string]any) StyleOverrideSet {
	set := make(StyleOverrideSet, len(StyleKeys))
	for key, value := range raw {
		k := StyleKey(key)
		if !k.IsValid() {
			continue
		}
		s, ok := value.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		set[k] = s
	}
	return set
}

// Merge returns a new set where keys from o overwrite keys from s.
func (s StyleOverrideSet) Merge(o StyleOverrideSet) StyleOverrideSet {
	merged := make(StyleOverrideSet, len(s)+len(o))
	for k, v := range s {
		merged[k] = v
	}
	for k, v := range o {
		if !k.IsValid() {
			continue
		}
		merged[k] = v
	}
	return merged
}

// Clone returns a copy of the set.
func (s StyleOverrideSet) Clone() StyleOverrideSet {
	return StyleOverrideSet{}.Merge(s)
}
