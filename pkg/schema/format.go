/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// maxSuggestionDistance bounds the edit distance of "did you mean" hints.
const maxSuggestionDistance = 2

// Message is a printf-style template. Args names the values substituted in
// order: "subject" (path or rule name), "value" (offending value), or any
// violation param such as "num" or "list".
type Message struct {
	Text string
	Args []string
}

// MessageTable maps message keys to templates for one locale.
type MessageTable map[MessageKey]Message

// Merge returns a new table with other's entries layered over t's.
func (t MessageTable) Merge(other MessageTable) MessageTable {
	out := maps.Clone(t)
	if out == nil {
		out = make(MessageTable, len(other))
	}
	maps.Copy(out, other)
	return out
}

// DefaultMessages returns the English table for built-in message keys.
func DefaultMessages() MessageTable {
	return MessageTable{
		KeyRequired:   {Text: "%s is missing", Args: []string{"subject"}},
		KeyFilled:     {Text: "%s must be filled", Args: []string{"subject"}},
		KeyStr:        {Text: "%s must be a string", Args: []string{"subject"}},
		KeyInt:        {Text: "%s must be an integer", Args: []string{"subject"}},
		KeyNumber:     {Text: "%s must be a number", Args: []string{"subject"}},
		KeyBool:       {Text: "%s must be boolean", Args: []string{"subject"}},
		KeyHash:       {Text: "%s must be a hash", Args: []string{"subject"}},
		KeyArray:      {Text: "%s must be an array", Args: []string{"subject"}},
		KeyGt:         {Text: "%s must be greater than %s", Args: []string{"subject", "num"}},
		KeyLt:         {Text: "%s must be less than %s", Args: []string{"subject", "num"}},
		KeyGteq:       {Text: "%s must be greater than or equal to %s", Args: []string{"subject", "num"}},
		KeyLteq:       {Text: "%s must be less than or equal to %s", Args: []string{"subject", "num"}},
		KeyFormat:     {Text: "%s is in invalid format", Args: []string{"subject"}},
		KeyIncludedIn: {Text: "%s must be one of: %s", Args: []string{"subject", "list"}},
		KeyMinSize:    {Text: "%s size cannot be less than %s", Args: []string{"subject", "num"}},
		KeyMaxSize:    {Text: "%s size cannot be greater than %s", Args: []string{"subject", "num"}},
		KeyUnique:     {Text: "%s must not contain duplicates", Args: []string{"subject"}},
		KeySuggestion: {Text: "%s (did you mean %q?)", Args: []string{"message", "suggestion"}},
	}
}

// Formatter renders violations using per-locale message tables. It is
// immutable and safe for concurrent use.
type Formatter struct {
	tags    []language.Tag
	tables  map[language.Tag]MessageTable
	matcher language.Matcher
	catalog catalog.Catalog
}

// NewFormatter builds a formatter. fallback must have a table; it is used
// when no requested locale matches.
func NewFormatter(fallback language.Tag, tables map[language.Tag]MessageTable) (*Formatter, error) {
	if len(tables[fallback]) == 0 {
		return nil, constructionFault("invalid message tables",
			fmt.Errorf("no messages for fallback locale %s", fallback))
	}

	b := catalog.NewBuilder(catalog.Fallback(fallback))
	f := &Formatter{
		tags:   []language.Tag{fallback},
		tables: make(map[language.Tag]MessageTable, len(tables)),
	}
	for tag := range tables {
		if tag != fallback {
			f.tags = append(f.tags, tag)
		}
	}

	var errs []error
	for _, tag := range f.tags {
		table := maps.Clone(tables[tag])
		f.tables[tag] = table
		for key, m := range table {
			if err := b.SetString(tag, string(key), m.Text); err != nil {
				errs = append(errs, fmt.Errorf("%s/%s: %w", tag, key, err))
			}
		}
	}
	if len(errs) > 0 {
		return nil, constructionFault("invalid message tables", errors.Join(errs...))
	}

	f.matcher = language.NewMatcher(f.tags)
	f.catalog = b
	return f, nil
}

// Locales returns the supported locales, fallback first.
func (f *Formatter) Locales() []language.Tag {
	return append([]language.Tag(nil), f.tags...)
}

// Match picks the supported locale closest to the preferred ones.
func (f *Formatter) Match(preferred ...language.Tag) language.Tag {
	if len(preferred) == 0 {
		return f.tags[0]
	}
	_, idx, conf := f.matcher.Match(preferred...)
	if conf == language.No {
		return f.tags[0]
	}
	return f.tags[idx]
}

// MatchAcceptLanguage picks a locale from an Accept-Language header value.
func (f *Formatter) MatchAcceptLanguage(header string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return f.tags[0]
	}
	return f.Match(tags...)
}

// Format renders v in the fallback locale.
func (f *Formatter) Format(v Violation) string {
	return f.FormatIn(f.tags[0], v)
}

// FormatIn renders v in the given locale. Keys missing from the locale's
// table render as "<subject> is invalid".
func (f *Formatter) FormatIn(tag language.Tag, v Violation) string {
	tag = f.Match(tag)
	table := f.tables[tag]

	m, ok := table[v.Key]
	if !ok {
		return v.Subject() + " is invalid"
	}

	p := message.NewPrinter(tag, message.Catalog(f.catalog))
	text := p.Sprintf(string(v.Key), f.args(m, v, nil)...)

	if v.Kind == KindEnumViolation {
		if s, ok := suggest(v); ok {
			if sm, ok := table[KeySuggestion]; ok {
				text = p.Sprintf(string(KeySuggestion), f.args(sm, v, map[string]any{
					"message":    text,
					"suggestion": s,
				})...)
			}
		}
	}
	return text
}

// FormatAll renders every violation in the given locale.
func (f *Formatter) FormatAll(tag language.Tag, vs []Violation) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = f.FormatIn(tag, v)
	}
	return out
}

func (f *Formatter) args(m Message, v Violation, extra map[string]any) []any {
	args := make([]any, len(m.Args))
	for i, name := range m.Args {
		var val any
		switch name {
		case "subject":
			val = v.Subject()
		case "value":
			val = v.Value
		default:
			if x, ok := extra[name]; ok {
				val = x
			} else {
				val = v.Params[name]
			}
		}
		args[i] = display(val)
	}
	return args
}

func display(v any) any {
	switch t := v.(type) {
	case []string:
		return strings.Join(t, ", ")
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// suggest returns the allowed value closest to an enum violation's value.
func suggest(v Violation) (string, bool) {
	got, ok := v.Value.(string)
	if !ok || got == "" {
		return "", false
	}
	allowed, _ := v.Params["list"].([]string)

	best, bestDist := "", maxSuggestionDistance+1
	for _, a := range allowed {
		if d := levenshtein.ComputeDistance(strings.ToLower(got), strings.ToLower(a)); d < bestDist {
			best, bestDist = a, d
		}
	}
	return best, best != "" && bestDist <= maxSuggestionDistance
}
