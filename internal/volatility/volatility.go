// Package volatility decides which prompt entries change from one request to
// the next and therefore cannot sit inside a cached prefix.
package volatility

import (
	"regexp"
	"strings"
)

// VolatileIdentifiers are entries whose content is dynamic by nature.
var VolatileIdentifiers = []string{"chatHistory", "dialogueExamples"}

// DynamicMacroNames resolve to a new value on every request. Deterministic
// macros such as {{char}}, {{user}}, {{getvar::x}} and {{// comments}} are
// intentionally absent.
var DynamicMacroNames = []string{
	"idle_duration",
	"time_utc",
	"isotime",
	"isodate",
	"weekday",
	"random",
	"roll",
	"time",
	"date",
}

// Macro is one dynamic macro occurrence inside an entry's content.
type Macro struct {
	Name  string // name as written, e.g. "random"
	Raw   string // the full match, e.g. "{{random::a::b}}"
	Start int
	End   int
}

// Text returns the canonical {{name}} form used in reports.
func (m Macro) Text() string {
	return "{{" + m.Name + "}}"
}

// Classifier tells volatile entries from stable ones. The zero value is not
// usable; build one with NewClassifier or use Default.
type Classifier struct {
	identifiers map[string]struct{}
	pattern     *regexp.Regexp
}

// Default is the classifier built from VolatileIdentifiers and DynamicMacroNames.
var Default = NewClassifier(VolatileIdentifiers, DynamicMacroNames)

// Host-specific argument forms. Every other name only takes {{name::args}}.
var macroArgForms = map[string]string{
	"roll":     `[ :][^{}]*`, // {{roll 1d6}}, {{roll:1d6}}
	"time_utc": `[+-]\d+`,    // {{time_UTC+2}}
}

// NewClassifier builds a classifier for the given identifier set and macro vocabulary.
func NewClassifier(identifiers, macroNames []string) *Classifier {
	ids := make(map[string]struct{}, len(identifiers))
	for _, id := range identifiers {
		ids[id] = struct{}{}
	}

	var alternatives, plain []string
	for _, name := range macroNames {
		quoted := regexp.QuoteMeta(name)
		if form, ok := macroArgForms[strings.ToLower(name)]; ok {
			alternatives = append(alternatives, `(`+quoted+`)`+form)
		}
		plain = append(plain, quoted)
	}
	alternatives = append(alternatives, `(`+strings.Join(plain, "|")+`)(?:::[^{}]*)?`)

	pattern := regexp.MustCompile(`(?i)\{\{(?:` + strings.Join(alternatives, "|") + `)\}\}`)
	return &Classifier{identifiers: ids, pattern: pattern}
}

// IsVolatile reports whether an entry changes between requests, either because
// its identifier is inherently dynamic or because its content holds a dynamic macro.
func (c *Classifier) IsVolatile(identifier, content string) bool {
	if c.IsVolatileIdentifier(identifier) {
		return true
	}
	return c.HasDynamicMacro(content)
}

// IsVolatileIdentifier reports whether identifier names inherently dynamic content.
func (c *Classifier) IsVolatileIdentifier(identifier string) bool {
	_, ok := c.identifiers[identifier]
	return ok
}

// HasDynamicMacro reports whether content contains at least one dynamic macro.
func (c *Classifier) HasDynamicMacro(content string) bool {
	if content == "" {
		return false
	}
	return c.pattern.MatchString(content)
}

// FindDynamicMacros returns every dynamic macro in content, in order of appearance.
func (c *Classifier) FindDynamicMacros(content string) []Macro {
	if content == "" {
		return nil
	}
	var macros []Macro
	for _, loc := range c.pattern.FindAllStringSubmatchIndex(content, -1) {
		macros = append(macros, Macro{
			Name:  matchedName(content, loc),
			Raw:   content[loc[0]:loc[1]],
			Start: loc[0],
			End:   loc[1],
		})
	}
	return macros
}

// matchedName returns the text of the first participating capture group,
// which is the macro name of whichever alternative matched.
func matchedName(content string, loc []int) string {
	for i := 2; i+1 < len(loc); i += 2 {
		if loc[i] >= 0 {
			return content[loc[i]:loc[i+1]]
		}
	}
	return ""
}

// IsVolatile classifies with the Default classifier.
func IsVolatile(identifier, content string) bool {
	return Default.IsVolatile(identifier, content)
}
