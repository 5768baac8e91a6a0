// Package tokenizer estimates how many tokens a provider will see for a piece of text.
package tokenizer

import (
	"unicode/utf16"
)

// HeuristicName selects the built-in estimator.
const HeuristicName = "heuristic"

// Func converts text into an estimated token count.
type Func func(text string) int

// Heuristic estimates one token per four characters, rounded up. Characters
// are UTF-16 code units, the string length the preset host measures, so an
// emoji counts twice.
func Heuristic(text string) int {
	n := len(utf16.Encode([]rune(text)))
	return (n + 3) / 4
}

// OrDefault returns fn, or Heuristic when fn is nil.
func OrDefault(fn Func) Func {
	if fn == nil {
		return Heuristic
	}
	return fn
}
