package preset

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// InjectionInChat marks an entry that is inserted into the conversation at a
// fixed depth instead of at its place in the prompt order.
const InjectionInChat = 1

// Preset is a prompt preset snapshot as exported by the host chat application.
type Preset struct {
	Prompts              []PromptEntry `json:"prompts" yaml:"prompts"`
	PromptOrder          []OrderNode   `json:"prompt_order" yaml:"prompt_order"`
	SquashSystemMessages bool          `json:"squash_system_messages" yaml:"squash_system_messages"`
}

// PromptEntry is a single text segment of a preset.
type PromptEntry struct {
	Identifier        string      `json:"identifier" yaml:"identifier"`
	Name              string      `json:"name,omitempty" yaml:"name,omitempty"`
	Content           string      `json:"content,omitempty" yaml:"content,omitempty"`
	Enabled           *bool       `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Role              string      `json:"role,omitempty" yaml:"role,omitempty"`
	InjectionPosition int         `json:"injection_position,omitempty" yaml:"injection_position,omitempty"`
	InjectionDepth    OptionalInt `json:"injection_depth" yaml:"injection_depth"`
}

// IsEnabled reports whether the entry is switched on. Entries without an
// explicit flag are enabled, which is how the host treats them.
func (e PromptEntry) IsEnabled() bool {
	return e.Enabled == nil || *e.Enabled
}

// DisplayName returns the entry name, falling back to its identifier.
func (e PromptEntry) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Identifier
}

// OrderRecord places a prompt entry in the ordered sequence.
type OrderRecord struct {
	Identifier string `json:"identifier" yaml:"identifier"`
	Enabled    bool   `json:"enabled" yaml:"enabled"`
}

// OrderNode is one element of prompt_order. Flat presets store order records
// directly; per-character presets store wrappers whose Order holds the records.
type OrderNode struct {
	Identifier  string        `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Enabled     bool          `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	CharacterID interface{}   `json:"character_id,omitempty" yaml:"character_id,omitempty"`
	Order       []OrderRecord `json:"order,omitempty" yaml:"order,omitempty"`
}

// IsWrapper reports whether the node carries its own order list.
func (n OrderNode) IsWrapper() bool {
	return n.Order != nil
}

// OptionalInt is an integer that may be absent. JSON null and a missing key
// both decode to an invalid value.
type OptionalInt struct {
	Value int
	Valid bool
}

// Int returns a valid OptionalInt holding v.
func Int(v int) OptionalInt {
	return OptionalInt{Value: v, Valid: true}
}

// UnmarshalJSON accepts null, integers and integral floats.
func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = OptionalInt{}
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("injection depth %s is not a number: %w", data, err)
	}
	if v, err := num.Int64(); err == nil {
		*o = Int(int(v))
		return nil
	}
	f, err := num.Float64()
	if err != nil {
		return fmt.Errorf("injection depth %s is not a number: %w", data, err)
	}
	*o = Int(int(f))
	return nil
}

// MarshalJSON writes null for an invalid value.
func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(o.Value)), nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML presets.
func (o *OptionalInt) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v *float64
	if err := unmarshal(&v); err != nil {
		return fmt.Errorf("injection depth is not a number: %w", err)
	}
	if v == nil {
		*o = OptionalInt{}
		return nil
	}
	*o = Int(int(*v))
	return nil
}

// MarshalYAML writes null for an invalid value.
func (o OptionalInt) MarshalYAML() (interface{}, error) {
	if !o.Valid {
		return nil, nil
	}
	return o.Value, nil
}
