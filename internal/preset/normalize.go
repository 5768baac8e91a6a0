package preset

// Normalized is the view every rule reads: the effective ordered sequence of
// enabled order records and an identifier lookup over the prompt entries.
type Normalized struct {
	Sequence []OrderRecord
	entries  map[string]PromptEntry
	inOrder  map[string]struct{}
}

// Normalize derives the effective ordered sequence of p. It returns false when
// the preset is absent or has no prompts or prompt order, in which case
// callers report nothing.
func Normalize(p *Preset) (Normalized, bool) {
	if p == nil || len(p.Prompts) == 0 || len(p.PromptOrder) == 0 {
		return Normalized{}, false
	}

	n := Normalized{
		entries: make(map[string]PromptEntry, len(p.Prompts)),
		inOrder: make(map[string]struct{}),
	}
	for _, entry := range p.Prompts {
		n.entries[entry.Identifier] = entry
	}

	for _, record := range orderRecords(p.PromptOrder) {
		if !record.Enabled {
			continue
		}
		n.Sequence = append(n.Sequence, record)
		n.inOrder[record.Identifier] = struct{}{}
	}
	return n, true
}

// orderRecords unwraps the per-character layout. Only the first wrapper is used.
func orderRecords(nodes []OrderNode) []OrderRecord {
	if len(nodes) > 0 && nodes[0].IsWrapper() {
		return nodes[0].Order
	}
	records := make([]OrderRecord, 0, len(nodes))
	for _, node := range nodes {
		records = append(records, OrderRecord{Identifier: node.Identifier, Enabled: node.Enabled})
	}
	return records
}

// Len returns the number of entries in the effective sequence.
func (n Normalized) Len() int {
	return len(n.Sequence)
}

// Entry looks up a prompt entry by identifier.
func (n Normalized) Entry(identifier string) (PromptEntry, bool) {
	entry, ok := n.entries[identifier]
	return entry, ok
}

// Content returns the text of an entry. Unknown identifiers have empty content.
func (n Normalized) Content(identifier string) string {
	return n.entries[identifier].Content
}

// Name returns a display label for identifier.
func (n Normalized) Name(identifier string) string {
	if entry, ok := n.entries[identifier]; ok {
		return entry.DisplayName()
	}
	return identifier
}

// InSequence reports whether identifier occupies a position in the effective sequence.
func (n Normalized) InSequence(identifier string) bool {
	_, ok := n.inOrder[identifier]
	return ok
}
