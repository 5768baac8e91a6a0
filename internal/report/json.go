package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/scan-io-git/cachelens/internal/analyzer"
	"github.com/scan-io-git/cachelens/internal/findings"
)

// WriteJSON writes r as an indented JSON document.
func WriteJSON(w io.Writer, r *analyzer.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

// ReadJSON decodes a result previously written by WriteJSON. A JSON null
// decodes to a nil result.
func ReadJSON(r io.Reader) (*analyzer.Result, error) {
	var result *analyzer.Result
	if err := json.NewDecoder(r).Decode(&result); err != nil {
		return nil, fmt.Errorf("error decoding result: %w", err)
	}
	if result != nil && result.Findings == nil {
		result.Findings = []findings.Finding{}
	}
	return result, nil
}

// ReadJSONFile reads a result from path.
func ReadJSONFile(path string) (*analyzer.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening result file: %w", err)
	}
	defer f.Close()

	return ReadJSON(f)
}
