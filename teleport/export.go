package teleport

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON writes the results as an indented JSON array.
func WriteJSON(w io.Writer, results []RunResult) error {
	if results == nil {
		results = []RunResult{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(results)
}

// ReadJSON loads results written by WriteJSON. Every loaded result is
// validated.
func ReadJSON(r io.Reader) ([]RunResult, error) {
	var results []RunResult

	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return nil, err
	}

	for i, res := range results {
		if err := res.Validate(); err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}
	}

	return results, nil
}
