package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestEntry represents one rendered image in the output manifest.
type ManifestEntry struct {
	Job     string `json:"job"`
	Frame   *int   `json:"frame,omitempty"`
	Image   string `json:"image"`
	Average string `json:"average_color"`
}

// WriteManifest writes manifest.json listing every successful result.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		e := ManifestEntry{
			Job:     r.Job,
			Image:   r.Path,
			Average: r.Average.String(),
		}
		if r.Frame >= 0 {
			frame := r.Frame
			e.Frame = &frame
		}
		entries = append(entries, e)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
