package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Manifest summarizes a batch run.
type Manifest struct {
	RunID     string    `json:"run_id"`
	Generated time.Time `json:"generated"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Results   []Result  `json:"results"`
}

// Summarize counts successes and failures.
func Summarize(results []Result) (succeeded, failed int) {
	for _, r := range results {
		if r.Success {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}

// TotalBytes sums the sizes of all written outputs.
func TotalBytes(results []Result) uint64 {
	var n uint64
	for _, r := range results {
		n += uint64(r.Bytes)
	}
	return n
}

// WriteManifest writes results as indented JSON to path.
func WriteManifest(path string, results []Result) error {
	ok, failed := Summarize(results)
	m := Manifest{
		RunID:     uuid.NewString(),
		Generated: time.Now().UTC(),
		Succeeded: ok,
		Failed:    failed,
		Results:   results,
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
