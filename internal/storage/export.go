package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rollslip/rollslip/internal/dynamics"
)

// ExportData is the JSON export layout for one run.
type ExportData struct {
	Scenario string             `json:"scenario"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Metrics  map[string]float64 `json:"metrics"`
	Samples  []dynamics.Sample  `json:"samples"`
}

// ExportJSON writes a run as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, samples []dynamics.Sample) error {
	data := ExportData{
		Scenario: meta.Scenario,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Steps:    meta.Steps,
		Metrics:  meta.Metrics,
		Samples:  samples,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSONFile writes a run as indented JSON to path.
func ExportJSONFile(path string, meta *RunMetadata, samples []dynamics.Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, meta, samples)
}
