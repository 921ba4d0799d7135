// Package storage persists finished runs: metadata as JSON and the
// sample time series as CSV, one directory per run. The hot loop never
// touches it; a run is written only after it completes.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/rollslip/rollslip/internal/contact"
	"github.com/rollslip/rollslip/internal/dynamics"
)

var csvHeader = []string{
	"time", "x", "v", "a", "theta", "omega", "alpha",
	"elastic_force", "damping_force", "elastic_torque", "damping_torque",
	"friction", "rolling", "slip", "excursion", "slide_mode", "roll_mode",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one completed run and returns its generated ID.
func (s *Store) Save(scenario string, dt, duration float64, result *dynamics.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenario,
		Timestamp: time.Now(),
		Dt:        dt,
		Duration:  duration,
		Steps:     result.StepsTaken,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for sample := range result.Series() {
		if err := w.Write(sampleRow(sample)); err != nil {
			return "", err
		}
	}

	w.Flush()
	return runID, w.Error()
}

func sampleRow(s dynamics.Sample) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return []string{
		f(s.T), f(s.X), f(s.V), f(s.A), f(s.Theta), f(s.Omega), f(s.Alpha),
		f(s.ElasticForce), f(s.DampingForce), f(s.ElasticTorque), f(s.DampingTorque),
		f(s.Friction), f(s.Rolling), f(s.Slip), f(s.Excursion),
		s.SlideMode.String(), s.RollMode.String(),
	}
}

// List returns the metadata of every stored run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue // skip foreign directories
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

// Load reads the metadata of one run.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSamples reads the full time series of one run.
func (s *Store) LoadSamples(runID string) ([]dynamics.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	samples := make([]dynamics.Sample, 0, len(rows)-1)
	for _, row := range rows[1:] {
		sample, err := parseRow(row)
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func parseRow(row []string) (dynamics.Sample, error) {
	if len(row) != len(csvHeader) {
		return dynamics.Sample{}, fmt.Errorf("malformed row: %d columns, want %d", len(row), len(csvHeader))
	}

	vals := make([]float64, 15)
	for i := range vals {
		v, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			return dynamics.Sample{}, fmt.Errorf("column %s: %w", csvHeader[i], err)
		}
		vals[i] = v
	}

	slideMode, err := parseMode(row[15])
	if err != nil {
		return dynamics.Sample{}, fmt.Errorf("column slide_mode: %w", err)
	}
	rollMode, err := parseMode(row[16])
	if err != nil {
		return dynamics.Sample{}, fmt.Errorf("column roll_mode: %w", err)
	}

	return dynamics.Sample{
		T: vals[0], X: vals[1], V: vals[2], A: vals[3],
		Theta: vals[4], Omega: vals[5], Alpha: vals[6],
		ElasticForce: vals[7], DampingForce: vals[8],
		ElasticTorque: vals[9], DampingTorque: vals[10],
		Friction: vals[11], Rolling: vals[12],
		Slip: vals[13], Excursion: vals[14],
		SlideMode: slideMode,
		RollMode:  rollMode,
	}, nil
}

func parseMode(s string) (contact.Mode, error) {
	switch s {
	case "stick":
		return contact.Stick, nil
	case "slip":
		return contact.Slip, nil
	default:
		return contact.Stick, fmt.Errorf("unknown mode %q", s)
	}
}
