package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rollslip/rollslip/internal/contact"
	"github.com/rollslip/rollslip/internal/dynamics"
)

func testResult() *dynamics.Result {
	return &dynamics.Result{
		Samples: []dynamics.Sample{
			{T: 1e-4, X: 2e-4, V: 2.0, Friction: 0, SlideMode: contact.Stick, RollMode: contact.Stick},
			{T: 2e-4, X: 4e-4, V: 1.9996, A: -1.96, Friction: 12.25, Slip: 1.225e-4, SlideMode: contact.Slip, RollMode: contact.Slip},
			{T: 3e-4, X: 6e-4, V: 1.9992, A: -1.96, Friction: 9.8, Slip: 9.8e-5, SlideMode: contact.Slip, RollMode: contact.Slip},
		},
		Metrics:    map[string]float64{"peak_friction": 12.25},
		StepsTaken: 3,
	}
}

func TestSaveAndLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	runID, err := st.Save("benchmark", 1e-4, 8.5, testResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Scenario != "benchmark" || meta.Dt != 1e-4 || meta.Steps != 3 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Metrics["peak_friction"] != 12.25 {
		t.Errorf("metrics not persisted: %+v", meta.Metrics)
	}
}

func TestSamplesRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	want := testResult()
	runID, err := st.Save("benchmark", 1e-4, 8.5, want)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples: %v", err)
	}
	if len(got) != len(want.Samples) {
		t.Fatalf("sample count: got %d, want %d", len(got), len(want.Samples))
	}
	for i := range got {
		if got[i] != want.Samples[i] {
			t.Errorf("sample %d changed across round trip:\ngot  %+v\nwant %+v", i, got[i], want.Samples[i])
		}
	}
}

func TestLoadSamplesRejectsUnknownMode(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save("benchmark", 1e-4, 8.5, testResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	// Corrupt one mode column; the load must fail, not quietly read the
	// run back as all-stick.
	path := filepath.Join(st.baseDir, runID, "samples.csv")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	corrupted := strings.Replace(string(data), "stick", "wobble", 1)
	if err := os.WriteFile(path, []byte(corrupted), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := st.LoadSamples(runID); err == nil {
		t.Fatal("expected error loading corrupted mode column")
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	if _, err := st.Save("benchmark", 1e-4, 8.5, testResult()); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Save("spinup", 1e-4, 8.0, testResult()); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
}

func TestListEmptyDir(t *testing.T) {
	st := New(t.TempDir() + "/missing")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on missing dir: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	meta := &RunMetadata{ID: "benchmark_1", Scenario: "benchmark", Dt: 1e-4, Duration: 8.5, Steps: 3,
		Metrics: map[string]float64{"peak_friction": 12.25}}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, testResult().Samples); err != nil {
		t.Fatalf("export: %v", err)
	}

	var back ExportData
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("exported JSON does not parse: %v", err)
	}
	if back.Scenario != "benchmark" || len(back.Samples) != 3 {
		t.Errorf("export mismatch: %+v", back)
	}
	if back.Samples[1].SlideMode != contact.Slip {
		t.Errorf("mode lost in export: %+v", back.Samples[1])
	}
}
