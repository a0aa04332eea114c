package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/lowremag/internal/config"
	"github.com/san-kum/lowremag/internal/dynamo"
)

func testResult() *dynamo.Result {
	return &dynamo.Result{
		States: []dynamo.State{
			{1.0, 0, 0, 1.0, 0, 0},
			{0.5, 0, 0, 0.5, 0, 0},
		},
		Times:      []float64{0.0, 1e-4},
		StepsTaken: 10,
		Metrics: map[string]float64{
			"kinetic_energy": 1.5,
			"joule_energy":   math.NaN(),
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	c := config.GetPreset("hartmann")
	fields := &Snapshot{Columns: []string{"cell", "jy"}, Rows: [][]float64{{0, -1e4}, {1, -1e4}}}

	runID, err := st.Save(c, RunMetadata{Cells: 2, BrakingTime: 1e-4}, testResult(), fields)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Case != "hartmann" || meta.Integrator != "rk4" || meta.Steps != 10 || meta.Cells != 2 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Metrics["kinetic_energy"] != 1.5 {
		t.Errorf("expected kinetic energy 1.5, got %g", meta.Metrics["kinetic_energy"])
	}
	if _, ok := meta.Metrics["joule_energy"]; ok {
		t.Error("non-finite metrics must be dropped")
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 2 || len(times) != 2 || states[1][3] != 0.5 || times[1] != 1e-4 {
		t.Errorf("unexpected states %v at %v", states, times)
	}

	snap, err := st.LoadFields(runID)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Columns[1] != "jy" || snap.Rows[1][1] != -1e4 {
		t.Errorf("unexpected snapshot %+v", snap)
	}

	back, err := st.LoadCase(runID)
	if err != nil {
		t.Fatal(err)
	}
	if back.Name != c.Name || back.Dt != c.Dt || back.MHD == nil {
		t.Errorf("case not preserved: %+v", back)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("expected empty list, got %v %v", runs, err)
	}

	c := config.GetPreset("hall")
	first, err := st.Save(c, RunMetadata{}, testResult(), nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := st.Save(c, RunMetadata{}, testResult(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatal("run ids must be unique")
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
	if _, err := st.LoadFields(first); err == nil {
		t.Error("expected error for run saved without fields")
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(config.GetPreset("hartmann"), RunMetadata{}, testResult(),
		&Snapshot{Columns: []string{"cell"}, Rows: [][]float64{{0}}})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatal(err)
	}
	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatal(err)
	}
	if data.Run.ID != runID || len(data.States) != 2 || data.Fields == nil {
		t.Errorf("unexpected export %+v", data)
	}
}
