// Package storage persists braking runs: metadata as JSON, the case as
// YAML, the velocity history and a final field snapshot as CSV.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/lowremag/internal/config"
	"github.com/san-kum/lowremag/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	caseFile     = "case.yaml"
	statesFile   = "states.csv"
	fieldsFile   = "fields.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

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
	ID          string             `json:"id"`
	Case        string             `json:"case"`
	Timestamp   time.Time          `json:"timestamp"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Integrator  string             `json:"integrator"`
	Cells       int                `json:"cells"`
	Steps       int                `json:"steps"`
	BrakingTime float64            `json:"braking_time,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Snapshot is a per-cell table, one row per cell.
type Snapshot struct {
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

func (s *Store) newRunDir(name string, now time.Time) (string, string, error) {
	base := fmt.Sprintf("%s_%s", name, now.Format("20060102-150405"))
	for i := 0; ; i++ {
		id := base
		if i > 0 {
			id = fmt.Sprintf("%s-%d", base, i)
		}
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", err
		}
	}
}

// Save writes a run and returns its ID. fields may be nil.
func (s *Store) Save(c *config.Case, meta RunMetadata, result *dynamo.Result, fields *Snapshot) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}
	now := time.Now()
	runID, runDir, err := s.newRunDir(c.Name, now)
	if err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Case = c.Name
	meta.Timestamp = now
	meta.Dt = c.Dt
	meta.Duration = c.Duration
	meta.Integrator = c.Integrator
	meta.Steps = result.StepsTaken
	meta.Metrics = finiteMetrics(result.Metrics)

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := config.SaveCase(filepath.Join(runDir, caseFile), c); err != nil {
		return "", err
	}
	if err := writeStates(filepath.Join(runDir, statesFile), result); err != nil {
		return "", err
	}
	if fields != nil {
		if err := writeTable(filepath.Join(runDir, fieldsFile), fields.Columns, fields.Rows); err != nil {
			return "", err
		}
	}
	return runID, nil
}

// finiteMetrics drops NaN/Inf values, which JSON cannot encode.
func finiteMetrics(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}
	return out
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeStates(path string, result *dynamo.Result) error {
	if len(result.States) == 0 {
		return writeTable(path, []string{"time"}, nil)
	}
	cols := []string{"time"}
	for i := 0; i < len(result.States[0])/3; i++ {
		cols = append(cols, fmt.Sprintf("ux%d", i), fmt.Sprintf("uy%d", i), fmt.Sprintf("uz%d", i))
	}
	rows := make([][]float64, len(result.States))
	for i, st := range result.States {
		rows[i] = append([]float64{result.Times[i]}, st...)
	}
	return writeTable(path, cols, rows)
}

func writeTable(path string, cols []string, rows [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(cols); err != nil {
		return err
	}
	record := make([]string, len(cols))
	for _, row := range rows {
		record = record[:0]
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'g', 10, 64))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the stored runs, newest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadCase(runID string) (*config.Case, error) {
	return config.LoadCase(filepath.Join(s.baseDir, runID, caseFile))
}

// LoadStates returns the recorded velocity states and their times.
func (s *Store) LoadStates(runID string) ([]dynamo.State, []float64, error) {
	_, rows, err := readTable(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, nil, err
	}
	states := make([]dynamo.State, 0, len(rows))
	times := make([]float64, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		times = append(times, row[0])
		states = append(states, dynamo.State(row[1:]))
	}
	return states, times, nil
}

func (s *Store) LoadFields(runID string) (*Snapshot, error) {
	cols, rows, err := readTable(filepath.Join(s.baseDir, runID, fieldsFile))
	if err != nil {
		return nil, err
	}
	return &Snapshot{Columns: cols, Rows: rows}, nil
}

func readTable(path string) ([]string, [][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	rows := make([][]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		row := make([]float64, len(record))
		for j, cell := range record {
			if row[j], err = strconv.ParseFloat(cell, 64); err != nil {
				return nil, nil, fmt.Errorf("%s: row %d column %d: %w", filepath.Base(path), i+1, j, err)
			}
		}
		rows = append(rows, row)
	}
	return records[0], rows, nil
}
