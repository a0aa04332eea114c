package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	Run    RunMetadata `json:"run"`
	Times  []float64   `json:"times"`
	States [][]float64 `json:"states"`
	Fields *Snapshot   `json:"fields,omitempty"`
}

// ExportJSON writes a stored run as a single JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	states, times, err := s.LoadStates(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Run:    *meta,
		Times:  times,
		States: make([][]float64, len(states)),
	}
	for i, st := range states {
		data.States[i] = st
	}
	if snap, err := s.LoadFields(runID); err == nil {
		data.Fields = snap
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
