// Package store persists SimulationReports to disk, one directory per
// run, in the layout the teacher's run store used: a JSON metadata
// file plus a CSV trace of the per-step values an operator would want
// to plot afterwards.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sankum/simuforge/internal/metricworld"
	"github.com/sankum/simuforge/internal/report"
)

// Store keeps every run under one base directory.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Save writes rep's report.json and, when frames is non-empty, a
// frames.csv trace alongside it. The run directory is named from the
// spec name and the save time so repeated runs of the same spec never
// collide.
func (s *Store) Save(rep *report.SimulationReport, frames []metricworld.MetricFrame) (string, error) {
	runID := fmt.Sprintf("%s_%d", rep.SpecName, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	reportPath := filepath.Join(runDir, "report.json")
	reportFile, err := os.Create(reportPath)
	if err != nil {
		return "", err
	}
	defer reportFile.Close()

	enc := json.NewEncoder(reportFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return "", err
	}

	if len(frames) == 0 {
		return runID, nil
	}

	if err := writeFrames(filepath.Join(runDir, "frames.csv"), frames); err != nil {
		return "", err
	}

	return runID, nil
}

func writeFrames(path string, frames []metricworld.MetricFrame) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{
		"step", "time",
		"kinetic_energy", "potential_energy", "total_energy",
		"linear_momentum", "angular_momentum",
		"contact_count", "max_penetration", "constraint_violations",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, f := range frames {
		row := []string{
			strconv.Itoa(f.Step),
			strconv.FormatFloat(f.Time, 'g', -1, 64),
			strconv.FormatFloat(f.Energy.Kinetic, 'g', -1, 64),
			strconv.FormatFloat(f.Energy.Potential, 'g', -1, 64),
			strconv.FormatFloat(f.Energy.Total, 'g', -1, 64),
			strconv.FormatFloat(f.Momentum.LinearMagnitude, 'g', -1, 64),
			strconv.FormatFloat(f.Momentum.AngularMagnitude, 'g', -1, 64),
			strconv.Itoa(f.Contacts.ContactCount),
			strconv.FormatFloat(f.Contacts.MaxPenetration, 'g', -1, 64),
			strconv.Itoa(f.Contacts.ConstraintViolations),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// Load reads back the report saved under runID.
func (s *Store) Load(runID string) (*report.SimulationReport, error) {
	path := filepath.Join(s.baseDir, runID, "report.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rep report.SimulationReport
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// LoadTotalEnergyTrace reads back the total-energy column of a saved
// frames.csv, in step order, for frequency-domain analysis.
func (s *Store) LoadTotalEnergyTrace(runID string) ([]float64, error) {
	path := filepath.Join(s.baseDir, runID, "frames.csv")
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}

	const totalEnergyColumn = 4
	trace := make([]float64, 0, len(rows)-1)
	for _, row := range rows[1:] {
		v, err := strconv.ParseFloat(row[totalEnergyColumn], 64)
		if err != nil {
			return nil, err
		}
		trace = append(trace, v)
	}
	return trace, nil
}

// List returns every run directory under baseDir, oldest first.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []string
	for _, e := range entries {
		if e.IsDir() {
			runs = append(runs, e.Name())
		}
	}
	savedAt := func(runID string) int64 {
		ts, _ := strconv.ParseInt(runID[strings.LastIndex(runID, "_")+1:], 10, 64)
		return ts
	}
	sort.Slice(runs, func(i, j int) bool {
		if ti, tj := savedAt(runs[i]), savedAt(runs[j]); ti != tj {
			return ti < tj
		}
		return runs[i] < runs[j]
	})
	return runs, nil
}
