package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/san-kum/pendulum/internal/dynamo"
)

const (
	metadataFile   = "metadata.json"
	statesFile     = "states.csv"
	compressedFile = "states.csv.zst"
)

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
	ID           string             `json:"id"`
	Timestamp    time.Time          `json:"timestamp"`
	Length       float64            `json:"length"`
	AngleDegrees float64            `json:"angle_degrees"`
	Velocity     float64            `json:"angular_velocity"`
	Gravity      float64            `json:"gravity"`
	LegacyPi     bool               `json:"legacy_pi"`
	Dt           float64            `json:"dt"`
	Duration     float64            `json:"duration"`
	Steps        int                `json:"steps"`
	EnergyDrift  float64            `json:"energy_drift"`
	Compressed   bool               `json:"compressed"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Save writes meta and the states of result under a fresh run directory and
// returns the run ID. ID, Timestamp, Steps and Metrics are filled in from the
// store and the result. A failed save leaves no run directory behind.
func (s *Store) Save(meta RunMetadata, result *dynamo.Result) (string, error) {
	meta.ID = uuid.NewString()
	meta.Timestamp = time.Now()
	meta.Steps = result.StepsTaken
	meta.EnergyDrift = result.EnergyDrift
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := writeRun(runDir, meta, result); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return meta.ID, nil
}

func writeRun(runDir string, meta RunMetadata, result *dynamo.Result) (err error) {
	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}

	name := statesFile
	if meta.Compressed {
		name = compressedFile
	}
	f, err := os.Create(filepath.Join(runDir, name))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close states: %w", cerr)
		}
	}()

	if !meta.Compressed {
		if err := writeStates(f, result); err != nil {
			return fmt.Errorf("write states: %w", err)
		}
		return nil
	}

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return err
	}
	if err := writeStates(zw, result); err != nil {
		zw.Close()
		return fmt.Errorf("write states: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush states: %w", err)
	}
	return nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeStates(out io.Writer, result *dynamo.Result) error {
	w := csv.NewWriter(out)

	if err := w.Write([]string{"time", "angle", "velocity", "acceleration"}); err != nil {
		return err
	}

	for i, x := range result.States {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, val := range x {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("run %s: %w", runID, dynamo.ErrRunNotFound)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: decode metadata: %w", runID, err)
	}

	return &meta, nil
}

// LoadStates reads the recorded states and their times, decompressing the
// trace when the run was saved compressed.
func (s *Store) LoadStates(runID string) ([]dynamo.State, []float64, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	name := statesFile
	if meta.Compressed {
		name = compressedFile
	}
	f, err := os.Open(filepath.Join(s.baseDir, runID, name))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var in io.Reader = f
	if meta.Compressed {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, nil, err
		}
		defer zr.Close()
		in = zr
	}

	r := csv.NewReader(in)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []dynamo.State{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([]dynamo.State, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		state := make(dynamo.State, 0, len(record)-1)
		for _, field := range record[1:] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				continue
			}
			state = append(state, val)
		}
		times = append(times, t)
		states = append(states, state)
	}

	return states, times, nil
}
