package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/bubblenav/internal/bubble"
	"github.com/san-kum/bubblenav/internal/sim"
)

var ErrBadFrames = errors.New("malformed frames file")

const (
	metaFile   = "metadata.json"
	framesFile = "frames.csv"
)

var framesHeader = []string{"tick", "epoch", "width", "height", "label", "x", "y", "vx", "vy", "stopped"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// RunInfo describes how a run was produced.
type RunInfo struct {
	Preset      string          `json:"preset"`
	Seed        int64           `json:"seed"`
	Radius      float64         `json:"radius"`
	Viewport    bubble.Viewport `json:"viewport"`
	CurrentPage string          `json:"current_page"`
	Ticks       int             `json:"ticks"`
	SampleEvery int             `json:"sample_every"`
}

type RunMetadata struct {
	RunInfo
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Labels     []string           `json:"labels"`
	TicksTaken int                `json:"ticks_taken"`
	SettledAt  int                `json:"settled_at"`
	Collisions int                `json:"collisions"`
	Resets     int                `json:"resets"`
	Frames     int                `json:"frames"`
	Metrics    map[string]float64 `json:"metrics"`
}

func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	name := info.Preset
	if name == "" {
		name = "run"
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := Metadata(info, result)
	meta.ID = runID
	meta.Timestamp = now

	if err := writeJSON(filepath.Join(runDir, metaFile), meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteFrames(f, result.Frames); err != nil {
		return "", err
	}
	return runID, nil
}

// Metadata builds the metadata record for a finished run without an ID.
func Metadata(info RunInfo, result *sim.Result) RunMetadata {
	return RunMetadata{
		RunInfo:    info,
		Labels:     result.Labels,
		TicksTaken: result.TicksTaken,
		SettledAt:  result.SettledAt,
		Collisions: result.Collisions,
		Resets:     result.Resets,
		Frames:     len(result.Frames),
		Metrics:    result.Metrics,
	}
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

// List returns saved runs, newest first.
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metaFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(framesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	frames := make([]sim.Frame, 0)
	for i, rec := range records[1:] {
		tick, err1 := strconv.Atoi(rec[0])
		epoch, err2 := strconv.Atoi(rec[1])
		if err := errors.Join(err1, err2); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrBadFrames, i+1, err)
		}

		nums := make([]float64, 6)
		for j, idx := range []int{2, 3, 5, 6, 7, 8} {
			v, err := strconv.ParseFloat(rec[idx], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrBadFrames, i+1, err)
			}
			nums[j] = v
		}
		stopped, err := strconv.ParseBool(rec[9])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrBadFrames, i+1, err)
		}

		n := len(frames)
		if n == 0 || frames[n-1].Tick != tick || frames[n-1].Epoch != epoch {
			frames = append(frames, sim.Frame{
				Tick:     tick,
				Epoch:    epoch,
				Viewport: bubble.Viewport{Width: nums[0], Height: nums[1]},
			})
			n++
		}
		frames[n-1].Bodies = append(frames[n-1].Bodies, bubble.Body{
			Label:   rec[4],
			X:       nums[2],
			Y:       nums[3],
			VX:      nums[4],
			VY:      nums[5],
			Stopped: stopped,
		})
	}
	return frames, nil
}
