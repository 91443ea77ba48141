// Package store persists simulation runs to disk: one directory per run
// holding a JSON metadata file and a CSV position trace, grounded on the
// teacher's internal/storage/store.go dual-write layout.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Store persists runs under baseDir, one subdirectory per run ID.
type Store struct {
	baseDir string
}

// New returns a Store rooted at baseDir. Call Init before Save.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Init creates baseDir if it does not already exist.
func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata is the JSON-serialized header of a stored run.
type RunMetadata struct {
	ID         string    `json:"id"`
	Scene      string    `json:"scene"`
	Timestamp  time.Time `json:"timestamp"`
	Seed       int64     `json:"seed"`
	Dt         float64   `json:"dt"`
	Duration   float64   `json:"duration"`
	Substeps   bool      `json:"substeps"`
	NParticles int       `json:"n_particles"`
	NFrames    int       `json:"n_frames"`
}

// FrameRecord is one recorded simulation frame: the full particle position
// set at a point in simulated time.
type FrameRecord struct {
	Time      float64
	Positions []Vec3
}

// Vec3 is the store's own position type, decoupled from r3.Vector so this
// package carries no solver dependency.
type Vec3 struct {
	X, Y, Z float64
}

// Save writes metadata.json and positions.csv under baseDir/<runID>,
// returning the generated run ID.
func (s *Store) Save(scene string, dt, duration float64, seed int64, substeps bool, frames []FrameRecord) (string, error) {
	runID := fmt.Sprintf("%s_%d", scene, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("store: create run dir: %w", err)
	}

	nParticles := 0
	if len(frames) > 0 {
		nParticles = len(frames[0].Positions)
	}

	meta := RunMetadata{
		ID:         runID,
		Scene:      scene,
		Timestamp:  time.Now(),
		Seed:       seed,
		Dt:         dt,
		Duration:   duration,
		Substeps:   substeps,
		NParticles: nParticles,
		NFrames:    len(frames),
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", fmt.Errorf("store: write metadata: %w", err)
	}

	if err := writePositionsCSV(filepath.Join(runDir, "positions.csv"), frames); err != nil {
		return "", fmt.Errorf("store: write positions: %w", err)
	}

	return runID, nil
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

func writePositionsCSV(path string, frames []FrameRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"frame", "particle", "x", "y", "z"}); err != nil {
		return err
	}

	for frameIdx, frame := range frames {
		for p, pos := range frame.Positions {
			row := []string{
				strconv.Itoa(frameIdx),
				strconv.Itoa(p),
				strconv.FormatFloat(pos.X, 'f', 6, 64),
				strconv.FormatFloat(pos.Y, 'f', 6, 64),
				strconv.FormatFloat(pos.Z, 'f', 6, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// List returns the metadata of every stored run, skipping any directory
// whose metadata.json is missing or unreadable.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, fmt.Errorf("store: list: %w", err)
	}

	runs := make([]RunMetadata, 0, len(entries))
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
	return runs, nil
}

// Load reads a single run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, fmt.Errorf("store: load %q: %w", runID, err)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("store: decode metadata for %q: %w", runID, err)
	}
	return &meta, nil
}

// LoadFrames reads back a run's recorded position trace.
func (s *Store) LoadFrames(runID string) ([]FrameRecord, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "positions.csv"))
	if err != nil {
		return nil, fmt.Errorf("store: load positions for %q: %w", runID, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("store: parse positions for %q: %w", runID, err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	byFrame := make(map[int][]Vec3)
	maxFrame := -1
	for _, rec := range records[1:] {
		if len(rec) != 5 {
			continue
		}
		frameIdx, err := strconv.Atoi(rec[0])
		if err != nil {
			continue
		}
		x, _ := strconv.ParseFloat(rec[2], 64)
		y, _ := strconv.ParseFloat(rec[3], 64)
		z, _ := strconv.ParseFloat(rec[4], 64)
		byFrame[frameIdx] = append(byFrame[frameIdx], Vec3{X: x, Y: y, Z: z})
		if frameIdx > maxFrame {
			maxFrame = frameIdx
		}
	}

	frames := make([]FrameRecord, maxFrame+1)
	for i := range frames {
		frames[i] = FrameRecord{Positions: byFrame[i]}
	}
	return frames, nil
}
