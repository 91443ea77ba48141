package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// ExportJSON writes a run's metadata as indented JSON to the given path.
func ExportJSON(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("store: export json: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// ExportJSONStdout writes a run's metadata as indented JSON to stdout.
func ExportJSONStdout(meta RunMetadata) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// ExportCSVStdout re-emits a run's position trace to stdout in the same
// frame,particle,x,y,z layout it was stored in.
func ExportCSVStdout(frames []FrameRecord) error {
	w := csv.NewWriter(os.Stdout)
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
