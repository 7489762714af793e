package statistics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lox/klondike/internal/player"
)

// Report is the JSON form of a Statistics summary
type Report struct {
	Games      int            `json:"games"`
	Wins       int            `json:"wins"`
	Capped     int            `json:"capped,omitempty"`
	WinRate    float64        `json:"win_rate"`
	WinRateCI  [2]float64     `json:"win_rate_ci95"`
	MeanMoves  float64        `json:"mean_moves"`
	MedianMove float64        `json:"median_moves"`
	StdDev     float64        `json:"stddev_moves"`
	MeanScore  float64        `json:"mean_score"`
	Foundation float64        `json:"mean_foundation_cards"`
	Families   map[string]int `json:"families"`
}

// Report summarises the statistics for export
func (s *Statistics) Report() Report {
	low, high := s.WinRateCI95()
	r := Report{
		Games:      s.Games,
		Wins:       s.Wins,
		Capped:     s.Capped,
		WinRate:    s.WinRate(),
		WinRateCI:  [2]float64{low, high},
		MeanMoves:  s.Mean(),
		MedianMove: s.Median(),
		StdDev:     s.StdDev(),
		MeanScore:  s.MeanScore(),
		Foundation: s.MeanFoundation(),
		Families:   make(map[string]int, player.NumFamilies),
	}
	for f := player.Family(0); int(f) < player.NumFamilies; f++ {
		r.Families[f.String()] = s.Families[f]
	}
	return r
}

// WriteReport writes the JSON report to filename. The file is written to a
// temporary sibling and renamed into place, so readers see either the old
// file or the complete new one.
func (s *Statistics) WriteReport(filename string) error {
	data, err := json.MarshalIndent(s.Report(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpPath, 0o644)
	}
	if err == nil {
		err = os.Rename(tmpPath, filename)
	}
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write report %s: %w", filename, err)
	}
	return nil
}
