package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GameRecord is the outcome of one game for one player.
type GameRecord struct {
	Game      uuid.UUID
	ConfigID  int
	Player    int
	Type      string
	Score     int
	Winner    bool
	StartTime time.Time
	EndTime   time.Time
}

type SearchRecord struct {
	Game uuid.UUID
	SearchMetric
}

// Writer stores game records in a CSV file and search records in a sibling
// file suffixed with _searches.
type Writer struct {
	gamesPath    string
	searchesPath string
}

func NewWriter(path string) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}
	ext := filepath.Ext(path)
	return &Writer{
		gamesPath:    path,
		searchesPath: strings.TrimSuffix(path, ext) + "_searches" + ext,
	}, nil
}

func (w *Writer) GamesPath() string {
	return w.gamesPath
}

func (w *Writer) SearchesPath() string {
	return w.searchesPath
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"game", "config_id", "player", "type", "score", "winner", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Game.String(),
			strconv.Itoa(record.ConfigID),
			strconv.Itoa(record.Player),
			record.Type,
			strconv.Itoa(record.Score),
			strconv.FormatBool(record.Winner),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.EndTime.Sub(record.StartTime).String(),
		})
	}
	if err := writeCSV(w.gamesPath, header, rows); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	return nil
}

func (w *Writer) WriteSearchRecords(records []SearchRecord) error {
	header := []string{"game", "algorithm", "phase", "round", "player", "candidates", "trials", "tree_nodes", "best_move", "best_score", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Game.String(),
			record.Algorithm,
			record.Phase,
			strconv.Itoa(record.Round),
			strconv.Itoa(record.Player),
			strconv.Itoa(record.Candidates),
			strconv.Itoa(record.Trials),
			strconv.Itoa(record.TreeNodes),
			record.BestMove,
			strconv.Itoa(record.BestScore),
			record.Duration.String(),
		})
	}
	if err := writeCSV(w.searchesPath, header, rows); err != nil {
		return fmt.Errorf("failed to write search records: %w", err)
	}
	return nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}
