package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/local/tabletitles/internal/extract"
)

const (
	jsonFilename = "results.json"
	csvFilename  = "results.csv"
)

// csvHeader matches the JSON field order.
var csvHeader = []string{"title", "page_number", "confidence"}

// Write serializes the full result set to results.json and results.csv in
// outDir, creating the directory and overwriting any existing files.
// Returns the paths written.
func Write(outDir string, results extract.ResultSet) (jsonPath, csvPath string, err error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create output dir: %w", err)
	}

	jsonPath = filepath.Join(outDir, jsonFilename)
	if err := writeJSON(jsonPath, results); err != nil {
		return "", "", err
	}

	csvPath = filepath.Join(outDir, csvFilename)
	if err := writeCSV(csvPath, results); err != nil {
		return "", "", err
	}

	log.Info().Int("results", len(results)).Str("json", jsonPath).Str("csv", csvPath).Msg("wrote output files")
	return jsonPath, csvPath, nil
}

func writeJSON(path string, results extract.ResultSet) error {
	if results == nil {
		results = extract.ResultSet{} // serialize as [] not null
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeCSV(path string, results extract.ResultSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	_ = w.Write(csvHeader)
	for _, r := range results {
		_ = w.Write([]string{r.Title, strconv.Itoa(r.PageNumber), string(r.Confidence)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
