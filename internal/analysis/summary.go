package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/sofiakaramia/Data-Storm/internal/domain/entities"
)

// Statistics holds the per-indicator aggregate values, each rounded to
// two decimal places.
type Statistics struct {
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Summary maps indicator name (temp, humidity, pressure) to its
// statistics over a cleaned dataset.
type Summary map[string]Statistics

// Summarize computes mean/min/max for each numeric column of a cleaned
// dataset. Values are rounded half away from zero to two decimals.
func (a *Analyzer) Summarize(ds *Dataset) (Summary, error) {
	if ds == nil || ds.Rows() == 0 {
		return nil, fmt.Errorf("%w: dataset is empty after cleaning", entities.ErrAnalysis)
	}

	summary := make(Summary, len(numericColumns))
	for _, col := range numericColumns {
		cells := ds.Columns[col]

		sum := 0.0
		minVal := math.Inf(1)
		maxVal := math.Inf(-1)
		count := 0

		for _, cell := range cells {
			if !cell.Valid {
				continue
			}
			sum += cell.Float64
			minVal = math.Min(minVal, cell.Float64)
			maxVal = math.Max(maxVal, cell.Float64)
			count++
		}

		if count == 0 {
			return nil, fmt.Errorf("%w: column %q has no values", entities.ErrAnalysis, col)
		}

		summary[col] = Statistics{
			Mean: round2(sum / float64(count)),
			Min:  round2(minVal),
			Max:  round2(maxVal),
		}
	}

	a.logger.Debugf("Computed summary statistics over %d rows", ds.Rows())
	return summary, nil
}

// SaveSummaryJSON writes the summary as indented JSON to the given
// path, overwriting any existing file.
func (a *Analyzer) SaveSummaryJSON(summary Summary, filepath string) error {
	if len(summary) == 0 {
		return fmt.Errorf("%w: summary is empty, nothing to save", entities.ErrAnalysis)
	}

	data, err := json.MarshalIndent(summary, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: failed to encode summary: %v", entities.ErrAnalysis, err)
	}

	if err := os.WriteFile(filepath, data, 0o644); err != nil {
		return fmt.Errorf("%w: failed to write summary to %s: %v", entities.ErrAnalysis, filepath, err)
	}

	a.logger.Infof("Saved summary statistics to %s", filepath)
	return nil
}

// CelsiusToKelvin converts a Celsius temperature to Kelvin. The input
// must be a numeric type; numeric-looking strings are rejected.
func CelsiusToKelvin(tempC interface{}) (float64, error) {
	switch t := tempC.(type) {
	case float64:
		return t + 273.15, nil
	case float32:
		return float64(t) + 273.15, nil
	case int:
		return float64(t) + 273.15, nil
	case int8:
		return float64(t) + 273.15, nil
	case int16:
		return float64(t) + 273.15, nil
	case int32:
		return float64(t) + 273.15, nil
	case int64:
		return float64(t) + 273.15, nil
	case uint:
		return float64(t) + 273.15, nil
	case uint8:
		return float64(t) + 273.15, nil
	case uint16:
		return float64(t) + 273.15, nil
	case uint32:
		return float64(t) + 273.15, nil
	case uint64:
		return float64(t) + 273.15, nil
	default:
		return 0, fmt.Errorf("%w: temperature must be a number, got %T", entities.ErrInvalidInput, tempC)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
