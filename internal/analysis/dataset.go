package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sofiakaramia/Data-Storm/internal/domain/entities"
	"github.com/sofiakaramia/Data-Storm/internal/pkg/logger"
)

const (
	ColumnTemp     = "temp"
	ColumnHumidity = "humidity"
	ColumnPressure = "pressure"
)

var numericColumns = []string{ColumnTemp, ColumnHumidity, ColumnPressure}

// Cell is a nullable numeric value. A cell that failed numeric
// coercion stays in the dataset as Valid=false until Clean drops it.
type Cell struct {
	Float64 float64
	Valid   bool
}

// Dataset is a column-oriented table of observations: one city label
// per row plus one Cell per numeric column. Row order follows the
// input record order.
type Dataset struct {
	Cities  []string
	Columns map[string][]Cell
}

func (d *Dataset) Rows() int {
	return len(d.Cities)
}

type Analyzer struct {
	logger logger.Logger
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{
		logger: logger.New("info", "development").WithField("component", "analyzer"),
	}
}

// BuildDataset converts raw record maps into a Dataset. Each record is
// expected to carry "city", "temp", "humidity" and "pressure" keys.
// Values that cannot be coerced to a number become missing cells
// rather than failing the whole call.
func (a *Analyzer) BuildDataset(records []map[string]interface{}) (*Dataset, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: records list cannot be empty", entities.ErrAnalysis)
	}

	ds := &Dataset{
		Cities:  make([]string, 0, len(records)),
		Columns: make(map[string][]Cell, len(numericColumns)),
	}
	for _, col := range numericColumns {
		ds.Columns[col] = make([]Cell, 0, len(records))
	}

	missing := 0
	for _, record := range records {
		city, _ := record["city"].(string)
		ds.Cities = append(ds.Cities, city)

		for _, col := range numericColumns {
			cell := coerceCell(record[col])
			if !cell.Valid {
				missing++
			}
			ds.Columns[col] = append(ds.Columns[col], cell)
		}
	}

	if missing > 0 {
		a.logger.Warnf("Dataset built with %d non-numeric values marked as missing", missing)
	}
	a.logger.Debugf("Built dataset with %d rows", ds.Rows())

	return ds, nil
}

// Clean returns the subset of rows where all three numeric columns are
// present, humidity is within [0, 100] and pressure is positive. The
// result preserves row order and never contains rows the input lacked.
func (a *Analyzer) Clean(ds *Dataset) *Dataset {
	cleaned := &Dataset{
		Columns: make(map[string][]Cell, len(numericColumns)),
	}

	for i := 0; i < ds.Rows(); i++ {
		if !rowValid(ds, i) {
			continue
		}
		cleaned.Cities = append(cleaned.Cities, ds.Cities[i])
		for _, col := range numericColumns {
			cleaned.Columns[col] = append(cleaned.Columns[col], ds.Columns[col][i])
		}
	}

	a.logger.Debugf("Cleaned dataset: kept %d of %d rows", cleaned.Rows(), ds.Rows())
	return cleaned
}

func rowValid(ds *Dataset, row int) bool {
	for _, col := range numericColumns {
		cells := ds.Columns[col]
		if row >= len(cells) || !cells[row].Valid || math.IsNaN(cells[row].Float64) {
			return false
		}
	}

	humidity := ds.Columns[ColumnHumidity][row].Float64
	pressure := ds.Columns[ColumnPressure][row].Float64

	return humidity >= 0 && humidity <= 100 && pressure > 0
}

func coerceCell(v interface{}) Cell {
	f, ok := toFloat(v)
	if !ok {
		return Cell{}
	}
	return Cell{Float64: f, Valid: true}
}

func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
