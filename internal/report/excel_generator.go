package report

import (
	"context"
	"fmt"
	"time"

	"github.com/sofiakaramia/Data-Storm/internal/analysis"
	"github.com/sofiakaramia/Data-Storm/internal/domain/entities"
	"github.com/sofiakaramia/Data-Storm/internal/pkg/logger"
	"github.com/xuri/excelize/v2"
)

type Generator interface {
	GenerateSummaryReport(
		ctx context.Context,
		runID string,
		observations []*entities.Observation,
		summary analysis.Summary,
	) ([]byte, error)
}

type ExcelGenerator struct {
	logger logger.Logger
}

func NewExcelGenerator() *ExcelGenerator {
	return &ExcelGenerator{
		logger: logger.New("info", "development").WithField("component", "excel_generator"),
	}
}

// GenerateSummaryReport builds an xlsx workbook with an observations
// sheet and a summary statistics sheet for one collect run.
func (e *ExcelGenerator) GenerateSummaryReport(
	ctx context.Context,
	runID string,
	observations []*entities.Observation,
	summary analysis.Summary,
) ([]byte, error) {
	e.logger.Infof("Generating summary report %s for %d observations", runID, len(observations))

	f := excelize.NewFile()
	defer f.Close()

	f.SetDocProps(&excelize.DocProperties{
		Title:       fmt.Sprintf("Weather Summary Report %s", runID),
		Subject:     "Weather Observations Analysis",
		Creator:     "Data-Storm",
		Description: fmt.Sprintf("Summary statistics over %d observations", len(observations)),
		Created:     time.Now().String(),
	})

	if err := e.createObservationsSheet(f, observations); err != nil {
		return nil, fmt.Errorf("failed to create observations sheet: %w", err)
	}

	if err := e.createSummarySheet(f, summary); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}

	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel to buffer: %w", err)
	}

	return buf.Bytes(), nil
}

func (e *ExcelGenerator) createObservationsSheet(f *excelize.File, observations []*entities.Observation) error {
	sheetName := "Observations"
	f.NewSheet(sheetName)

	headers := []string{"City", "Temperature (°C)", "Humidity (%)", "Pressure (hPa)"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIdx, obs := range observations {
		row := rowIdx + 2
		f.SetCellValue(sheetName, e.cell(1, row), obs.City)
		f.SetCellValue(sheetName, e.cell(2, row), obs.Temp)
		f.SetCellValue(sheetName, e.cell(3, row), obs.Humidity)
		f.SetCellValue(sheetName, e.cell(4, row), obs.Pressure)
	}

	for i := 1; i <= len(headers); i++ {
		letter, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(sheetName, letter, letter, 18)
	}

	return nil
}

func (e *ExcelGenerator) createSummarySheet(f *excelize.File, summary analysis.Summary) error {
	sheetName := "Summary"
	f.NewSheet(sheetName)

	headers := []string{"Indicator", "Mean", "Min", "Max"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	indicators := []string{analysis.ColumnTemp, analysis.ColumnHumidity, analysis.ColumnPressure}
	row := 2
	for _, indicator := range indicators {
		stats, ok := summary[indicator]
		if !ok {
			continue
		}
		f.SetCellValue(sheetName, e.cell(1, row), indicator)
		f.SetCellValue(sheetName, e.cell(2, row), stats.Mean)
		f.SetCellValue(sheetName, e.cell(3, row), stats.Min)
		f.SetCellValue(sheetName, e.cell(4, row), stats.Max)
		row++
	}

	f.SetColWidth(sheetName, "A", "A", 15)
	f.SetColWidth(sheetName, "B", "D", 12)

	return nil
}

func (e *ExcelGenerator) cell(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}
