package services

import (
	"context"
	"fmt"
	"rentvsbuy/types"
	"rentvsbuy/utils/helpers"

	"github.com/getsentry/sentry-go"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	ComparisonSheet = "Yearly Comparison"
	InputsSheet     = "Inputs"

	// built-in excel number format "#,##0.00"
	moneyNumFmt = 4
)

type ExportServiceI interface {
	BuildWorkbook(ctx context.Context, in types.FinancialInputs, projection types.Projection) (*excelize.File, error)
}

type exportService struct{}

var ExportService ExportServiceI = &exportService{}

// BuildWorkbook lays the comparison table and the inputs it was computed from
// out on two sheets. The caller owns the returned file and must close it.
func (es *exportService) BuildWorkbook(ctx context.Context, in types.FinancialInputs, projection types.Projection) (*excelize.File, error) {
	span := sentry.StartSpan(ctx, "[SERVICE] BuildWorkbook")
	defer span.Finish()

	f := excelize.NewFile()
	if err := es.writeComparison(f, projection); err != nil {
		f.Close()
		span.Status = sentry.SpanStatusInternalError
		return nil, fmt.Errorf("error writing comparison sheet: %w", err)
	}
	if err := es.writeInputs(f, in, projection); err != nil {
		f.Close()
		span.Status = sentry.SpanStatusInternalError
		return nil, fmt.Errorf("error writing inputs sheet: %w", err)
	}

	zap.L().Info("Workbook built", zap.Int("rows", projection.Years))
	span.Status = sentry.SpanStatusOK
	return f, nil
}

func (es *exportService) writeComparison(f *excelize.File, projection types.Projection) error {
	if err := f.SetSheetName("Sheet1", ComparisonSheet); err != nil {
		return err
	}

	header := make([]interface{}, 0, len(types.ComparisonColumns))
	for _, column := range types.ComparisonColumns {
		header = append(header, column)
	}
	if err := f.SetSheetRow(ComparisonSheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range projection.Rows() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			row.Year,
			row.NetMonthlyPayment,
			row.YearlyRent,
			row.HouseValue,
			row.StockValue,
			row.PrincipalRemaining,
			row.Delta,
		}
		if err := f.SetSheetRow(ComparisonSheet, cell, &values); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(types.ComparisonColumns))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(ComparisonSheet, "A", lastCol, 24); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(ComparisonSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	if projection.Years == 0 {
		return nil
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: moneyNumFmt})
	if err != nil {
		return err
	}
	return f.SetCellStyle(ComparisonSheet, "B2", fmt.Sprintf("%s%d", lastCol, projection.Years+1), moneyStyle)
}

func (es *exportService) writeInputs(f *excelize.File, in types.FinancialInputs, projection types.Projection) error {
	if _, err := f.NewSheet(InputsSheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Parameter", "Value"},
		{"Monthly Rent", in.Rent},
		{"Inflation", helpers.FormatPercent(in.Inflation)},
		{"House Value", in.HouseValue},
		{"Younger than 32", yesNo(in.IsYoungerThan32)},
		{"Extra Monthly Costs", in.ExtraMonthlyCosts},
		{"Overbid Price", in.OverbidPrice},
		{"Renovation Price", in.RenovationPrice},
		{"Yearly House Appreciation", helpers.FormatPercent(in.YearlyHouseAppreciation)},
		{"Yearly Stocks Increase", helpers.FormatPercent(in.YearlyStocksIncrease)},
		{"Mortgage", in.Mortgage},
		{"Interest Rate", helpers.FormatPercent(in.InterestRate)},
		{"Mortgage Years", in.MortgageYears},
		{"Tax Rate", helpers.FormatPercent(in.TaxRate)},
		{"Overhead Costs", in.OverheadCosts},
		{"Include Overbid in Reselling", yesNo(in.IncludeOverbidInReselling)},
		{"Gross Monthly Payment", projection.GrossMonthlyPayment},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(InputsSheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return f.SetColWidth(InputsSheet, "A", "A", 30)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
