package export

import (
	"math"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/piwi3910/fencecalc/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportXLSX_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boq.xlsx")
	job, result := buildTestJob()
	pricing := model.DefaultPricing()

	require.NoError(t, ExportXLSX(path, job, result, pricing))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{bomSheet, runsSheet}, f.GetSheetList())

	name, err := f.GetCellValue(bomSheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Backyard", name)

	// Header on row 6, fabric is the first line item
	header, err := f.GetCellValue(bomSheet, "A6")
	require.NoError(t, err)
	assert.Equal(t, "Material", header)
	fabric, err := f.GetCellValue(bomSheet, "A7")
	require.NoError(t, err)
	assert.Equal(t, "Fabric (9ga wire)", fabric)

	items := model.LineItems(result, pricing)
	totalRow := 7 + len(items)
	formula, err := f.GetCellFormula(bomSheet, "E"+strconv.Itoa(totalRow))
	require.NoError(t, err)
	assert.Equal(t, "SUM(E7:E"+strconv.Itoa(totalRow-1)+")", formula)

	runs, err := f.GetRows(runsSheet)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{"Front", "60"}, runs[1])
}

func TestExportXLSX_EmptyRunsHardwareOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hardware.xlsx")
	job := model.NewFenceJob("Gate posts", "", model.EstimationInput{FenceHeight: "4", Ends: 2})

	require.NoError(t, ExportXLSX(path, job, job.Estimate(), model.DefaultPricing()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	runs, err := f.GetRows(runsSheet)
	require.NoError(t, err)
	assert.Len(t, runs, 1, "only the header row")

	rows, err := f.GetRows(bomSheet)
	require.NoError(t, err)
	var labels []string
	for _, row := range rows[6:] {
		labels = append(labels, row[0])
	}
	assert.Contains(t, labels, "End posts")
	assert.Contains(t, labels, "Post caps")
}

func TestExportXLSX_NonFiniteValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overflow.xlsx")
	job := model.NewFenceJob("Overflow", "", model.EstimationInput{
		Runs:        []model.FenceRun{model.NewFenceRun("Huge", math.MaxFloat64), model.NewFenceRun("Huge", math.MaxFloat64)},
		FenceHeight: "4",
		Ends:        2,
	})

	assert.NotPanics(t, func() {
		require.NoError(t, ExportXLSX(path, job, job.Estimate(), model.DefaultPricing()))
	})

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	qty, err := f.GetCellValue(bomSheet, "B7")
	require.NoError(t, err)
	assert.Equal(t, "n/a", qty, "infinite fabric footage is written as text")
}
