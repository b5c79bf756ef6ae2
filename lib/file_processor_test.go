package lib

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"zaikosim/lib/sim"
)

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// writeWorkbook はテスト用のExcelファイルを作成します。
func writeWorkbook(t *testing.T, dir, filename string, rows [][]any) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, axis, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
	return path
}

func fixtureConfig(t *testing.T) RunConfig {
	t.Helper()
	dir := t.TempDir()

	reqPath := writeWorkbook(t, dir, "所要量一覧.xlsx", [][]any{
		{"所要量一覧表"},
		{"出力条件: 2024/06/01"},
		{},
		{"品番", "品名", "要求日", "基準単位数量"},
		{"A001", "部品A", "2024/06/01", 4},
		{"A001", "部品A", "2024/06/02", 3},
		{"B002", "部品B", "2024/06/01", 8},
	})
	invPath := writeWorkbook(t, dir, "在庫一覧.xlsx", [][]any{
		{"在庫一覧表"},
		{},
		{},
		{},
		{"品番", "品名", "在庫数"},
		{"A001", "部品A", 10},
		{"B002", "部品B", 5},
	})
	rcvPath := writeWorkbook(t, dir, "受入表.xlsx", [][]any{
		{"品番", "納入日", "数量"},
		{"B002", "2024/06/02", 6},
	})

	return RunConfig{
		ReqPath: reqPath, InvPath: invPath, RcvPath: rcvPath,
		ReqHeaderRow: 4, InvHeaderRow: 5, RcvHeaderRow: 1,
		Start: "2024/06/01",
	}
}

func TestBuildTable(t *testing.T) {
	table, err := BuildTable(fixtureConfig(t))
	require.NoError(t, err)

	// 2材料 × 3行(所要, 受入, 残数)
	require.Len(t, table.Rows, 6)
	require.Len(t, table.Dates, 2)

	assert.Equal(t, "A001", table.Rows[0].Code)
	assert.Equal(t, sim.Consumption, table.Rows[0].Kind)
	assert.Equal(t, sim.Receipt, table.Rows[1].Kind)
	assert.Equal(t, sim.Balance, table.Rows[2].Kind)

	// A001: 10 - 4 = 6, 6 - 3 = 3
	bal := table.Rows[2].Values
	assert.True(t, bal[0].Equal(qty("6")), "got %s", bal[0])
	assert.True(t, bal[1].Equal(qty("3")), "got %s", bal[1])

	// B002: 5 - 8 = -3, -3 + 6 = 3
	assert.Equal(t, "B002", table.Rows[3].Code)
	bal = table.Rows[5].Values
	assert.True(t, bal[0].Equal(qty("-3")), "got %s", bal[0])
	assert.True(t, bal[1].Equal(qty("3")), "got %s", bal[1])
}

// 受入表なしなら2行グループ
func TestBuildTable_WithoutReceipts(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.RcvPath = ""
	table, err := BuildTable(cfg)
	require.NoError(t, err)
	require.Len(t, table.Rows, 4)
	assert.Equal(t, sim.Consumption, table.Rows[0].Kind)
	assert.Equal(t, sim.Balance, table.Rows[1].Kind)
}

// 絞り込みは計算後のビューとして適用される
func TestBuildTable_Views(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Shortage = true
	table, err := BuildTable(cfg)
	require.NoError(t, err)
	// 残数がマイナスになるのはB002だけ
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "B002", table.Rows[0].Code)

	cfg = fixtureConfig(t)
	cfg.Days = 1
	table, err = BuildTable(cfg)
	require.NoError(t, err)
	assert.Len(t, table.Dates, 1)

	cfg = fixtureConfig(t)
	cfg.Exclude = "A001"
	table, err = BuildTable(cfg)
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "B002", table.Rows[0].Code)
}

func TestBuildTable_BadStartDate(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Start = "06-01"
	_, err := BuildTable(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "開始日")
}

func TestBuildTable_MissingFile(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.ReqPath = filepath.Join(t.TempDir(), "ない.xlsx")
	_, err := BuildTable(cfg)
	require.Error(t, err)
}

// 必須列の欠けた帳票は呼び出し側へのハードエラー
func TestBuildTable_MissingColumn(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.ReqPath = writeWorkbook(t, t.TempDir(), "壊れた所要量.xlsx", [][]any{
		{},
		{},
		{},
		{"品番", "品名", "数量だけ"},
	})
	_, err := BuildTable(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "必須列")
}

func TestRun_JSONOutput(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.JSONOut = true
	require.NoError(t, Run(cfg))
}

func TestRun_ExcelOutput(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.OutPath = filepath.Join(t.TempDir(), "推移.xlsx")
	require.NoError(t, Run(cfg))

	f, err := excelize.OpenFile(cfg.OutPath)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("在庫推移", "A2")
	require.NoError(t, err)
	assert.Equal(t, "A001", v)
}
