package output

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"zaikosim/lib/sim"
)

func testTable(t *testing.T) *sim.Table {
	t.Helper()
	d1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	reqs := []sim.QuantityEvent{
		{Code: "A001", Name: "部品A", Date: d1, Quantity: decimal.RequireFromString("4")},
		{Code: "A001", Name: "部品A", Date: d1.AddDate(0, 0, 1), Quantity: decimal.RequireFromString("8")},
	}
	stocks := sim.StockLevels{"A001": decimal.RequireFromString("10")}
	return sim.Project(reqs, nil, stocks, sim.Options{StartDate: d1}).Table()
}

func TestNewTableJSON(t *testing.T) {
	got := NewTableJSON(testTable(t))

	require.Equal(t,
		[]string{"品番", "品名", "在庫数", "区分", "2024/06/01", "2024/06/02"},
		got.Columns)
	require.Len(t, got.Rows, 2)

	assert.Equal(t, "A001", got.Rows[0][0])
	assert.Equal(t, "部品A", got.Rows[0][1])
	assert.Equal(t, "10", got.Rows[0][2])
	assert.Equal(t, "所要", got.Rows[0][3])

	// 残数行: 識別子は空欄、値は6, -2
	assert.Empty(t, got.Rows[1][0])
	assert.Equal(t, "残数", got.Rows[1][3])
	assert.True(t, decimal.RequireFromString(got.Rows[1][4]).Equal(decimal.RequireFromString("6")))
	assert.True(t, decimal.RequireFromString(got.Rows[1][5]).Equal(decimal.RequireFromString("-2")))
}

func TestToJSON(t *testing.T) {
	b, err := ToJSON(testTable(t))
	require.NoError(t, err)

	var decoded TableJSON
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Len(t, decoded.Rows, 2)
	assert.Len(t, decoded.Columns, 6)
}

func TestWriteExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projection.xlsx")
	require.NoError(t, WriteExcel(testTable(t), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	get := func(axis string) string {
		v, err := f.GetCellValue("在庫推移", axis)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "品番", get("A1"))
	assert.Equal(t, "2024/06/01", get("E1"))

	// 所要行
	assert.Equal(t, "A001", get("A2"))
	assert.Equal(t, "4", get("E2"))
	// 残数行: 2日目にマイナス
	assert.Equal(t, "残数", get("D3"))
	assert.Equal(t, "6", get("E3"))
	assert.Equal(t, "-2", get("F3"))
}

// 所要・受入行の0は空欄、残数行の0はそのまま出す
func TestWriteExcel_ZeroDisplay(t *testing.T) {
	d1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	reqs := []sim.QuantityEvent{
		{Code: "A003", Date: d1, Quantity: decimal.RequireFromString("5")},
	}
	receipts := []sim.QuantityEvent{
		{Code: "A003", Date: d1, Quantity: decimal.RequireFromString("5")},
	}
	table := sim.Project(reqs, receipts, nil, sim.Options{StartDate: d1}).Table()

	path := filepath.Join(t.TempDir(), "zero.xlsx")
	require.NoError(t, WriteExcel(table, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// 行2=所要(5), 行3=受入(5), 行4=残数(0)
	v, err := f.GetCellValue("在庫推移", "E4")
	require.NoError(t, err)
	assert.Equal(t, "0", v)
}

// 空の推移表はヘッダーだけのブックになる
func TestWriteExcel_EmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteExcel(&sim.Table{}, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("在庫推移", "D1")
	require.NoError(t, err)
	assert.Equal(t, "区分", v)
}
