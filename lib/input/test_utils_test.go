package input

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func qty(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	return decimal.RequireFromString(s)
}

// createTestExcelFile はテスト用のExcelファイルを作成します。
// rowsをシート先頭行から順に書き込みます
func createTestExcelFile(t *testing.T, filename string, rows [][]any) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), filename)
	f := excelize.NewFile()

	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("セル座標変換失敗 (%d,%d): %v", c, r, err)
			}
			if err := f.SetCellValue(sheet, axis, v); err != nil {
				t.Fatalf("セル書き込み失敗 %s: %v", axis, err)
			}
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		t.Fatalf("テストファイル保存失敗 '%s': %v", filePath, err)
	}
	return filePath
}

// blankRows : ヘッダー行オフセットを作るためのダミー行
func blankRows(n int) [][]any {
	rows := make([][]any, n)
	for i := range rows {
		rows[i] = []any{"出力条件" + strconv.Itoa(i+1)}
	}
	return rows
}
