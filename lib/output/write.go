/*
outputパッケージでは、組み立て済みの在庫推移表を
Excelブックや JSON として書き出します。表示の都合
(空欄表示や赤字)はすべてここで処理し、エンジン側の
数値には手を入れません。
*/
package output

import (
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"

	"zaikosim/lib/sim"
)

const (
	// sheetName : 出力ブックのシート名
	sheetName = "在庫推移"
	// dateLayout : 日付列ラベルの書式
	dateLayout = "2006/01/02"
)

// 固定の先頭列。これ以降は1日1列
var fixedColumns = []string{"品番", "品名", "在庫数", "区分"}

// TableJSON : APIレスポンスとJSONファイル出力に使う表の形
type TableJSON struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// NewTableJSON : 推移表をJSON向けの形に変換する
// 数値は文字列のまま保持する(浮動小数変換で値を崩さない)
func NewTableJSON(t *sim.Table) TableJSON {
	out := TableJSON{Columns: append([]string{}, fixedColumns...)}
	for _, d := range t.Dates {
		out.Columns = append(out.Columns, d.Format(dateLayout))
	}
	for _, row := range t.Rows {
		r := []string{row.Code, row.Name, row.Stock, string(row.Kind)}
		for _, v := range row.Values {
			r = append(r, v.String())
		}
		out.Rows = append(out.Rows, r)
	}
	return out
}

// ToJSON : 推移表をインデント付きJSONのバイト列で返す
func ToJSON(t *sim.Table) ([]byte, error) {
	return json.MarshalIndent(NewTableJSON(t), "", "  ")
}

// WriteExcel : 推移表をExcelブックとして書き出す
// マイナス値は赤字にする。所要・受入行の0は表計算の
// ピボット表示に合わせて空欄にする(残数行の0は意味の
// ある値なのでそのまま出す)
func WriteExcel(t *sim.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("シート名の設定に失敗しました: %w", err)
	}

	redStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "FF0000"},
	})
	if err != nil {
		return fmt.Errorf("スタイルの作成に失敗しました: %w", err)
	}

	// ヘッダー行
	header := append([]string{}, fixedColumns...)
	for _, d := range t.Dates {
		header = append(header, d.Format(dateLayout))
	}
	for c, label := range header {
		if err := setCell(f, c+1, 1, label, 0); err != nil {
			return err
		}
	}

	// 明細行
	for r, row := range t.Rows {
		excelRow := r + 2
		fixed := []string{row.Code, row.Name, row.Stock, string(row.Kind)}
		for c, v := range fixed {
			if err := setCell(f, c+1, excelRow, v, 0); err != nil {
				return err
			}
		}
		for i, v := range row.Values {
			if v.IsZero() && row.Kind != sim.Balance {
				continue // 空欄表示
			}
			style := 0
			if v.IsNegative() {
				style = redStyle
			}
			value, _ := v.Float64()
			if err := setCell(f, len(fixed)+i+1, excelRow, value, style); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("ファイル書き込みエラー '%s': %w", path, err)
	}
	return nil
}

// setCell : 1セル分の書き込み。styleが0ならスタイルは設定しない
func setCell(f *excelize.File, col, row int, value any, style int) error {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("セル座標変換エラー (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheetName, axis, value); err != nil {
		return fmt.Errorf("セル書き込みエラー %s: %w", axis, err)
	}
	if style != 0 {
		if err := f.SetCellStyle(sheetName, axis, axis, style); err != nil {
			return fmt.Errorf("セルスタイル設定エラー %s: %w", axis, err)
		}
	}
	return nil
}
