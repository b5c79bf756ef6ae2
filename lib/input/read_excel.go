package input

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadTable は指定されたExcelファイルの先頭シートをTableとして読み込みます。
// headerRowは1始まりのヘッダー行番号で、それより上の行(タイトルや
// 出力条件など)は捨てます。列ラベルは前後の空白を取り除きます。
func ReadTable(filePath string, headerRow int) (*Table, error) {
	if err := validateFile(filePath); err != nil {
		return nil, err
	}
	if headerRow < 1 {
		return nil, fmt.Errorf("ヘッダー行番号が不正です: %d", headerRow)
	}

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("ファイルを開けません '%s': %w", filePath, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("ファイル '%s' にシートがありません", filePath)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("シート '%s' の読み込みエラー: %w", sheets[0], err)
	}
	if len(rows) < headerRow {
		return nil, fmt.Errorf(
			"ファイル '%s' にヘッダー行(%d行目)がありません。行数: %d",
			filePath, headerRow, len(rows))
	}

	table := &Table{}
	for _, label := range rows[headerRow-1] {
		table.Columns = append(table.Columns, strings.TrimSpace(label))
	}
	table.Rows = rows[headerRow:]
	return table, nil
}

// validateFile : ファイルタイプを検証する
func validateFile(f string) error {
	// 渡されたファイルがディレクトリの場合は無視
	fileInfo, err := os.Stat(f)
	if err != nil {
		return fmt.Errorf("ファイル情報読み込みエラー: %w", err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("%s はディレクトリです", f)
	}
	return nil
}
