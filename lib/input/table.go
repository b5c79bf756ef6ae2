/*
inputパッケージではExcelファイルの読み込みと正規化を担当します。

- read_excel.go : excelファイルをTableとして読み込むモジュール

- table.go : 列ラベルの整形と、数量・日付セルの安全なパース

- mapping.go : 列名指定によるTableからエンジン入力への変換
*/
package input

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// dateLayout : 出力とログで使う日付の標準形
	dateLayout = "2006/01/02"
)

// 帳票によって揺れる日付の書式。標準形でパースできなければ順に試す
// 所要量一覧の要求日は2桁年(例: 24/06/01)で出力される
var dateLayoutSub = []string{
	"06/01/02",
	"06/1/2",
	"2006/1/2",
	"2006-01-02",
	"1/2/2006",
	"01-02-06",
}

// Table : ヘッダー行付きの生の表データ
// Columnsは前後の空白を取り除いた列ラベル
type Table struct {
	Columns []string
	Rows    [][]string
}

// column : ラベルに一致する列番号を返す。見つからなければ-1
func (t *Table) column(label string) int {
	for i, c := range t.Columns {
		if c == label {
			return i
		}
	}
	return -1
}

// cell : 行の指定列の値を返す。行が短い場合は空文字
// (excelizeのGetRowsは行末の空セルを切り詰めて返す)
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.Trim(row[i], " \t\n\r　")
}

// parseDecimalSafe : 数量セルを数値に変換する
// カンマ区切りを許容し、空欄やパースできない値は0として扱う
// (エラーにしない。検証ではなくベストエフォートの推移計算が目的)
func parseDecimalSafe(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		slog.Warn("数量セルを数値に変換できないため0として扱います。",
			slog.String("value", s))
		return decimal.Zero
	}
	return v
}

// parseDateSafe : 日付セルを日付に変換する
//
// まずdateLayout, dateLayoutSubに定めた文字列型として解釈し、
// 失敗したらExcelシリアル値として解釈する。
// どの解釈もできなければok=falseを返し、その行は読み飛ばされる
func parseDateSafe(s string) (t time.Time, ok bool) {
	switch s { // 棒線や空欄は日付なし
	case "", "‐", "-", "－", "―", "ー":
		return time.Time{}, false
	}

	if t, err := time.Parse(dateLayout, s); err == nil {
		return day(t), true
	}
	for _, layout := range dateLayoutSub {
		if t, err := time.Parse(layout, s); err == nil {
			return day(t), true
		}
	}

	// 文字列型で読み込めなければExcelシリアル値(1900年1月1日が1)
	if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 {
		return day(excelTimeToGoTime(v)), true
	}

	return time.Time{}, false
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Excelのシリアル値をGoの time.Time に変換するヘルパー関数
// Excel Time型は整数部分が日数を、小数部分が時刻を表す
func excelTimeToGoTime(excelSerialValue float64) time.Time {
	// 1900年ベースの場合の起点は 1900/1/1 (シリアル値 1)
	excelSerialValue -= 2.0
	// 日数部分の計算
	days := math.Floor(excelSerialValue)
	// 秒数の計算 (24時間 * 3600秒/時間 = 86400秒/日)
	seconds := math.Round((excelSerialValue - days) * 86400.0)

	baseTime := time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	return baseTime.AddDate(0, 0, int(days)).Add(time.Duration(seconds) * time.Second)
}
