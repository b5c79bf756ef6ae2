/*
simパッケージは在庫推移シミュレーションの中核エンジンです。

- types.go     : エンジンが扱う型の定義
- aggregate.go : (品番, 日付)ごとの数量集計
- calendar.go  : 日次カレンダーの構築と系列の整列
- project.go   : 在庫残の漸化式計算と行グループの組み立て
- view.go      : 組み立て済み推移表に対する絞り込みビュー

エンジンはI/Oを持たない純粋な計算で、呼び出しごとに入力から
すべてを計算し直します。呼び出し間で共有する状態はありません。
*/
package sim

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialCode : 材料を一意に識別する品番
type MaterialCode string

// RowKind : 出力行の区分。値は帳票の表示そのまま
type RowKind string

const (
	Consumption RowKind = "所要" // その日に消費される数量
	Receipt     RowKind = "受入" // その日に入庫する数量
	Balance     RowKind = "残数" // その日の終了時点の在庫残
)

// Material : 品番と表示用の品名の組
// 品名は表示用に持ち回るだけで、同一性の判定には使わない
type Material struct {
	Code MaterialCode
	Name string
}

// QuantityEvent : ある日付のある材料に対する数量イベント1件
// 所要(需要)にも受入(供給)にも使う。数量は符号付きで、
// 0やマイナスも不正とはしない
type QuantityEvent struct {
	Code     MaterialCode
	Name     string
	Date     time.Time
	Quantity decimal.Decimal
}

// StockLevels : 品番ごとのシミュレーション開始時点の在庫数
type StockLevels map[MaterialCode]decimal.Decimal

// Series : 日付をキーにした数量の疎な系列
// カレンダー整列前の集計結果を保持する
type Series map[time.Time]decimal.Decimal

// Calendar : 隙間のない日次の日付列(昇順)
type Calendar []time.Time

// SeriesRow : 1材料の出力行1本。Valuesはカレンダーと同じ長さ
type SeriesRow struct {
	Kind   RowKind
	Values []decimal.Decimal
}

// MaterialProjection : 1材料分の推移。Rowsは必ず
// 所要 → (受入) → 残数 の順に並ぶ
type MaterialProjection struct {
	Material
	OpeningStock decimal.Decimal
	Rows         []SeriesRow
}

// Projection : シミュレーション結果全体
// Materialsの並びは所要一覧に材料が現れた順を保つ
type Projection struct {
	Calendar  Calendar
	Materials []MaterialProjection
}

// Options : シミュレーションの設定
type Options struct {
	// StartDate : カレンダーの開始日。ゼロ値なら実行日
	StartDate time.Time
	// IncludeStockOnly : trueなら所要のない在庫だけの材料も出力する
	IncludeStockOnly bool
}

// Day : 時刻を切り捨てて日付だけにする
// エンジン内の日付はすべてこの形(UTC 0時)に正規化して扱う
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
