package sim

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// 在庫残は毎ステップ小数第3位で丸める
// 表計算の丸め表示と突き合わせたときに誤差が累積しないようにする
const balanceScale = 3

// Project : 所要・受入・在庫からシミュレーション結果を組み立てる
//
// receiptsがnilのときは受入元が構成されていないものとみなし、
// 各材料の行グループは所要と残数の2行になる。空スライスは
// 「受入元はあるが受入ゼロ」で、全0の受入行が付く
//
// 出力に含める材料は所要一覧に現れたものが基準で、並びも
// その初出順を保つ。在庫だけで所要のない材料は
// opts.IncludeStockOnly のときだけ末尾に品番順で加える
func Project(requirements, receipts []QuantityEvent, stocks StockLevels, opts Options) *Projection {
	start := opts.StartDate
	if start.IsZero() {
		start = time.Now()
	}

	reqAgg := Aggregate(requirements)
	withReceipts := receipts != nil
	var rcvAgg map[MaterialCode]Series
	if withReceipts {
		rcvAgg = Aggregate(receipts)
	}

	cal := BuildCalendar(start, reqAgg, rcvAgg)

	materials := MaterialOrder(requirements)
	if opts.IncludeStockOnly {
		materials = append(materials, stockOnlyMaterials(stocks, reqAgg)...)
	}

	p := &Projection{Calendar: cal}
	if len(cal) == 0 {
		return p
	}

	for _, m := range materials {
		cons := reqAgg[m.Code].Reindex(cal)
		var rcpt []decimal.Decimal
		if withReceipts {
			rcpt = rcvAgg[m.Code].Reindex(cal)
		} else {
			rcpt = make([]decimal.Decimal, len(cal))
		}

		// 在庫の記録がない材料は開始在庫0(エラーではない)
		opening := stocks[m.Code]

		bal := make([]decimal.Decimal, len(cal))
		balance := opening
		for i := range cal {
			balance = balance.Sub(cons[i]).Add(rcpt[i]).Round(balanceScale)
			bal[i] = balance
		}

		mp := MaterialProjection{Material: m, OpeningStock: opening}
		mp.Rows = append(mp.Rows, SeriesRow{Kind: Consumption, Values: cons})
		if withReceipts {
			mp.Rows = append(mp.Rows, SeriesRow{Kind: Receipt, Values: rcpt})
		}
		mp.Rows = append(mp.Rows, SeriesRow{Kind: Balance, Values: bal})
		p.Materials = append(p.Materials, mp)
	}
	return p
}

// stockOnlyMaterials : 在庫はあるが所要がない材料を品番順で返す
func stockOnlyMaterials(stocks StockLevels, reqAgg map[MaterialCode]Series) []Material {
	var extra []Material
	for code := range stocks {
		if _, ok := reqAgg[code]; !ok {
			extra = append(extra, Material{Code: code})
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Code < extra[j].Code })
	return extra
}

// FlatRow : 表示用に平坦化した推移表の1行
// 品番・品名・在庫数はグループの先頭行にだけ入り、
// 2行目以降は空欄にする(表計算のセル結合表示に合わせた慣習)
type FlatRow struct {
	Code   string
	Name   string
	Stock  string
	Kind   RowKind
	Values []decimal.Decimal
}

// Table : 表示用の平坦な推移表
type Table struct {
	Dates Calendar
	Rows  []FlatRow
}

// Table : 材料ごとの行グループを1枚の平坦な表に並べる
// 1材料のグループは必ず連続し、所要 → (受入) → 残数 の順になる
func (p *Projection) Table() *Table {
	t := &Table{Dates: p.Calendar}
	for _, mp := range p.Materials {
		for i, row := range mp.Rows {
			fr := FlatRow{Kind: row.Kind, Values: row.Values}
			if i == 0 {
				fr.Code = string(mp.Code)
				fr.Name = mp.Name
				fr.Stock = mp.OpeningStock.String()
			}
			t.Rows = append(t.Rows, fr)
		}
	}
	return t
}
