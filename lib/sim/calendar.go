package sim

import (
	"time"

	"github.com/shopspring/decimal"
)

// BuildCalendar : 開始日から、渡されたすべての集計系列に現れる
// 最大の日付までの連続した日次カレンダーを作る
// どの系列にも日付がひとつもない場合や、最大日付が開始日より
// 前の場合は空のカレンダーを返す。空のカレンダーは正常な結果で、
// 推移表が空になるだけでエラーではない
func BuildCalendar(start time.Time, seriesSets ...map[MaterialCode]Series) Calendar {
	start = Day(start)
	var max time.Time
	found := false
	for _, set := range seriesSets {
		for _, s := range set {
			for d := range s {
				if !found || d.After(max) {
					max = d
					found = true
				}
			}
		}
	}
	if !found || max.Before(start) {
		return nil
	}

	var cal Calendar
	for d := start; !d.After(max); d = d.AddDate(0, 0, 1) {
		cal = append(cal, d)
	}
	return cal
}

// Reindex : 系列をカレンダーに整列させる
// カレンダーにあって系列にない日付は0で埋める。これにより
// すべての材料の所要・受入系列が同じ長さ・同じ日付順になる
func (s Series) Reindex(cal Calendar) []decimal.Decimal {
	values := make([]decimal.Decimal, len(cal))
	for i, d := range cal {
		if v, ok := s[d]; ok {
			values[i] = v
		}
	}
	return values
}
