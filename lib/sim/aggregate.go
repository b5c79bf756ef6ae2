package sim

// Aggregate : イベント列を(品番, 日付)ごとに合算して
// 品番→日付系列のマップを返す
// 同じ(品番, 日付)のイベントは足し合わせる。加算なので
// 入力行の順序は結果に影響しない
func Aggregate(events []QuantityEvent) map[MaterialCode]Series {
	agg := make(map[MaterialCode]Series)
	for _, ev := range events {
		d := Day(ev.Date)
		s, ok := agg[ev.Code]
		if !ok {
			s = make(Series)
			agg[ev.Code] = s
		}
		s[d] = s[d].Add(ev.Quantity)
	}
	return agg
}

// MaterialOrder : イベント列に品番が初めて現れた順で材料を返す
// 品名は最初に見つかった空でないものを採用する
func MaterialOrder(events []QuantityEvent) []Material {
	var order []Material
	seen := make(map[MaterialCode]int) // 品番 → orderのインデックス
	for _, ev := range events {
		i, ok := seen[ev.Code]
		if !ok {
			seen[ev.Code] = len(order)
			order = append(order, Material{Code: ev.Code, Name: ev.Name})
			continue
		}
		if order[i].Name == "" && ev.Name != "" {
			order[i].Name = ev.Name
		}
	}
	return order
}
