package sim

import "strings"

/*
推移表に対する絞り込みはすべて組み立て済みのProjectionへの
後処理ビューとして実装する。絞り込みの種類ごとに計算本体を
分岐させない。各ビューは元のProjectionを変更せず、系列を共有
した新しいProjectionを返す
*/

// CutoffDays : カレンダーを先頭からn日分に切り詰める
// nが0以下、またはカレンダー日数以上ならそのまま返す
func (p *Projection) CutoffDays(n int) *Projection {
	if n <= 0 || n >= len(p.Calendar) {
		return p
	}
	out := &Projection{Calendar: p.Calendar[:n]}
	for _, mp := range p.Materials {
		cut := MaterialProjection{Material: mp.Material, OpeningStock: mp.OpeningStock}
		for _, row := range mp.Rows {
			cut.Rows = append(cut.Rows, SeriesRow{Kind: row.Kind, Values: row.Values[:n]})
		}
		out.Materials = append(out.Materials, cut)
	}
	return out
}

// ShortageOnly : 残数がどこかでマイナスになる材料だけを残す
func (p *Projection) ShortageOnly() *Projection {
	return p.filter(func(mp MaterialProjection) bool {
		for _, row := range mp.Rows {
			if row.Kind != Balance {
				continue
			}
			for _, v := range row.Values {
				if v.IsNegative() {
					return true
				}
			}
		}
		return false
	})
}

// FilterName : 品名に部分一致する材料だけを残す
// 空文字なら何も絞り込まない
func (p *Projection) FilterName(substr string) *Projection {
	if substr == "" {
		return p
	}
	return p.filter(func(mp MaterialProjection) bool {
		return strings.Contains(mp.Name, substr)
	})
}

// ExcludeCodes : 指定された品番の材料を取り除く
func (p *Projection) ExcludeCodes(codes []string) *Projection {
	if len(codes) == 0 {
		return p
	}
	excluded := make(map[MaterialCode]bool, len(codes))
	for _, c := range codes {
		excluded[MaterialCode(strings.TrimSpace(c))] = true
	}
	return p.filter(func(mp MaterialProjection) bool {
		return !excluded[mp.Code]
	})
}

func (p *Projection) filter(keep func(MaterialProjection) bool) *Projection {
	out := &Projection{Calendar: p.Calendar}
	for _, mp := range p.Materials {
		if keep(mp) {
			out.Materials = append(out.Materials, mp)
		}
	}
	return out
}
