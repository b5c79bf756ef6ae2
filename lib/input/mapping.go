package input

import (
	"fmt"
	"log/slog"

	"zaikosim/lib/sim"
)

/*
帳票の列は位置ではなく列名で引く。既定の列名は各帳票の
標準出力に合わせてあり、レイアウトの違う帳票には呼び出し側が
別のマッピングを渡す。必須列が見つからない場合だけがエラーで、
行単位の不備(数値でない数量、解釈できない日付)はエラーにしない
*/

type (
	// RequirementMapping : 所要量一覧表の列名
	RequirementMapping struct {
		Code     string // 品番
		Name     string // 品名
		Date     string // 要求日
		Quantity string // 基準単位数量
	}
	// InventoryMapping : 在庫一覧表の列名
	// Nameは任意で、列がなければ品名なしとして扱う
	InventoryMapping struct {
		Code     string
		Name     string
		Quantity string
	}
	// ReceiptMapping : 受入表の列名
	ReceiptMapping struct {
		Code     string
		Date     string
		Quantity string
	}
)

// DefaultRequirementMapping : 所要量一覧表の既定の列名
func DefaultRequirementMapping() RequirementMapping {
	return RequirementMapping{
		Code:     "品番",
		Name:     "品名",
		Date:     "要求日",
		Quantity: "基準単位数量",
	}
}

// DefaultInventoryMapping : 在庫一覧表の既定の列名
func DefaultInventoryMapping() InventoryMapping {
	return InventoryMapping{Code: "品番", Name: "品名", Quantity: "在庫数"}
}

// DefaultReceiptMapping : 受入表の既定の列名
func DefaultReceiptMapping() ReceiptMapping {
	return ReceiptMapping{Code: "品番", Date: "納入日", Quantity: "数量"}
}

// requireColumn : 必須列の列番号を引く。なければ呼び出し元の
// 契約違反として即エラー(行単位の不備と違い、回復しようがない)
func requireColumn(t *Table, label string) (int, error) {
	i := t.column(label)
	if i < 0 {
		return -1, fmt.Errorf("必須列 '%s' が見つかりません。列: %v", label, t.Columns)
	}
	return i, nil
}

// Events : 所要量一覧表から数量イベント列を取り出す
// 品番が空の行(合計行など)と要求日を解釈できない行は読み飛ばす
func (m RequirementMapping) Events(t *Table) ([]sim.QuantityEvent, error) {
	codeCol, err := requireColumn(t, m.Code)
	if err != nil {
		return nil, err
	}
	nameCol, err := requireColumn(t, m.Name)
	if err != nil {
		return nil, err
	}
	dateCol, err := requireColumn(t, m.Date)
	if err != nil {
		return nil, err
	}
	qtyCol, err := requireColumn(t, m.Quantity)
	if err != nil {
		return nil, err
	}

	var events []sim.QuantityEvent
	for _, row := range t.Rows {
		code := cell(row, codeCol)
		if code == "" {
			continue
		}
		d, ok := parseDateSafe(cell(row, dateCol))
		if !ok {
			slog.Warn("要求日を解釈できない行を読み飛ばします。",
				slog.String("品番", code),
				slog.String("要求日", cell(row, dateCol)))
			continue
		}
		events = append(events, sim.QuantityEvent{
			Code:     sim.MaterialCode(code),
			Name:     cell(row, nameCol),
			Date:     d,
			Quantity: parseDecimalSafe(cell(row, qtyCol)),
		})
	}
	return events, nil
}

// Stocks : 在庫一覧表から品番ごとの在庫数を取り出す
// 同じ品番が複数回現れた場合は最初の行を正とし、以降は捨てる
// (在庫一覧は品番ごとの合計行が内訳行より先に出力されるため)
func (m InventoryMapping) Stocks(t *Table) (sim.StockLevels, error) {
	codeCol, err := requireColumn(t, m.Code)
	if err != nil {
		return nil, err
	}
	qtyCol, err := requireColumn(t, m.Quantity)
	if err != nil {
		return nil, err
	}
	// 品名列は任意
	nameCol := -1
	if m.Name != "" {
		nameCol = t.column(m.Name)
	}

	stocks := make(sim.StockLevels)
	for _, row := range t.Rows {
		code := sim.MaterialCode(cell(row, codeCol))
		if code == "" {
			continue
		}
		if _, ok := stocks[code]; ok {
			slog.Warn("在庫一覧に重複した品番があります。最初の行を採用します。",
				slog.String("品番", string(code)),
				slog.String("品名", cell(row, nameCol)))
			continue
		}
		stocks[code] = parseDecimalSafe(cell(row, qtyCol))
	}
	return stocks, nil
}

// Events : 受入表から数量イベント列を取り出す
func (m ReceiptMapping) Events(t *Table) ([]sim.QuantityEvent, error) {
	codeCol, err := requireColumn(t, m.Code)
	if err != nil {
		return nil, err
	}
	dateCol, err := requireColumn(t, m.Date)
	if err != nil {
		return nil, err
	}
	qtyCol, err := requireColumn(t, m.Quantity)
	if err != nil {
		return nil, err
	}

	events := make([]sim.QuantityEvent, 0, len(t.Rows))
	for _, row := range t.Rows {
		code := cell(row, codeCol)
		if code == "" {
			continue
		}
		d, ok := parseDateSafe(cell(row, dateCol))
		if !ok {
			slog.Warn("納入日を解釈できない行を読み飛ばします。",
				slog.String("品番", code),
				slog.String("納入日", cell(row, dateCol)))
			continue
		}
		events = append(events, sim.QuantityEvent{
			Code:     sim.MaterialCode(code),
			Date:     d,
			Quantity: parseDecimalSafe(cell(row, qtyCol)),
		})
	}
	return events, nil
}
