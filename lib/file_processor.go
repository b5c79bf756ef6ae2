package lib

import (
	"fmt"
	"os"
	"time"

	"zaikosim/lib/input"
	"zaikosim/lib/output"
	"zaikosim/lib/sim"
)

// BuildTable は設定に従って各帳票を読み込み、シミュレーションを
// 実行して平坦化済みの推移表を返します。
// 受入表(-rcv)が指定されていなければ受入行のない2行グループに
// なります。絞り込み指定はすべて計算後のビューとして適用します。
func BuildTable(cfg RunConfig) (*sim.Table, error) {
	reqTable, err := input.ReadTable(cfg.ReqPath, cfg.ReqHeaderRow)
	if err != nil {
		return nil, fmt.Errorf("所要量一覧表の読み込みエラー: %w", err)
	}
	requirements, err := input.DefaultRequirementMapping().Events(reqTable)
	if err != nil {
		return nil, fmt.Errorf("所要量一覧表の変換エラー: %w", err)
	}

	invTable, err := input.ReadTable(cfg.InvPath, cfg.InvHeaderRow)
	if err != nil {
		return nil, fmt.Errorf("在庫一覧表の読み込みエラー: %w", err)
	}
	stocks, err := input.DefaultInventoryMapping().Stocks(invTable)
	if err != nil {
		return nil, fmt.Errorf("在庫一覧表の変換エラー: %w", err)
	}

	// 受入表は任意。nilのままなら受入元なしとして扱われる
	var receipts []sim.QuantityEvent
	if cfg.RcvPath != "" {
		rcvTable, err := input.ReadTable(cfg.RcvPath, cfg.RcvHeaderRow)
		if err != nil {
			return nil, fmt.Errorf("受入表の読み込みエラー: %w", err)
		}
		receipts, err = input.DefaultReceiptMapping().Events(rcvTable)
		if err != nil {
			return nil, fmt.Errorf("受入表の変換エラー: %w", err)
		}
	}

	opts := sim.Options{IncludeStockOnly: cfg.StockOnly}
	if cfg.Start != "" {
		start, err := time.Parse("2006/01/02", cfg.Start)
		if err != nil {
			return nil, fmt.Errorf("開始日の形式が不正です '%s' (YYYY/MM/DD): %w", cfg.Start, err)
		}
		opts.StartDate = start
	}

	p := sim.Project(requirements, receipts, stocks, opts)
	p = p.FilterName(cfg.Name).
		ExcludeCodes(cfg.ExcludeCodes()).
		CutoffDays(cfg.Days)
	if cfg.Shortage {
		p = p.ShortageOnly()
	}
	return p.Table(), nil
}

// Run はCLIとしての1回分の実行です。推移表を組み立てて、
// JSON(標準出力)またはExcelファイルとして書き出します。
func Run(cfg RunConfig) error {
	table, err := BuildTable(cfg)
	if err != nil {
		return err
	}

	if cfg.JSONOut {
		b, err := output.ToJSON(table)
		if err != nil {
			return fmt.Errorf("JSON変換エラー: %w", err)
		}
		// 標準出力に書くことで `zaikosim ... -json | jq` のような整形ができる
		fmt.Printf("%s\n", b)
		return nil
	}

	if err := output.WriteExcel(table, cfg.OutPath); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "推移表を書き出しました: %s (材料行 %d行)\n", cfg.OutPath, len(table.Rows))
	return nil
}
