package lib

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath" // ヘルプメッセージ用にインポート
	"strings"
)

// RunConfig : コマンドライン引数から組み立てる実行設定
type RunConfig struct {
	ReqPath string // 所要量一覧表のパス(必須)
	InvPath string // 在庫一覧表のパス(必須)
	RcvPath string // 受入表のパス(任意。空なら受入行なし)

	// 各帳票のヘッダー行番号(1始まり)
	ReqHeaderRow int
	InvHeaderRow int
	RcvHeaderRow int

	OutPath string // 出力するExcelファイルのパス
	JSONOut bool   // trueならExcelの代わりにJSONを標準出力へ

	Start     string // カレンダー開始日 (YYYY/MM/DD。空なら実行日)
	Days      int    // 先頭から何日分を出力するか(0なら全期間)
	Shortage  bool   // trueなら不足のある材料だけ出力
	Name      string // 品名の部分一致フィルタ
	Exclude   string // 除外する品番(カンマ区切り)
	StockOnly bool   // trueなら所要のない在庫だけの材料も出力

	Serve bool // trueならHTTPサーバーモード
	Port  int  // サーバーモードの待ち受けポート
}

// ExcludeCodes : カンマ区切りの除外品番をスライスで返す
func (cfg *RunConfig) ExcludeCodes() []string {
	if cfg.Exclude == "" {
		return nil
	}
	return strings.Split(cfg.Exclude, ",")
}

// ParseArguments はコマンドライン引数を解析し、実行設定を返します。
// -h / --help が指定された場合はヘルプメッセージを表示して終了します。
func ParseArguments(args []string) (cfg RunConfig, err error) {
	fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)

	fs.StringVar(&cfg.ReqPath, "req", "", "所要量一覧表のExcelファイルパス(必須)")
	fs.StringVar(&cfg.InvPath, "inv", "", "在庫一覧表のExcelファイルパス(必須)")
	fs.StringVar(&cfg.RcvPath, "rcv", "", "受入表のExcelファイルパス(任意)")

	fs.IntVar(&cfg.ReqHeaderRow, "req-header", 4, "所要量一覧表のヘッダー行番号")
	fs.IntVar(&cfg.InvHeaderRow, "inv-header", 5, "在庫一覧表のヘッダー行番号")
	fs.IntVar(&cfg.RcvHeaderRow, "rcv-header", 1, "受入表のヘッダー行番号")

	fs.StringVar(&cfg.OutPath, "o", "zaikosim.xlsx", "出力するExcelファイルパス")
	fs.BoolVar(&cfg.JSONOut, "json", false, "Excelの代わりにJSONを標準出力へ書く")

	fs.StringVar(&cfg.Start, "start", "", "開始日 YYYY/MM/DD (省略時は実行日)")
	fs.IntVar(&cfg.Days, "days", 0, "先頭から出力する日数 (0は全期間)")
	fs.BoolVar(&cfg.Shortage, "shortage", false, "不足のある材料だけ出力する")
	fs.StringVar(&cfg.Name, "name", "", "品名の部分一致で絞り込む")
	fs.StringVar(&cfg.Exclude, "exclude", "", "除外する品番 (カンマ区切り)")
	fs.BoolVar(&cfg.StockOnly, "stockonly", false, "所要のない在庫だけの材料も出力する")

	fs.BoolVar(&cfg.Serve, "serve", false, "HTTPサーバーとして起動する")
	fs.IntVar(&cfg.Port, "port", 9000, "サーバーモードの待ち受けポート")

	var showVersion bool
	fs.BoolVar(&showVersion, "v", false, "バージョンを表示して終了します")

	// 使用法メッセージのカスタマイズ
	fs.Usage = func() {
		prog := filepath.Base(os.Args[0])
		fmt.Fprintf(fs.Output(), "使用法: %s -req <所要量一覧.xlsx> -inv <在庫一覧.xlsx> [オプション]\n", prog)
		fmt.Fprintf(fs.Output(), "材料ごとの日別の所要・受入・在庫残をシミュレーションします。\n\n")
		fmt.Fprintf(fs.Output(), "オプション:\n")
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "\n例:\n")
		fmt.Fprintf(fs.Output(), "  %s -req 所要量一覧.xlsx -inv 在庫一覧.xlsx -o 推移.xlsx\n", prog)
		fmt.Fprintf(fs.Output(), "  %s -req 所要量一覧.xlsx -inv 在庫一覧.xlsx -rcv 受入表.xlsx -shortage\n", prog)
		fmt.Fprintf(fs.Output(), "  %s -serve -port 9000\n", prog)
	}

	if err = fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0) // ヘルプ表示は正常終了
		}
		return
	}

	if showVersion {
		fmt.Printf("zaikosim %s (build: %s)\n", Version, BuildTime)
		os.Exit(0) // バージョン表示は正常終了
	}

	// サーバーモードはファイル指定不要(アップロードで受け取る)
	if cfg.Serve {
		return
	}

	if cfg.ReqPath == "" || cfg.InvPath == "" {
		fs.Usage()
		return cfg, errors.New("所要量一覧表(-req)と在庫一覧表(-inv)を指定してください")
	}
	return
}
