package main

import (
	"fmt"
	"log"
	"os"

	"zaikosim/lib"
	"zaikosim/lib/api"
)

func main() {
	// コマンドライン引数を解析
	cfg, err := lib.ParseArguments(os.Args[1:])
	if err != nil {
		log.Fatalln(err)
	}

	// サーバーモード: 帳票はアップロードで受け取る
	if cfg.Serve {
		addr := fmt.Sprintf(":%d", cfg.Port)
		fmt.Fprintf(os.Stderr, "zaikosim %s サーバーモードで起動します %s\n", lib.Version, addr)
		if err := api.Serve(addr); err != nil {
			log.Fatalln(err)
		}
		return
	}

	// CLIモード: 帳票を読み込んで推移表を書き出す
	if err := lib.Run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "zaikosim %s\n", err)
		os.Exit(1)
	}
}
