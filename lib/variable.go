/*
ビルド時に注入する変数 Makefile参照
*/

package lib

var (
	// このCLIのバージョン (ビルド時に注入)
	Version = "dev"
	// このCLIをビルドした日時 (ビルド時に注入)
	BuildTime string
)
