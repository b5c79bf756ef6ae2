/*
apiパッケージはサーバーモードのHTTPエンドポイントを提供します。

各帳票をアップロードで受け取り、推移表をJSONで返すだけの
薄い層で、シミュレーションの意味論はすべてlib側にあります。
*/
package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"zaikosim/lib"
	"zaikosim/lib/output"
)

// NewRouter : ルーティングを組み立てる
func NewRouter() *gin.Engine {
	r := gin.Default()
	v1 := r.Group("/api/v1")
	v1.GET("/version", versionHandler)
	v1.POST("/projection", projectionHandler)
	return r
}

// Serve : 指定アドレスで待ち受ける
func Serve(addr string) error {
	return NewRouter().Run(addr)
}

// versionHandler : ビルド時に注入されたバージョン情報を返す
//
// 想定されるレスポンス:
// {"version":"v0.1.0","buildTime":"2024-06-01T00:00:00Z"}
func versionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":   lib.Version,
		"buildTime": lib.BuildTime,
	})
}

// projectionHandler : アップロードされた帳票からシミュレーションを
// 実行して推移表をJSONで返す
//
// multipart/form-data:
//   - requirements : 所要量一覧表 (必須)
//   - inventory    : 在庫一覧表 (必須)
//   - receipts     : 受入表 (任意)
//
// その他のフォーム値はCLIのオプションと同じ意味を持つ
// (start, days, shortage, name, exclude, stockonly, *-header)
func projectionHandler(c *gin.Context) {
	tmpDir, err := os.MkdirTemp("", "zaikosim")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "一時ディレクトリの作成に失敗しました"})
		return
	}
	defer os.RemoveAll(tmpDir)

	cfg, err := configFromForm(c, tmpDir)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	table, err := lib.BuildTable(cfg)
	if err != nil {
		// 行単位の不備はBuildTable内で吸収済み。ここに来るのは
		// ファイル自体や必須列の欠落といった呼び出し側の問題
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, output.NewTableJSON(table))
}

// configFromForm : フォーム値とアップロードファイルから実行設定を組み立てる
func configFromForm(c *gin.Context, tmpDir string) (lib.RunConfig, error) {
	cfg := lib.RunConfig{
		Start:     c.PostForm("start"),
		Name:      c.PostForm("name"),
		Exclude:   c.PostForm("exclude"),
		Shortage:  c.PostForm("shortage") == "true",
		StockOnly: c.PostForm("stockonly") == "true",
	}

	var err error
	if cfg.Days, err = intForm(c, "days", 0); err != nil {
		return cfg, err
	}
	if cfg.ReqHeaderRow, err = intForm(c, "req-header", 4); err != nil {
		return cfg, err
	}
	if cfg.InvHeaderRow, err = intForm(c, "inv-header", 5); err != nil {
		return cfg, err
	}
	if cfg.RcvHeaderRow, err = intForm(c, "rcv-header", 1); err != nil {
		return cfg, err
	}

	if cfg.ReqPath, err = saveUpload(c, "requirements", tmpDir, true); err != nil {
		return cfg, err
	}
	if cfg.InvPath, err = saveUpload(c, "inventory", tmpDir, true); err != nil {
		return cfg, err
	}
	if cfg.RcvPath, err = saveUpload(c, "receipts", tmpDir, false); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// saveUpload : アップロードファイルを一時ディレクトリに保存してパスを返す
// requiredでないファイルが無い場合は空文字を返す
func saveUpload(c *gin.Context, field, tmpDir string, required bool) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if !required {
			return "", nil
		}
		return "", fmt.Errorf("ファイル '%s' がアップロードされていません", field)
	}
	dst := filepath.Join(tmpDir, field+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", fmt.Errorf("ファイル '%s' の保存に失敗しました: %w", field, err)
	}
	return dst, nil
}

func intForm(c *gin.Context, field string, def int) (int, error) {
	s := c.PostForm(field)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("'%s' が数値ではありません: %s", field, s)
	}
	return v, nil
}
