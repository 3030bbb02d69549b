// Package web はページのテンプレートと背景画像のスタイルを提供します。
package web

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// IndexTemplate はページ本体のテンプレート名です。
const IndexTemplate = "index.tmpl"

// Templates は埋め込みテンプレートを解析して返します。
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.tmpl")
}

// LoadBackground は画像ファイルを読み込み、data URL を埋め込んだスタイルシートを返します。
// ファイルが無い場合は起動時のエラーになります。
func LoadBackground(path string) (template.CSS, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read background image: %w", err)
	}
	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", fmt.Errorf("background image %s has unsupported type %s", path, mime.String())
	}
	url := "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(data)
	return template.CSS(fmt.Sprintf(`.app {
  background-image: url("%s");
  background-size: contain;
  background-repeat: no-repeat;
  background-position: center;
}`, url)), nil
}
