package parsers

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeJapaneseText は文字コード不明の日本語バイト列をUTF-8テキストへ正規化します。
// Shift-JIS → UTF-8 → EUC-JP の優先順で判定し、どれとも判別できない場合は
// Shift-JISとみなします。改行はLFに揃え、BOMは除去します。
// 変換失敗は取込全体の中断理由であり、行単位のエラーにはなりません。
func DecodeJapaneseText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("ファイルが空です")
	}

	if bytes.HasPrefix(data, utf8BOM) {
		body := data[len(utf8BOM):]
		if !utf8.Valid(body) {
			return "", fmt.Errorf("BOM付きUTF-8として不正なバイト列です")
		}
		return normalizeNewlines(string(body)), nil
	}

	// UTF-8のマルチバイト列は偶然Shift-JISとしてもデコードできることがある。
	// 正しいUTF-8で非ASCIIを含む入力はUTF-8を優先しないと、同一内容を
	// UTF-8とShift-JISで取り込んだときの結果が一致しなくなる。
	if utf8.Valid(data) && hasNonASCII(data) {
		return normalizeNewlines(string(data)), nil
	}

	for _, enc := range []encoding.Encoding{japanese.ShiftJIS, japanese.EUCJP} {
		decoded, ok := decodeStrict(enc, data)
		if ok {
			return normalizeNewlines(decoded), nil
		}
	}

	// ASCIIのみのファイルはそのままUTF-8として扱える
	if utf8.Valid(data) {
		return normalizeNewlines(string(data)), nil
	}

	// 判別不能時の既定はShift-JIS
	decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("文字コードの変換に失敗しました: %w", err)
	}
	return normalizeNewlines(string(decoded)), nil
}

// decodeStrict は指定エンコーディングでデコードし、置換文字が混入しない
// 場合のみ成功とみなします。
func decodeStrict(enc encoding.Encoding, data []byte) (string, bool) {
	decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", false
	}
	s := string(decoded)
	if strings.ContainsRune(s, utf8.RuneError) {
		return "", false
	}
	return s, true
}

func hasNonASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return true
		}
	}
	return false
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
