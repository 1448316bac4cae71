package loader

import (
	"fmt"
	"strings"
)

func trimField(s string) string {
	return strings.TrimSpace(s)
}

// getSeedColIndex はマスタCSVのヘッダー名から列インデックスを取得します。
func getSeedColIndex(header []string, required []string) (map[string]int, error) {
	colIndex := make(map[string]int)
	for i, colName := range header {
		colIndex[strings.TrimSpace(colName)] = i
	}
	for _, req := range required {
		if _, ok := colIndex[req]; !ok {
			return nil, fmt.Errorf("必須ヘッダーが見つかりません: %s", req)
		}
	}
	return colIndex, nil
}
