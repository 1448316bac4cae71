package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"bentokan/model"
)

// OrderCSVColumnCount は配食センターの注文エクスポートの固定列数です。
const OrderCSVColumnCount = 23

// OrderCSVColumns は注文CSVの23列のラベルカタログです。
// 照合は並び順ではなくラベルで行います。
var OrderCSVColumns = []string{
	"法人コード", "法人名", "会社コード", "事業所名", "納品日",
	"部署コード", "部署名", "社員コード", "社員名", "社員区分コード",
	"社員区分名", "業者コード", "業者名", "カテゴリコード", "カテゴリ名",
	"商品コード", "商品名", "数量", "単価", "金額",
	"備考", "納品時間", "連携コード",
}

// 行処理に進むために必須のヘッダーラベル。
var mandatoryColumns = []string{
	"事業所名", "納品日", "社員コード", "社員名", "商品コード", "数量",
}

// RawRow はトークン化された1データ行です。Lineは元ファイル上の行位置です。
type RawRow struct {
	Line   int
	Fields []string
}

// OrderCSVDocument はヘッダー検証済みの注文CSV全体を表します。
type OrderCSVDocument struct {
	// FieldIndex はラベル→列インデックスの対応です。
	FieldIndex map[string]int
	Rows       []RawRow
	// DroppedRows は列数不足で捨てた行数です。行エラーには含めません。
	DroppedRows int
}

// ParseOrderCSV はUTF-8正規化済みテキストをトークン化し、ヘッダーを検証します。
// ヘッダー不正（列数違い・未知ラベル・必須ラベル欠落）は全体エラーで、
// データ行には一切進みません。23トークンに満たないデータ行は黙ってスキップします。
func ParseOrderCSV(text string, opts model.ImportOptions) (*OrderCSVDocument, error) {
	delimiter := opts.Delimiter
	if delimiter == 0 {
		delimiter = ','
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	doc := &OrderCSVDocument{FieldIndex: make(map[string]int)}
	line := 0

	if opts.HasHeader {
		header, err := reader.Read()
		if err == io.EOF {
			return nil, fmt.Errorf("CSVファイルが空です")
		}
		if err != nil {
			return nil, fmt.Errorf("CSVヘッダーの読み取りに失敗: %w", err)
		}
		line++

		if len(header) != OrderCSVColumnCount {
			return nil, fmt.Errorf("ヘッダーの列数が不正です (期待: %d列, 実際: %d列)", OrderCSVColumnCount, len(header))
		}

		catalog := make(map[string]bool, len(OrderCSVColumns))
		for _, label := range OrderCSVColumns {
			catalog[label] = true
		}
		for i, cell := range header {
			label := strings.TrimSpace(cell)
			if !catalog[label] {
				return nil, fmt.Errorf("未知のヘッダーラベルです: %q (%d列目)", label, i+1)
			}
			doc.FieldIndex[label] = i
		}

		if _, err := getColIndex(header, mandatoryColumns); err != nil {
			return nil, err
		}
	} else {
		// ヘッダーなしの場合はカタログ順で並んでいるものとみなす
		for i, label := range OrderCSVColumns {
			doc.FieldIndex[label] = i
		}
	}

	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			log.Printf("WARN: 注文CSV %d行目の読み取りエラー (スキップ): %v", line, err)
			continue
		}
		if len(rec) < OrderCSVColumnCount {
			// 行エラーには数えない。列不足はエクスポート側の欠損行とみなす。
			log.Printf("TRACE: 注文CSV %d行目は列数不足のためスキップ (%d列)", line, len(rec))
			doc.DroppedRows++
			continue
		}
		if len(rec) > OrderCSVColumnCount {
			rec = rec[:OrderCSVColumnCount]
		}
		doc.Rows = append(doc.Rows, RawRow{Line: line, Fields: rec})
	}

	return doc, nil
}

// Get は行からラベルに対応するフィールドを取り出し、前後の半角空白を除去して
// 返します。全角空白は業務検証側のクリーニングで扱います。
func (d *OrderCSVDocument) Get(row RawRow, label string) string {
	idx, ok := d.FieldIndex[label]
	if !ok || idx >= len(row.Fields) {
		return ""
	}
	return strings.Trim(row.Fields[idx], " \t\r\n")
}
