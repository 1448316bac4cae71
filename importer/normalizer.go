package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"bentokan/model"
	"bentokan/parsers"

	"github.com/shopspring/decimal"
)

// 納品日として受け付ける形式。
var dateLayouts = []string{"2006-01-02", "2006/01/02", "2006/1/2", "20060102"}

// 納品時間として受け付ける形式。
var timeLayouts = []string{"15:04:05", "15:04"}

// 法人名に含まれることを期待する法人格の表記。
var legalEntityPattern = regexp.MustCompile(`株式会社|有限会社|合同会社|\(株\)|（株）|\(有\)|（有）`)

// 再計算を発動させる金額差の許容値。
var amountTolerance = decimal.New(1, -2)

// normalizeRow はトークン化済みの1行を型付きレコードへ変換します。
// 失敗は行単位のエラーとして返し、取込全体は止めません。
// パース後の金額が 数量×単価 と食い違う場合は再計算値で上書きします。
func normalizeRow(doc *parsers.OrderCSVDocument, raw parsers.RawRow) (*model.NormalizedRow, error) {
	get := func(label string) string { return doc.Get(raw, label) }

	row := &model.NormalizedRow{
		Line:             raw.Line,
		CorporationCode:  get("法人コード"),
		CorporationName:  get("法人名"),
		CompanyCode:      get("会社コード"),
		OfficeName:       get("事業所名"),
		DepartmentCode:   get("部署コード"),
		DepartmentName:   get("部署名"),
		UserCode:         get("社員コード"),
		UserName:         get("社員名"),
		EmployeeTypeCode: get("社員区分コード"),
		EmployeeTypeName: get("社員区分名"),
		SupplierCode:     get("業者コード"),
		SupplierName:     get("業者名"),
		CategoryCode:     get("カテゴリコード"),
		CategoryName:     get("カテゴリ名"),
		ProductCode:      get("商品コード"),
		ProductName:      get("商品名"),
		Notes:            get("備考"),
		CooperationCode:  get("連携コード"),
	}

	// 必須項目の存在チェック
	for _, req := range []struct{ label, value string }{
		{"納品日", get("納品日")},
		{"社員コード", row.UserCode},
		{"事業所名", row.OfficeName},
		{"商品コード", row.ProductCode},
	} {
		if req.value == "" {
			return nil, fmt.Errorf("必須項目が空です: %s", req.label)
		}
	}

	deliveryDate, err := parseDeliveryDate(get("納品日"))
	if err != nil {
		return nil, err
	}
	row.DeliveryDate = deliveryDate

	row.Quantity = parseQuantity(get("数量"))
	row.UnitPrice = parseAmount(get("単価"))
	row.TotalAmount = parseAmount(get("金額"))

	// 数量×単価と取込元の金額が1円未満を超えて食い違う場合、上流の金額は
	// 信用せず再計算値を採用する
	expected := row.UnitPrice.Mul(decimal.NewFromInt(int64(row.Quantity)))
	if expected.Sub(row.TotalAmount).Abs().GreaterThan(amountTolerance) {
		row.TotalAmount = expected
	}

	row.DeliveryTime = normalizeDeliveryTime(get("納品時間"))

	return row, nil
}

// validateDomain は正規化後の緩い業務チェックです。
// クリーニング後に事業所名・商品コードが空になる値は行エラーとします。
// 法人名の法人格表記は警告のみで行は通します。
func validateDomain(row *model.NormalizedRow, warn func(format string, args ...interface{})) error {
	if cleanName(row.OfficeName) == "" {
		return fmt.Errorf("事業所名がクリーニング後に空になりました")
	}
	if cleanName(row.ProductCode) == "" {
		return fmt.Errorf("商品コードがクリーニング後に空になりました")
	}
	if row.CorporationName != "" && !legalEntityPattern.MatchString(row.CorporationName) {
		warn("%d行目: 法人名に法人格の表記がありません: %s", row.Line, row.CorporationName)
	}
	return nil
}

// cleanName は半角・全角の空白を両端から除去します。
func cleanName(s string) string {
	return strings.Trim(s, " \t　")
}

func parseDeliveryDate(s string) (string, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("納品日の形式が不正です: %s", s)
}

// parseQuantity は数量を1以上の整数に切り上げます。
func parseQuantity(s string) int {
	s = strings.ReplaceAll(s, ",", "")
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// parseAmount は桁区切りと通貨記号を除去して10進数として解釈します。
// 解釈できない値は0扱いです（金額は後段で再計算される）。
func parseAmount(s string) decimal.Decimal {
	s = strings.NewReplacer(",", "", "¥", "", "￥", "", " ", "").Replace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// normalizeDeliveryTime は納品時間を HH:MM:00 に揃えます。
// 空欄はそのまま空で保持し、既定値は入れません。
func normalizeDeliveryTime(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04") + ":00"
		}
	}
	return ""
}
