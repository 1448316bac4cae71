package parsers

import (
	"strings"
	"testing"

	"bentokan/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headerLine() string {
	return strings.Join(OrderCSVColumns, ",")
}

func dataLine(values map[string]string) string {
	fields := make([]string, len(OrderCSVColumns))
	for i, label := range OrderCSVColumns {
		fields[i] = values[label]
	}
	return strings.Join(fields, ",")
}

func TestParseOrderCSV_ValidFile(t *testing.T) {
	text := headerLine() + "\n" +
		dataLine(map[string]string{
			"事業所名": "東京第一事業所", "納品日": "2026-08-01",
			"社員コード": "E001", "社員名": "山田 太郎",
			"商品コード": "B001", "商品名": "日替わり弁当", "数量": "1",
		}) + "\n"

	doc, err := ParseOrderCSV(text, model.DefaultImportOptions())
	require.NoError(t, err)
	require.Len(t, doc.Rows, 1)
	assert.Equal(t, "東京第一事業所", doc.Get(doc.Rows[0], "事業所名"))
	assert.Equal(t, "E001", doc.Get(doc.Rows[0], "社員コード"))
}

func TestParseOrderCSV_HeaderColumnCount(t *testing.T) {
	// 22列
	short := strings.Join(OrderCSVColumns[:22], ",") + "\n"
	_, err := ParseOrderCSV(short, model.DefaultImportOptions())
	assert.Error(t, err)

	// 24列
	long := headerLine() + ",余分な列\n"
	_, err = ParseOrderCSV(long, model.DefaultImportOptions())
	assert.Error(t, err)
}

func TestParseOrderCSV_UnknownHeaderLabel(t *testing.T) {
	labels := make([]string, len(OrderCSVColumns))
	copy(labels, OrderCSVColumns)
	labels[0] = "謎の列"
	_, err := ParseOrderCSV(strings.Join(labels, ",")+"\n", model.DefaultImportOptions())
	assert.Error(t, err)
}

func TestParseOrderCSV_MissingMandatoryLabel(t *testing.T) {
	// 「数量」を「備考」の重複で置き換える。全ラベルはカタログ内だが
	// 必須ラベルが欠ける。
	labels := make([]string, len(OrderCSVColumns))
	copy(labels, OrderCSVColumns)
	for i, l := range labels {
		if l == "数量" {
			labels[i] = "備考"
		}
	}
	_, err := ParseOrderCSV(strings.Join(labels, ",")+"\n", model.DefaultImportOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "数量")
}

func TestParseOrderCSV_ShortRowDropped(t *testing.T) {
	text := headerLine() + "\n" +
		"a,b,c\n" +
		dataLine(map[string]string{"事業所名": "大阪事業所", "納品日": "2026-08-01", "社員コード": "E002", "社員名": "鈴木", "商品コード": "B002", "数量": "1"}) + "\n"

	doc, err := ParseOrderCSV(text, model.DefaultImportOptions())
	require.NoError(t, err)
	assert.Len(t, doc.Rows, 1)
	assert.Equal(t, 1, doc.DroppedRows)
}

func TestParseOrderCSV_BlankLinesIgnored(t *testing.T) {
	text := headerLine() + "\n\n" +
		dataLine(map[string]string{"事業所名": "大阪事業所", "納品日": "2026-08-01", "社員コード": "E002", "社員名": "鈴木", "商品コード": "B002", "数量": "1"}) + "\n\n"

	doc, err := ParseOrderCSV(text, model.DefaultImportOptions())
	require.NoError(t, err)
	assert.Len(t, doc.Rows, 1)
	assert.Equal(t, 0, doc.DroppedRows)
}

func TestParseOrderCSV_QuotedComma(t *testing.T) {
	values := map[string]string{
		"事業所名": "東京第一事業所", "納品日": "2026-08-01",
		"社員コード": "E001", "社員名": "山田 太郎",
		"商品コード": "B001", "数量": "1",
		"備考": `"ご飯少なめ,おかず多め"`,
	}
	doc, err := ParseOrderCSV(headerLine()+"\n"+dataLine(values)+"\n", model.DefaultImportOptions())
	require.NoError(t, err)
	require.Len(t, doc.Rows, 1)
	assert.Equal(t, "ご飯少なめ,おかず多め", doc.Get(doc.Rows[0], "備考"))
}

func TestParseOrderCSV_NoHeaderUsesCatalogOrder(t *testing.T) {
	opts := model.ImportOptions{Delimiter: ',', HasHeader: false}
	row := dataLine(map[string]string{"事業所名": "名古屋事業所", "納品日": "2026-08-02", "社員コード": "E003", "社員名": "佐藤", "商品コード": "B003", "数量": "2"})

	doc, err := ParseOrderCSV(row+"\n", opts)
	require.NoError(t, err)
	require.Len(t, doc.Rows, 1)
	assert.Equal(t, "名古屋事業所", doc.Get(doc.Rows[0], "事業所名"))
	assert.Equal(t, "2", doc.Get(doc.Rows[0], "数量"))
}

func TestParseOrderCSV_EmptyFile(t *testing.T) {
	_, err := ParseOrderCSV("", model.DefaultImportOptions())
	assert.Error(t, err)
}
