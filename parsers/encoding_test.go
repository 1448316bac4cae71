package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

func toShiftJIS(t *testing.T, s string) []byte {
	t.Helper()
	b, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(s))
	require.NoError(t, err)
	return b
}

func toEUCJP(t *testing.T, s string) []byte {
	t.Helper()
	b, _, err := transform.Bytes(japanese.EUCJP.NewEncoder(), []byte(s))
	require.NoError(t, err)
	return b
}

func TestDecodeJapaneseText_ShiftJIS(t *testing.T) {
	src := "事業所名,納品日\n東京第一事業所,2026-08-01\n"
	decoded, err := DecodeJapaneseText(toShiftJIS(t, src))
	require.NoError(t, err)
	assert.Equal(t, src, decoded)
}

func TestDecodeJapaneseText_EUCJP(t *testing.T) {
	src := "商品コード,商品名\nB001,日替わり弁当\n"
	decoded, err := DecodeJapaneseText(toEUCJP(t, src))
	require.NoError(t, err)
	assert.Equal(t, src, decoded)
}

// 同一内容をUTF-8とShift-JISで与えたとき、正規化結果が一致すること。
func TestDecodeJapaneseText_Idempotence(t *testing.T) {
	src := "社員名,備考\n山田 太郎,カレー変更（株）テスト\n"

	fromUTF8, err := DecodeJapaneseText([]byte(src))
	require.NoError(t, err)

	fromSJIS, err := DecodeJapaneseText(toShiftJIS(t, src))
	require.NoError(t, err)

	assert.Equal(t, fromUTF8, fromSJIS)
}

func TestDecodeJapaneseText_BOMAndNewlines(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a,b\r\nc,d\re,f\n")...)
	decoded, err := DecodeJapaneseText(data)
	require.NoError(t, err)
	assert.Equal(t, "a,b\nc,d\ne,f\n", decoded)
}

func TestDecodeJapaneseText_ASCIIOnly(t *testing.T) {
	decoded, err := DecodeJapaneseText([]byte("a,b,c\n1,2,3\n"))
	require.NoError(t, err)
	assert.Equal(t, "a,b,c\n1,2,3\n", decoded)
}

func TestDecodeJapaneseText_Empty(t *testing.T) {
	_, err := DecodeJapaneseText(nil)
	assert.Error(t, err)
}
