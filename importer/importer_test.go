package importer

import (
	"fmt"
	"strings"
	"testing"

	"bentokan/database"
	"bentokan/loader"
	"bentokan/model"
	"bentokan/parsers"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// インメモリDBは接続ごとに別物になるため1接続に固定する
	db.SetMaxOpenConns(1)
	require.NoError(t, loader.InitDatabase(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func buildOrderCSV(rows ...map[string]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(parsers.OrderCSVColumns, ","))
	b.WriteString("\n")
	for _, values := range rows {
		fields := make([]string, len(parsers.OrderCSVColumns))
		for i, label := range parsers.OrderCSVColumns {
			fields[i] = values[label]
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteString("\n")
	}
	return b.String()
}

func tableCount(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func TestImportBytes_HappyPath(t *testing.T) {
	db := newTestDB(t)
	imp := New(db)

	row2 := baseValues()
	row2["社員コード"] = "E002"
	row2["社員名"] = "鈴木 花子"
	row2["連携コード"] = "X002"
	row3 := baseValues()
	row3["商品コード"] = "B002"
	row3["商品名"] = "から揚げ弁当"
	row3["連携コード"] = "X003"

	text := buildOrderCSV(baseValues(), row2, row3)
	result, err := imp.ImportBytes([]byte(text), "order_test.csv", model.DefaultImportOptions())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, 3, result.SuccessRows)
	assert.Equal(t, 0, result.ErrorRows)
	assert.Equal(t, 0, result.DuplicateRows)
	assert.Equal(t, 1, result.NewCompanies)
	assert.Equal(t, 1, result.NewDepartments)
	assert.Equal(t, 2, result.NewUsers)
	assert.Equal(t, 1, result.NewSuppliers)
	assert.Equal(t, 2, result.NewProducts)

	count, err := database.CountOrders(db)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	logs, err := database.GetImportLogs(db, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, result.BatchID, logs[0].BatchID)
	assert.Equal(t, model.ImportStatusCompleted, logs[0].Status)
	assert.Equal(t, 3, logs[0].SuccessRows)
}

// 同一ファイルの再取込は重複として黙殺され、注文もマスタも増えないこと。
func TestImportBytes_DuplicateSuppression(t *testing.T) {
	db := newTestDB(t)
	imp := New(db)

	text := buildOrderCSV(baseValues())
	_, err := imp.ImportBytes([]byte(text), "first.csv", model.DefaultImportOptions())
	require.NoError(t, err)

	result, err := imp.ImportBytes([]byte(text), "second.csv", model.DefaultImportOptions())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.TotalRows)
	assert.Equal(t, 0, result.SuccessRows)
	assert.Equal(t, 1, result.DuplicateRows)
	assert.Equal(t, 0, result.ErrorRows)
	assert.Equal(t, 0, result.NewCompanies+result.NewDepartments+result.NewUsers+result.NewSuppliers+result.NewProducts)

	count, err := database.CountOrders(db)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// 取込実行自体は2回とも記録される
	logCount, err := database.CountImportLogs(db)
	require.NoError(t, err)
	assert.Equal(t, 2, logCount)
}

func TestImportBytes_HeaderRejectionLeavesDBUntouched(t *testing.T) {
	db := newTestDB(t)
	imp := New(db)

	text := "列A,列B,列C\n1,2,3\n"
	_, err := imp.ImportBytes([]byte(text), "broken.csv", model.DefaultImportOptions())
	require.Error(t, err)

	assert.Equal(t, 0, tableCount(t, db, "orders"))
	assert.Equal(t, 0, tableCount(t, db, "import_logs"))
	assert.Equal(t, 0, tableCount(t, db, "import_batches"))
}

// 行エラーが50件を超えた時点で取込全体が中断され、それまでに成功した行も
// ロールバックされること。監査ログも残らない。
func TestImportBytes_ErrorCircuitBreaker(t *testing.T) {
	db := newTestDB(t)
	imp := New(db)

	rows := make([]map[string]string, 0, 56)
	for i := 0; i < 5; i++ {
		good := baseValues()
		good["連携コード"] = fmt.Sprintf("G%03d", i)
		rows = append(rows, good)
	}
	for i := 0; i < 51; i++ {
		bad := baseValues()
		bad["社員コード"] = ""
		bad["連携コード"] = fmt.Sprintf("N%03d", i)
		rows = append(rows, bad)
	}

	_, err := imp.ImportBytes([]byte(buildOrderCSV(rows...)), "errors.csv", model.DefaultImportOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "中断")
	assert.Contains(t, err.Error(), "社員コード")

	assert.Equal(t, 0, tableCount(t, db, "orders"))
	assert.Equal(t, 0, tableCount(t, db, "import_logs"))
	assert.Equal(t, 0, tableCount(t, db, "companies"))
}

// ちょうど50件のエラーでは中断せず、残りの行は処理されること。
func TestImportBytes_ErrorsAtLimitStillCommit(t *testing.T) {
	db := newTestDB(t)
	imp := New(db)

	rows := make([]map[string]string, 0, 51)
	for i := 0; i < 50; i++ {
		bad := baseValues()
		bad["納品日"] = "昨日"
		bad["連携コード"] = fmt.Sprintf("N%03d", i)
		rows = append(rows, bad)
	}
	good := baseValues()
	good["連携コード"] = "G000"
	rows = append(rows, good)

	result, err := imp.ImportBytes([]byte(buildOrderCSV(rows...)), "limit.csv", model.DefaultImportOptions())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 50, result.ErrorRows)
	assert.Equal(t, 1, result.SuccessRows)
	assert.Len(t, result.Errors, 50)

	count, err := database.CountOrders(db)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// 同じマスタ値が何百回現れても、マスタは1行しか作られないこと。
func TestImportBytes_DimensionReuse(t *testing.T) {
	db := newTestDB(t)
	imp := New(db)

	rows := make([]map[string]string, 0, 100)
	for i := 0; i < 100; i++ {
		values := baseValues()
		values["連携コード"] = fmt.Sprintf("X%03d", i)
		rows = append(rows, values)
	}

	result, err := imp.ImportBytes([]byte(buildOrderCSV(rows...)), "bulk.csv", model.DefaultImportOptions())
	require.NoError(t, err)

	assert.Equal(t, 100, result.SuccessRows)
	assert.Equal(t, 1, result.NewCompanies)
	assert.Equal(t, 1, result.NewDepartments)
	assert.Equal(t, 1, result.NewUsers)
	assert.Equal(t, 1, result.NewSuppliers)
	assert.Equal(t, 1, result.NewProducts)

	for _, table := range []string{"companies", "departments", "users", "suppliers", "products"} {
		assert.Equal(t, 1, tableCount(t, db, table), table)
	}
}

func TestImportBytes_RowErrorDoesNotStopProcessing(t *testing.T) {
	db := newTestDB(t)
	imp := New(db)

	bad := baseValues()
	bad["納品日"] = "不明"
	good := baseValues()
	good["連携コード"] = "X999"

	result, err := imp.ImportBytes([]byte(buildOrderCSV(bad, good)), "mixed.csv", model.DefaultImportOptions())
	require.NoError(t, err)

	assert.Equal(t, 1, result.ErrorRows)
	assert.Equal(t, 1, result.SuccessRows)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Line)
	assert.Contains(t, result.Errors[0].Message, "納品日")
}

// 名称必須マスタ (部署・業者) は名称が空なら作成されず、注文のFKはNULLに
// なること。注文自体は成功する。
func TestImportBytes_OptionalDimensionsSkipped(t *testing.T) {
	db := newTestDB(t)
	imp := New(db)

	values := baseValues()
	values["部署コード"] = "D99"
	values["部署名"] = ""
	values["業者コード"] = ""
	values["業者名"] = ""

	result, err := imp.ImportBytes([]byte(buildOrderCSV(values)), "partial.csv", model.DefaultImportOptions())
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessRows)
	assert.Equal(t, 0, result.NewDepartments)
	assert.Equal(t, 0, result.NewSuppliers)
	assert.Equal(t, 0, tableCount(t, db, "departments"))
	assert.Equal(t, 0, tableCount(t, db, "suppliers"))

	var departmentID, supplierID interface{}
	require.NoError(t, db.QueryRow("SELECT department_id, supplier_id FROM orders LIMIT 1").Scan(&departmentID, &supplierID))
	assert.Nil(t, departmentID)
	assert.Nil(t, supplierID)
}

// UTF-8で取り込んだファイルをShift-JISで再取込しても全行重複になること。
func TestImportBytes_EncodingIdempotence(t *testing.T) {
	db := newTestDB(t)
	imp := New(db)

	text := buildOrderCSV(baseValues())
	_, err := imp.ImportBytes([]byte(text), "utf8.csv", model.DefaultImportOptions())
	require.NoError(t, err)

	sjis, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(text))
	require.NoError(t, err)

	result, err := imp.ImportBytes(sjis, "sjis.csv", model.DefaultImportOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, result.DuplicateRows)
	assert.Equal(t, 0, result.SuccessRows)

	count, err := database.CountOrders(db)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
