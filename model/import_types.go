package model

import "fmt"

// ImportBatch は1回の取込実行を表します。作成後は不変です。
type ImportBatch struct {
	BatchID     string `db:"batch_id" json:"batchId"`
	SourceLabel string `db:"source_label" json:"sourceLabel"`
	StartedAt   string `db:"started_at" json:"startedAt"`
}

// ImportLog は取込1回分の監査ログです。コミット確定後にのみ書き込まれ、
// 以後更新されません。
type ImportLog struct {
	ID             int64  `db:"id" json:"id"`
	BatchID        string `db:"batch_id" json:"batchId"`
	SourceLabel    string `db:"source_label" json:"sourceLabel"`
	TotalRows      int    `db:"total_rows" json:"totalRows"`
	SuccessRows    int    `db:"success_rows" json:"successRows"`
	ErrorRows      int    `db:"error_rows" json:"errorRows"`
	DuplicateRows  int    `db:"duplicate_rows" json:"duplicateRows"`
	NewCompanies   int    `db:"new_companies" json:"newCompanies"`
	NewDepartments int    `db:"new_departments" json:"newDepartments"`
	NewUsers       int    `db:"new_users" json:"newUsers"`
	NewSuppliers   int    `db:"new_suppliers" json:"newSuppliers"`
	NewProducts    int    `db:"new_products" json:"newProducts"`
	Status         string `db:"status" json:"status"`
	Notes          string `db:"notes" json:"notes"`
	CreatedAt      string `db:"created_at" json:"createdAt"`
}

// ImportLog の status 値。
const (
	ImportStatusCompleted = "completed"
	ImportStatusFailed    = "failed"
)

// RowError は行単位の取込エラーです。行ループの外には伝播しません。
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("%d行目: %s", e.Line, e.Message)
}

// ImportResult は取込1回分の実行結果です。呼び出し元にそのまま返されます。
type ImportResult struct {
	Success        bool       `json:"success"`
	BatchID        string     `json:"batchId"`
	TotalRows      int        `json:"totalRows"`
	ProcessedRows  int        `json:"processedRows"`
	SuccessRows    int        `json:"successRows"`
	ErrorRows      int        `json:"errorRows"`
	DuplicateRows  int        `json:"duplicateRows"`
	NewCompanies   int        `json:"newCompanies"`
	NewDepartments int        `json:"newDepartments"`
	NewUsers       int        `json:"newUsers"`
	NewSuppliers   int        `json:"newSuppliers"`
	NewProducts    int        `json:"newProducts"`
	ElapsedMs      int64      `json:"elapsedMs"`
	Errors         []RowError `json:"errors"`
}

// ImportOptions は取込時のオプションです。区切り文字とヘッダー行の有無を
// 指定します。通常の注文CSVはカンマ区切り・ヘッダーありです。
type ImportOptions struct {
	Delimiter rune
	HasHeader bool
}

// DefaultImportOptions は注文CSVの既定オプションを返します。
func DefaultImportOptions() ImportOptions {
	return ImportOptions{Delimiter: ',', HasHeader: true}
}
