package database

import (
	"fmt"

	"bentokan/model"

	"github.com/jmoiron/sqlx"
)

// InsertImportBatchInTx は取込バッチの記録を追加します。作成後は不変です。
func InsertImportBatchInTx(tx *sqlx.Tx, b model.ImportBatch) error {
	const q = `
		INSERT INTO import_batches (batch_id, source_label, started_at)
		VALUES (?, ?, datetime('now', 'localtime'))
	`
	_, err := tx.Exec(q, b.BatchID, b.SourceLabel)
	if err != nil {
		return fmt.Errorf("InsertImportBatchInTx (Batch: %s) failed: %w", b.BatchID, err)
	}
	return nil
}

// InsertImportLogInTx は取込監査ログを1行追加します。
// コミット/中断の判断が確定した後にのみ呼び出されます。
func InsertImportLogInTx(tx *sqlx.Tx, l model.ImportLog) error {
	const q = `
		INSERT INTO import_logs (
			batch_id, source_label, total_rows, success_rows, error_rows, duplicate_rows,
			new_companies, new_departments, new_users, new_suppliers, new_products,
			status, notes, created_at
		) VALUES (
			:batch_id, :source_label, :total_rows, :success_rows, :error_rows, :duplicate_rows,
			:new_companies, :new_departments, :new_users, :new_suppliers, :new_products,
			:status, :notes, datetime('now', 'localtime')
		)
	`
	_, err := tx.NamedExec(q, l)
	if err != nil {
		return fmt.Errorf("InsertImportLogInTx (Batch: %s) failed: %w", l.BatchID, err)
	}
	return nil
}

// GetImportLogs は取込監査ログを新しい順に返します。
func GetImportLogs(db *sqlx.DB, limit int) ([]model.ImportLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var logs []model.ImportLog
	query := fmt.Sprintf("SELECT * FROM import_logs ORDER BY id DESC LIMIT %d", limit)
	if err := db.Select(&logs, query); err != nil {
		return nil, fmt.Errorf("GetImportLogs failed: %w", err)
	}
	return logs, nil
}

// CountImportLogs は監査ログの総行数を返します。
func CountImportLogs(db *sqlx.DB) (int, error) {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM import_logs"); err != nil {
		return 0, fmt.Errorf("CountImportLogs failed: %w", err)
	}
	return count, nil
}
