package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// FindDimensionID はマスタテーブルから業務コードまたは名称で1件のIDを検索します。
// nameColumn が空のテーブル（社員マスタ）はコードのみで照合します。
// コードと名称の両方が空の場合は検索せず未発見を返します。
func FindDimensionID(tx *sqlx.Tx, table, codeColumn, nameColumn, code, name string) (int64, bool, error) {
	var clauses []string
	var args []interface{}

	if code != "" {
		clauses = append(clauses, codeColumn+" = ?")
		args = append(args, code)
	}
	if nameColumn != "" && name != "" {
		clauses = append(clauses, nameColumn+" = ?")
		args = append(args, name)
	}
	if len(clauses) == 0 {
		return 0, false, nil
	}

	query := fmt.Sprintf("SELECT id FROM %s WHERE %s LIMIT 1", table, strings.Join(clauses, " OR "))

	var id int64
	err := tx.Get(&id, query, args...)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("FindDimensionID (%s) failed: %w", table, err)
	}
	return id, true, nil
}
