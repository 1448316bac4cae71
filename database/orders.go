package database

import (
	"database/sql"
	"fmt"
	"strings"

	"bentokan/model"

	"github.com/jmoiron/sqlx"
)

// OrderExistsInTx は自然キー (社員コード・納品日・商品コード・連携コード) で
// 既存注文の有無を確認します。取込済み注文の再取込はここで検出されます。
func OrderExistsInTx(tx *sqlx.Tx, userCode, deliveryDate, productCode, cooperationCode string) (bool, error) {
	var exists int
	const q = `
		SELECT 1 FROM orders
		WHERE user_code = ? AND delivery_date = ? AND product_code = ? AND cooperation_code = ?
		LIMIT 1
	`
	err := tx.QueryRow(q, userCode, deliveryDate, productCode, cooperationCode).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("OrderExistsInTx failed: %w", err)
	}
	return true, nil
}

// InsertOrderInTx は注文ファクトを1行追加します。
func InsertOrderInTx(tx *sqlx.Tx, o model.Order) (int64, error) {
	const q = `
		INSERT INTO orders (
			batch_id, company_id, department_id, user_id, supplier_id, product_id,
			delivery_date, delivery_time, office_name, user_code, user_name,
			product_code, product_name, quantity, unit_price, total_amount,
			notes, cooperation_code, created_at
		) VALUES (
			:batch_id, :company_id, :department_id, :user_id, :supplier_id, :product_id,
			:delivery_date, :delivery_time, :office_name, :user_code, :user_name,
			:product_code, :product_name, :quantity, :unit_price, :total_amount,
			:notes, :cooperation_code, datetime('now', 'localtime')
		)
	`
	res, err := tx.NamedExec(q, o)
	if err != nil {
		return 0, fmt.Errorf("InsertOrderInTx (User: %s, Date: %s, Product: %s) failed: %w",
			o.UserCode, o.DeliveryDate, o.ProductCode, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("InsertOrderInTx LastInsertId failed: %w", err)
	}
	return id, nil
}

// CountOrders は注文ファクトの総行数を返します。
func CountOrders(db *sqlx.DB) (int, error) {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM orders"); err != nil {
		return 0, fmt.Errorf("CountOrders failed: %w", err)
	}
	return count, nil
}

// SearchOrders は条件に合致する注文を新しい順に返します。
func SearchOrders(db *sqlx.DB, params model.OrderSearchParams) ([]model.Order, error) {
	var clauses []string
	var args []interface{}

	if params.DeliveryDateFrom != "" {
		clauses = append(clauses, "delivery_date >= ?")
		args = append(args, params.DeliveryDateFrom)
	}
	if params.DeliveryDateTo != "" {
		clauses = append(clauses, "delivery_date <= ?")
		args = append(args, params.DeliveryDateTo)
	}
	if params.UserCode != "" {
		clauses = append(clauses, "user_code = ?")
		args = append(args, params.UserCode)
	}
	if params.OfficeName != "" {
		clauses = append(clauses, "office_name LIKE ?")
		args = append(args, "%"+params.OfficeName+"%")
	}
	if params.BatchID != "" {
		clauses = append(clauses, "batch_id = ?")
		args = append(args, params.BatchID)
	}

	query := "SELECT * FROM orders"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY delivery_date DESC, id DESC"

	limit := params.Limit
	if limit <= 0 || limit > 1000 {
		limit = 500
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	var orders []model.Order
	if err := db.Select(&orders, query, args...); err != nil {
		return nil, fmt.Errorf("SearchOrders failed: %w", err)
	}
	return orders, nil
}
