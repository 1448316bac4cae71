package database

import (
	"fmt"

	"bentokan/model"

	"github.com/jmoiron/sqlx"
)

// InsertSupplierInTx は給食業者マスタへ最小限の行を追加し、新しいIDを返します。
func InsertSupplierInTx(tx *sqlx.Tx, s model.Supplier) (int64, error) {
	const q = `
		INSERT INTO suppliers (supplier_code, supplier_name, active)
		VALUES (?, ?, 1)
	`
	res, err := tx.Exec(q, s.SupplierCode, s.SupplierName)
	if err != nil {
		return 0, fmt.Errorf("InsertSupplierInTx (Code: %s, Name: %s) failed: %w", s.SupplierCode, s.SupplierName, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("InsertSupplierInTx LastInsertId failed: %w", err)
	}
	return id, nil
}

// GetAllSuppliers は給食業者マスタの全行を返します。
func GetAllSuppliers(db *sqlx.DB) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := db.Select(&suppliers, "SELECT * FROM suppliers ORDER BY supplier_code, id")
	if err != nil {
		return nil, fmt.Errorf("failed to get all suppliers: %w", err)
	}
	return suppliers, nil
}
