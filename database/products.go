package database

import (
	"database/sql"
	"fmt"

	"bentokan/model"

	"github.com/jmoiron/sqlx"
)

// InsertProductInTx は商品マスタへ最小限の行を追加し、新しいIDを返します。
func InsertProductInTx(tx *sqlx.Tx, p model.Product) (int64, error) {
	const q = `
		INSERT INTO products (product_code, product_name, category_code, category_name, active)
		VALUES (?, ?, ?, ?, 1)
	`
	res, err := tx.Exec(q, p.ProductCode, p.ProductName, p.CategoryCode, p.CategoryName)
	if err != nil {
		return 0, fmt.Errorf("InsertProductInTx (Code: %s, Name: %s) failed: %w", p.ProductCode, p.ProductName, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("InsertProductInTx LastInsertId failed: %w", err)
	}
	return id, nil
}

// UpsertProductSeedInTx はマスタCSVロード用です。商品コードで照合し、
// 既存行は商品名とカテゴリを更新、なければ追加します。
func UpsertProductSeedInTx(tx *sqlx.Tx, p model.Product) error {
	var id int64
	err := tx.Get(&id, "SELECT id FROM products WHERE product_code = ? LIMIT 1", p.ProductCode)
	if err == sql.ErrNoRows {
		_, err = InsertProductInTx(tx, p)
		return err
	}
	if err != nil {
		return fmt.Errorf("UpsertProductSeedInTx query failed: %w", err)
	}
	_, err = tx.Exec(
		"UPDATE products SET product_name = ?, category_code = ?, category_name = ? WHERE id = ?",
		p.ProductName, p.CategoryCode, p.CategoryName, id,
	)
	if err != nil {
		return fmt.Errorf("UpsertProductSeedInTx update failed: %w", err)
	}
	return nil
}

// GetAllProducts は商品マスタの全行を返します。
func GetAllProducts(db *sqlx.DB) ([]model.Product, error) {
	var products []model.Product
	err := db.Select(&products, "SELECT * FROM products ORDER BY product_code, id")
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}
