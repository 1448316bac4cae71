package database

import (
	"database/sql"
	"fmt"

	"bentokan/model"

	"github.com/jmoiron/sqlx"
)

// InsertCompanyInTx は事業所マスタへ最小限の行を追加し、新しいIDを返します。
func InsertCompanyInTx(tx *sqlx.Tx, c model.Company) (int64, error) {
	const q = `
		INSERT INTO companies (corporation_code, corporation_name, company_code, company_name, active)
		VALUES (?, ?, ?, ?, 1)
	`
	res, err := tx.Exec(q, c.CorporationCode, c.CorporationName, c.CompanyCode, c.CompanyName)
	if err != nil {
		return 0, fmt.Errorf("InsertCompanyInTx (Code: %s, Name: %s) failed: %w", c.CompanyCode, c.CompanyName, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("InsertCompanyInTx LastInsertId failed: %w", err)
	}
	return id, nil
}

// UpsertCompanySeedInTx はマスタCSVロード用です。会社コードで照合し、
// 既存行は事業所名を更新、なければ追加します。
func UpsertCompanySeedInTx(tx *sqlx.Tx, c model.Company) error {
	var id int64
	err := tx.Get(&id, "SELECT id FROM companies WHERE company_code = ? LIMIT 1", c.CompanyCode)
	if err == sql.ErrNoRows {
		_, err = InsertCompanyInTx(tx, c)
		return err
	}
	if err != nil {
		return fmt.Errorf("UpsertCompanySeedInTx query failed: %w", err)
	}
	_, err = tx.Exec(
		"UPDATE companies SET corporation_code = ?, corporation_name = ?, company_name = ? WHERE id = ?",
		c.CorporationCode, c.CorporationName, c.CompanyName, id,
	)
	if err != nil {
		return fmt.Errorf("UpsertCompanySeedInTx update failed: %w", err)
	}
	return nil
}

// GetAllCompanies は事業所マスタの全行を返します。
func GetAllCompanies(db *sqlx.DB) ([]model.Company, error) {
	var companies []model.Company
	err := db.Select(&companies, "SELECT * FROM companies ORDER BY company_code, id")
	if err != nil {
		return nil, fmt.Errorf("failed to get all companies: %w", err)
	}
	return companies, nil
}
