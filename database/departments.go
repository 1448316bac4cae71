package database

import (
	"fmt"

	"bentokan/model"

	"github.com/jmoiron/sqlx"
)

// InsertDepartmentInTx は部署マスタへ最小限の行を追加し、新しいIDを返します。
func InsertDepartmentInTx(tx *sqlx.Tx, d model.Department) (int64, error) {
	const q = `
		INSERT INTO departments (department_code, department_name, active)
		VALUES (?, ?, 1)
	`
	res, err := tx.Exec(q, d.DepartmentCode, d.DepartmentName)
	if err != nil {
		return 0, fmt.Errorf("InsertDepartmentInTx (Code: %s, Name: %s) failed: %w", d.DepartmentCode, d.DepartmentName, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("InsertDepartmentInTx LastInsertId failed: %w", err)
	}
	return id, nil
}

// GetAllDepartments は部署マスタの全行を返します。
func GetAllDepartments(db *sqlx.DB) ([]model.Department, error) {
	var departments []model.Department
	err := db.Select(&departments, "SELECT * FROM departments ORDER BY department_code, id")
	if err != nil {
		return nil, fmt.Errorf("failed to get all departments: %w", err)
	}
	return departments, nil
}
