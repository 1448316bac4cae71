package database

import (
	"fmt"

	"bentokan/model"

	"github.com/jmoiron/sqlx"
)

// InsertUserInTx は社員マスタへ最小限の行を追加し、新しいIDを返します。
func InsertUserInTx(tx *sqlx.Tx, u model.User) (int64, error) {
	const q = `
		INSERT INTO users (user_code, user_name, employee_type_code, employee_type_name, active)
		VALUES (?, ?, ?, ?, 1)
	`
	res, err := tx.Exec(q, u.UserCode, u.UserName, u.EmployeeTypeCode, u.EmployeeTypeName)
	if err != nil {
		return 0, fmt.Errorf("InsertUserInTx (Code: %s) failed: %w", u.UserCode, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("InsertUserInTx LastInsertId failed: %w", err)
	}
	return id, nil
}

// GetAllUsers は社員マスタの全行を返します。
func GetAllUsers(db *sqlx.DB) ([]model.User, error) {
	var users []model.User
	err := db.Select(&users, "SELECT * FROM users ORDER BY user_code, id")
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}
