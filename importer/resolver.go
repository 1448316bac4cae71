package importer

import (
	"database/sql"
	"fmt"

	"bentokan/database"
	"bentokan/model"

	"github.com/jmoiron/sqlx"
)

// dimension は1種類のマスタに対するfind-or-createの記述子です。
// 5つのマスタはこの記述子の値だけが異なる同一アルゴリズムで解決されます。
type dimension struct {
	label      string // 新規作成カウンタのキー
	table      string
	codeColumn string
	// nameColumn が空のマスタ（社員）はコードのみで照合します。
	nameColumn string
	// nameRequired のマスタ（部署・業者）はCSVに名称が無ければ解決自体を
	// スキップし、IDなしの注文になります。
	nameRequired bool
}

var (
	dimCompany    = dimension{label: "company", table: "companies", codeColumn: "company_code", nameColumn: "company_name"}
	dimDepartment = dimension{label: "department", table: "departments", codeColumn: "department_code", nameColumn: "department_name", nameRequired: true}
	dimUser       = dimension{label: "user", table: "users", codeColumn: "user_code"}
	dimSupplier   = dimension{label: "supplier", table: "suppliers", codeColumn: "supplier_code", nameColumn: "supplier_name", nameRequired: true}
	dimProduct    = dimension{label: "product", table: "products", codeColumn: "product_code", nameColumn: "product_name"}
)

// dimensionIDs は1行の注文が参照するマスタIDの束です。
// CSV側に情報がないマスタはNULLのままです。
type dimensionIDs struct {
	Company    sql.NullInt64
	Department sql.NullInt64
	User       sql.NullInt64
	Supplier   sql.NullInt64
	Product    sql.NullInt64
}

// dimensionResolver は1回の取込実行に閉じたマスタ解決のメモ化です。
// キャッシュは同一ファイル内の繰り返し値に対する再検索・再作成を防ぐための
// もので、実行をまたいで保持してはいけません。
type dimensionResolver struct {
	tx      *sqlx.Tx
	cache   map[string]sql.NullInt64
	created map[string]int
}

func newDimensionResolver(tx *sqlx.Tx) *dimensionResolver {
	return &dimensionResolver{
		tx:      tx,
		cache:   make(map[string]sql.NullInt64),
		created: make(map[string]int),
	}
}

// resolve は1マスタ分のfind-or-createです。コードまたは名称で既存行を探し、
// なければ insert で最小限の行を作成してIDを返します。
// コード・名称とも空の場合はIDなしで解決します（空の名称でマスタは作らない）。
func (rv *dimensionResolver) resolve(dim dimension, code, name string, insert func() (int64, error)) (sql.NullInt64, error) {
	matchName := name
	if dim.nameColumn == "" {
		matchName = ""
	}

	if dim.nameRequired && name == "" {
		return sql.NullInt64{}, nil
	}
	if code == "" && matchName == "" {
		return sql.NullInt64{}, nil
	}

	cacheKey := dim.label + "\x00" + code + "\x00" + matchName
	if id, ok := rv.cache[cacheKey]; ok {
		return id, nil
	}

	existingID, found, err := database.FindDimensionID(rv.tx, dim.table, dim.codeColumn, dim.nameColumn, code, matchName)
	if err != nil {
		return sql.NullInt64{}, err
	}
	if found {
		id := sql.NullInt64{Int64: existingID, Valid: true}
		rv.cache[cacheKey] = id
		return id, nil
	}

	newID, err := insert()
	if err != nil {
		return sql.NullInt64{}, fmt.Errorf("failed to create %s row: %w", dim.label, err)
	}
	rv.created[dim.label]++
	id := sql.NullInt64{Int64: newID, Valid: true}
	rv.cache[cacheKey] = id
	return id, nil
}

// resolveAll は1行分の5マスタをまとめて解決します。
func (rv *dimensionResolver) resolveAll(row *model.NormalizedRow) (dimensionIDs, error) {
	var ids dimensionIDs
	var err error

	ids.Company, err = rv.resolve(dimCompany, row.CompanyCode, row.OfficeName, func() (int64, error) {
		return database.InsertCompanyInTx(rv.tx, model.Company{
			CorporationCode: row.CorporationCode,
			CorporationName: row.CorporationName,
			CompanyCode:     row.CompanyCode,
			CompanyName:     row.OfficeName,
		})
	})
	if err != nil {
		return ids, err
	}

	ids.Department, err = rv.resolve(dimDepartment, row.DepartmentCode, row.DepartmentName, func() (int64, error) {
		return database.InsertDepartmentInTx(rv.tx, model.Department{
			DepartmentCode: row.DepartmentCode,
			DepartmentName: row.DepartmentName,
		})
	})
	if err != nil {
		return ids, err
	}

	ids.User, err = rv.resolve(dimUser, row.UserCode, row.UserName, func() (int64, error) {
		return database.InsertUserInTx(rv.tx, model.User{
			UserCode:         row.UserCode,
			UserName:         row.UserName,
			EmployeeTypeCode: row.EmployeeTypeCode,
			EmployeeTypeName: row.EmployeeTypeName,
		})
	})
	if err != nil {
		return ids, err
	}

	ids.Supplier, err = rv.resolve(dimSupplier, row.SupplierCode, row.SupplierName, func() (int64, error) {
		return database.InsertSupplierInTx(rv.tx, model.Supplier{
			SupplierCode: row.SupplierCode,
			SupplierName: row.SupplierName,
		})
	})
	if err != nil {
		return ids, err
	}

	ids.Product, err = rv.resolve(dimProduct, row.ProductCode, row.ProductName, func() (int64, error) {
		return database.InsertProductInTx(rv.tx, model.Product{
			ProductCode:  row.ProductCode,
			ProductName:  row.ProductName,
			CategoryCode: row.CategoryCode,
			CategoryName: row.CategoryName,
		})
	})
	if err != nil {
		return ids, err
	}

	return ids, nil
}
