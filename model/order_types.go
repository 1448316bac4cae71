package model

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// NormalizedRow は注文CSVの1行を型付けした射影です。
// 金額は正規化時に 数量×単価 で再計算済みであることを保証します。
type NormalizedRow struct {
	Line             int
	CorporationCode  string
	CorporationName  string
	CompanyCode      string
	OfficeName       string
	DeliveryDate     string // YYYY-MM-DD
	DepartmentCode   string
	DepartmentName   string
	UserCode         string
	UserName         string
	EmployeeTypeCode string
	EmployeeTypeName string
	SupplierCode     string
	SupplierName     string
	CategoryCode     string
	CategoryName     string
	ProductCode      string
	ProductName      string
	Quantity         int
	UnitPrice        decimal.Decimal
	TotalAmount      decimal.Decimal
	Notes            string
	DeliveryTime     string // HH:MM:00、未指定は空文字
	CooperationCode  string
}

// Order は確定した注文ファクトの1行を表します。
// 重複判定の自然キーは (user_code, delivery_date, product_code, cooperation_code) です。
type Order struct {
	ID              int64           `db:"id" json:"id"`
	BatchID         string          `db:"batch_id" json:"batchId"`
	CompanyID       sql.NullInt64   `db:"company_id" json:"companyId"`
	DepartmentID    sql.NullInt64   `db:"department_id" json:"departmentId"`
	UserID          sql.NullInt64   `db:"user_id" json:"userId"`
	SupplierID      sql.NullInt64   `db:"supplier_id" json:"supplierId"`
	ProductID       sql.NullInt64   `db:"product_id" json:"productId"`
	DeliveryDate    string          `db:"delivery_date" json:"deliveryDate"`
	DeliveryTime    sql.NullString  `db:"delivery_time" json:"deliveryTime"`
	OfficeName      string          `db:"office_name" json:"officeName"`
	UserCode        string          `db:"user_code" json:"userCode"`
	UserName        string          `db:"user_name" json:"userName"`
	ProductCode     string          `db:"product_code" json:"productCode"`
	ProductName     string          `db:"product_name" json:"productName"`
	Quantity        int             `db:"quantity" json:"quantity"`
	UnitPrice       decimal.Decimal `db:"unit_price" json:"unitPrice"`
	TotalAmount     decimal.Decimal `db:"total_amount" json:"totalAmount"`
	Notes           string          `db:"notes" json:"notes"`
	CooperationCode string          `db:"cooperation_code" json:"cooperationCode"`
	CreatedAt       string          `db:"created_at" json:"createdAt"`
}

// OrderSearchParams は注文検索APIの絞り込み条件です。
type OrderSearchParams struct {
	DeliveryDateFrom string
	DeliveryDateTo   string
	UserCode         string
	OfficeName       string
	BatchID          string
	Limit            int
}
