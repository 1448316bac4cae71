package model

// Company は事業所マスタの1行を表します。
// CSV取込時は会社コードまたは事業所名で照合されます。
type Company struct {
	ID              int64  `db:"id" json:"id"`
	CorporationCode string `db:"corporation_code" json:"corporationCode"`
	CorporationName string `db:"corporation_name" json:"corporationName"`
	CompanyCode     string `db:"company_code" json:"companyCode"`
	CompanyName     string `db:"company_name" json:"companyName"`
	Active          int    `db:"active" json:"active"`
}

// Department は部署マスタの1行を表します。
type Department struct {
	ID             int64  `db:"id" json:"id"`
	DepartmentCode string `db:"department_code" json:"departmentCode"`
	DepartmentName string `db:"department_name" json:"departmentName"`
	Active         int    `db:"active" json:"active"`
}

// User は社員マスタの1行を表します。照合は社員コードのみで行います。
type User struct {
	ID               int64  `db:"id" json:"id"`
	UserCode         string `db:"user_code" json:"userCode"`
	UserName         string `db:"user_name" json:"userName"`
	EmployeeTypeCode string `db:"employee_type_code" json:"employeeTypeCode"`
	EmployeeTypeName string `db:"employee_type_name" json:"employeeTypeName"`
	Active           int    `db:"active" json:"active"`
}

// Supplier は給食業者マスタの1行を表します。
type Supplier struct {
	ID           int64  `db:"id" json:"id"`
	SupplierCode string `db:"supplier_code" json:"supplierCode"`
	SupplierName string `db:"supplier_name" json:"supplierName"`
	Active       int    `db:"active" json:"active"`
}

// Product は商品マスタの1行を表します。
type Product struct {
	ID           int64  `db:"id" json:"id"`
	ProductCode  string `db:"product_code" json:"productCode"`
	ProductName  string `db:"product_name" json:"productName"`
	CategoryCode string `db:"category_code" json:"categoryCode"`
	CategoryName string `db:"category_name" json:"categoryName"`
	Active       int    `db:"active" json:"active"`
}
