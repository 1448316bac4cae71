package main

import (
	"net/http"

	"bentokan/automation"
	"bentokan/importer"
	"bentokan/master"
	"bentokan/orders"

	"github.com/jmoiron/sqlx"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB) {

	mux.HandleFunc("/api/orders/upload", importer.UploadOrderCSVHandler(dbConn))
	mux.HandleFunc("/api/orders/search", orders.SearchOrdersHandler(dbConn))

	mux.HandleFunc("/api/import/logs", importer.ListImportLogsHandler(dbConn))

	mux.HandleFunc("/api/masters/companies", master.ListCompaniesHandler(dbConn))
	mux.HandleFunc("/api/masters/departments", master.ListDepartmentsHandler(dbConn))
	mux.HandleFunc("/api/masters/users", master.ListUsersHandler(dbConn))
	mux.HandleFunc("/api/masters/suppliers", master.ListSuppliersHandler(dbConn))
	mux.HandleFunc("/api/masters/products", master.ListProductsHandler(dbConn))

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			GetConfigHandler()(w, r)
		case http.MethodPost:
			SaveConfigHandler()(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/automation/portal/download", automation.DownloadOrderCsvHandler(dbConn))
}
