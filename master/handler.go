package master

import (
	"encoding/json"
	"log"
	"net/http"

	"bentokan/database"

	"github.com/jmoiron/sqlx"
)

// マスタ一覧API。取込パイプラインが自動発見した行の確認用です。

func ListCompaniesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companies, err := database.GetAllCompanies(db)
		if err != nil {
			log.Printf("Error listing companies: %v", err)
			http.Error(w, "Failed to get companies", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(companies)
	}
}

func ListDepartmentsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		departments, err := database.GetAllDepartments(db)
		if err != nil {
			log.Printf("Error listing departments: %v", err)
			http.Error(w, "Failed to get departments", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(departments)
	}
}

func ListUsersHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := database.GetAllUsers(db)
		if err != nil {
			log.Printf("Error listing users: %v", err)
			http.Error(w, "Failed to get users", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(users)
	}
}

func ListSuppliersHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		suppliers, err := database.GetAllSuppliers(db)
		if err != nil {
			log.Printf("Error listing suppliers: %v", err)
			http.Error(w, "Failed to get suppliers", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(suppliers)
	}
}

func ListProductsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := database.GetAllProducts(db)
		if err != nil {
			log.Printf("Error listing products: %v", err)
			http.Error(w, "Failed to get products", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(products)
	}
}
