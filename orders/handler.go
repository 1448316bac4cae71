package orders

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"bentokan/database"
	"bentokan/model"

	"github.com/jmoiron/sqlx"
)

// SearchOrdersHandler は取込済み注文の検索APIです。
// クエリパラメータ: date_from, date_to, user_code, office_name, batch_id, limit
func SearchOrdersHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		limit, _ := strconv.Atoi(q.Get("limit"))

		params := model.OrderSearchParams{
			DeliveryDateFrom: q.Get("date_from"),
			DeliveryDateTo:   q.Get("date_to"),
			UserCode:         q.Get("user_code"),
			OfficeName:       q.Get("office_name"),
			BatchID:          q.Get("batch_id"),
			Limit:            limit,
		}

		results, err := database.SearchOrders(db, params)
		if err != nil {
			log.Printf("Error searching orders: %v", err)
			http.Error(w, "Failed to search orders", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(results)
	}
}
