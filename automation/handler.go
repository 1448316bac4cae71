package automation

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"bentokan/config"
	"bentokan/importer"
	"bentokan/model"

	"github.com/jmoiron/sqlx"
)

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// DownloadOrderCsvHandler はポータルから注文CSVを自動受信し、そのまま
// 取込パイプラインへ渡します。
func DownloadOrderCsvHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			writeJSONError(w, "設定の読み込みに失敗しました: "+err.Error(), http.StatusInternalServerError)
			return
		}

		if cfg.PortalUserID == "" || cfg.PortalPassword == "" {
			writeJSONError(w, "ポータルのIDまたはパスワードが設定されていません。設定画面で入力してください。", http.StatusBadRequest)
			return
		}

		saveDir := cfg.DownloadFolderPath
		if saveDir == "" {
			saveDir = os.TempDir()
			log.Printf("CSV保存先設定がないため、一時フォルダを使用します: %s", saveDir)
		}

		log.Println("Starting order portal automation...")
		filePath, err := DownloadOrderCsv(cfg.PortalUserID, cfg.PortalPassword, saveDir)

		if err != nil {
			log.Printf("Automation Error: %v", err)
			writeJSONError(w, "自動受信エラー: "+err.Error(), http.StatusInternalServerError)
			return
		}

		if filePath == "NO_DATA" {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{
				"status":  "no_data",
				"message": "未取込の注文データはありませんでした。",
			})
			return
		}

		log.Printf("Importing downloaded file: %s", filePath)
		result, err := importer.New(db).ImportFile(filePath, model.DefaultImportOptions())
		if err != nil {
			writeJSONError(w, "注文CSV取込処理でエラー: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":   "success",
			"message":  fmt.Sprintf("ダウンロード＆取込完了: %d件", result.SuccessRows),
			"filePath": filePath,
			"result":   result,
		})
	}
}
