package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"bentokan/database"
	"bentokan/model"

	"github.com/jmoiron/sqlx"
)

// UploadOrderCSVHandler はブラウザからの注文CSVアップロードを受け付けます。
// 複数ファイルを順番に取り込み、ファイルごとの結果を返します。
func UploadOrderCSVHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Println("Received order CSV upload request...")

		err := r.ParseMultipartForm(32 << 20)
		if err != nil {
			respondJSONError(w, "File upload error: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer r.MultipartForm.RemoveAll()

		imp := New(db)
		var allResults []map[string]interface{}

		for _, fileHeader := range r.MultipartForm.File["file"] {
			log.Printf("Processing file: %s", fileHeader.Filename)
			fileResult := map[string]interface{}{"filename": fileHeader.Filename}

			file, openErr := fileHeader.Open()
			if openErr != nil {
				log.Printf("Failed to open uploaded file %s: %v", fileHeader.Filename, openErr)
				fileResult["error"] = fmt.Sprintf("Failed to open file: %v", openErr)
				allResults = append(allResults, fileResult)
				continue
			}

			fileBytes, readErr := io.ReadAll(file)
			file.Close()
			if readErr != nil {
				fileResult["error"] = fmt.Sprintf("Failed to read file: %v", readErr)
				allResults = append(allResults, fileResult)
				continue
			}

			result, importErr := imp.ImportBytes(fileBytes, fileHeader.Filename, model.DefaultImportOptions())
			if importErr != nil {
				log.Printf("Failed to import order CSV %s: %v", fileHeader.Filename, importErr)
				fileResult["error"] = importErr.Error()
				allResults = append(allResults, fileResult)
				continue
			}

			log.Printf("Imported %d orders from %s (batch=%s)", result.SuccessRows, fileHeader.Filename, result.BatchID)
			fileResult["result"] = result
			allResults = append(allResults, fileResult)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": fmt.Sprintf("Processed %d file(s). See results for details.", len(allResults)),
			"results": allResults,
		})
		log.Println("Finished order CSV upload request.")
	}
}

// ListImportLogsHandler は取込監査ログを新しい順に返します。
func ListImportLogsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logs, err := database.GetImportLogs(db, 100)
		if err != nil {
			log.Printf("Error retrieving import logs: %v", err)
			respondJSONError(w, "取込履歴の取得に失敗しました。", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(logs)
	}
}

func respondJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
