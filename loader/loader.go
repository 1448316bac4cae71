package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"

	"bentokan/database"
	"bentokan/model"

	"github.com/jmoiron/sqlx"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// InitDatabase はデータベーススキーマを適用し、マスターCSVが置かれていれば
// ロードします。マスターCSVは任意で、取込パイプラインは空のマスタからでも
// ディメンションを自動発見します。
func InitDatabase(db *sqlx.DB) error {
	log.Println("Applying database schema...")
	if err := applySchema(db); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	log.Println("Schema applied successfully.")

	// マスターCSVのパス (SOUフォルダはアプリ直下に配置する想定)
	companyPath := "SOU/COMPANY.CSV"
	productPath := "SOU/PRODUCT.CSV"

	if _, err := os.Stat(companyPath); os.IsNotExist(err) {
		log.Printf("WARN: %s not found, skipping.", companyPath)
	} else {
		log.Printf("Loading %s...", companyPath)
		if err := LoadCompanyCSV(db, companyPath); err != nil {
			return fmt.Errorf("failed to load %s: %w", companyPath, err)
		}
		log.Printf("Loaded %s successfully.", companyPath)
	}

	if _, err := os.Stat(productPath); os.IsNotExist(err) {
		log.Printf("WARN: %s not found, skipping.", productPath)
	} else {
		log.Printf("Loading %s...", productPath)
		if err := LoadProductCSV(db, productPath); err != nil {
			return fmt.Errorf("failed to load %s: %w", productPath, err)
		}
		log.Printf("Loaded %s successfully.", productPath)
	}

	return nil
}

// applySchema はスキーマ定義を実行します。
func applySchema(db *sqlx.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// LoadCompanyCSV は事業所マスタCSV (Shift-JIS) を読み込み、会社コードで
// 照合しながら挿入または更新します。
func LoadCompanyCSV(db *sqlx.DB, path string) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, japanese.ShiftJIS.NewDecoder()))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return fmt.Errorf("CSVファイルが空です")
	}
	if err != nil {
		return fmt.Errorf("CSVヘッダーの読み取りに失敗: %w", err)
	}

	colIndex, err := getSeedColIndex(header, []string{"会社コード", "事業所名"})
	if err != nil {
		return err
	}

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	rowCount := 0
	line := 1
	for {
		line++
		rec, readErr := r.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			log.Printf("WARN: 事業所CSV %d行目の読み取りエラー (スキップ): %v", line, readErr)
			continue
		}

		get := func(key string) string {
			if idx, ok := colIndex[key]; ok && idx < len(rec) {
				return trimField(rec[idx])
			}
			return ""
		}

		code := get("会社コード")
		name := get("事業所名")
		if code == "" || name == "" {
			log.Printf("WARN: 事業所CSV %d行目 (コードまたは名称が空) (スキップ)", line)
			continue
		}

		company := model.Company{
			CorporationCode: get("法人コード"),
			CorporationName: get("法人名"),
			CompanyCode:     code,
			CompanyName:     name,
		}
		if err = database.UpsertCompanySeedInTx(tx, company); err != nil {
			return err
		}
		rowCount++
	}

	log.Printf("Inserted or updated %d rows into companies", rowCount)
	return nil
}

// LoadProductCSV は商品マスタCSV (Shift-JIS) を読み込み、商品コードで
// 照合しながら挿入または更新します。
func LoadProductCSV(db *sqlx.DB, path string) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, japanese.ShiftJIS.NewDecoder()))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return fmt.Errorf("CSVファイルが空です")
	}
	if err != nil {
		return fmt.Errorf("CSVヘッダーの読み取りに失敗: %w", err)
	}

	colIndex, err := getSeedColIndex(header, []string{"商品コード", "商品名"})
	if err != nil {
		return err
	}

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	rowCount := 0
	line := 1
	for {
		line++
		rec, readErr := r.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			log.Printf("WARN: 商品CSV %d行目の読み取りエラー (スキップ): %v", line, readErr)
			continue
		}

		get := func(key string) string {
			if idx, ok := colIndex[key]; ok && idx < len(rec) {
				return trimField(rec[idx])
			}
			return ""
		}

		code := get("商品コード")
		name := get("商品名")
		if code == "" || name == "" {
			log.Printf("WARN: 商品CSV %d行目 (コードまたは名称が空) (スキップ)", line)
			continue
		}

		product := model.Product{
			ProductCode:  code,
			ProductName:  name,
			CategoryCode: get("カテゴリコード"),
			CategoryName: get("カテゴリ名"),
		}
		if err = database.UpsertProductSeedInTx(tx, product); err != nil {
			return err
		}
		rowCount++
	}

	log.Printf("Inserted or updated %d rows into products", rowCount)
	return nil
}
