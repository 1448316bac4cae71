package importer

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bentokan/config"
	"bentokan/database"
	"bentokan/model"
	"bentokan/parsers"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

const (
	// 行エラーがこの件数を超えた時点で取込全体を中断し、ロールバックします。
	maxRowErrors = 50
	// ファイル全体をメモリへ読み込むため、上限を設けます。
	maxFileSize = 32 << 20
)

// Importer は注文CSVの取込パイプライン本体です。
// 1回の取込は1トランザクションで実行され、マスタの自動作成・注文の追加・
// 監査ログの書き込みがまとめてコミットまたはロールバックされます。
type Importer struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func New(db *sqlx.DB) *Importer {
	return &Importer{db: db, log: config.ImportLogger()}
}

// ImportFile はパス指定で注文CSVを取り込みます。
// ファイル不在・サイズ超過は行処理前の致命的エラーです。
func (imp *Importer) ImportFile(path string, opts model.ImportOptions) (*model.ImportResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("取込ファイルが見つかりません: %s: %w", path, err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("取込ファイルが大きすぎます: %s (%dバイト)", path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("取込ファイルの読み取りに失敗しました: %s: %w", path, err)
	}
	return imp.ImportBytes(data, filepath.Base(path), opts)
}

// ImportBytes はメモリ上の注文CSVを取り込みます。
// 致命的エラー（文字コード変換失敗・ヘッダー不正・エラー件数超過）は
// error として返り、その場合データベースには何も残りません。
// 行単位の失敗は結果のエラー一覧に積まれ、処理は続行します。
func (imp *Importer) ImportBytes(data []byte, sourceLabel string, opts model.ImportOptions) (result *model.ImportResult, err error) {
	start := time.Now()

	text, err := parsers.DecodeJapaneseText(data)
	if err != nil {
		return nil, err
	}

	doc, err := parsers.ParseOrderCSV(text, opts)
	if err != nil {
		return nil, err
	}

	batchID := uuid.NewString()
	result = &model.ImportResult{
		BatchID:   batchID,
		TotalRows: len(doc.Rows),
	}

	imp.log.Infof("取込開始: %s (batch=%s, %d行)", sourceLabel, batchID, result.TotalRows)

	tx, err := imp.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	// コミット済みの場合のRollbackは何もしない
	defer tx.Rollback()

	if err := database.InsertImportBatchInTx(tx, model.ImportBatch{BatchID: batchID, SourceLabel: sourceLabel}); err != nil {
		return nil, err
	}

	warnCount := 0
	warn := func(format string, args ...interface{}) {
		warnCount++
		imp.log.Warnf(format, args...)
	}

	resolver := newDimensionResolver(tx)

	for _, raw := range doc.Rows {
		result.ProcessedRows++

		if rowErr := imp.processRow(tx, resolver, doc, raw, batchID, result, warn); rowErr != nil {
			result.ErrorRows++
			result.Errors = append(result.Errors, model.RowError{Line: raw.Line, Message: rowErr.Error()})
			imp.log.Warnf("取込エラー %d行目: %v", raw.Line, rowErr)

			if result.ErrorRows > maxRowErrors {
				first := result.Errors[0]
				return nil, fmt.Errorf("行エラーが%d件を超えたため取込を中断しました (最初のエラー: %s)", maxRowErrors, first.Error())
			}
		}
	}

	result.NewCompanies = resolver.created[dimCompany.label]
	result.NewDepartments = resolver.created[dimDepartment.label]
	result.NewUsers = resolver.created[dimUser.label]
	result.NewSuppliers = resolver.created[dimSupplier.label]
	result.NewProducts = resolver.created[dimProduct.label]
	result.ElapsedMs = time.Since(start).Milliseconds()

	notes, err := json.Marshal(map[string]interface{}{
		"warnings":         warnCount,
		"droppedShortRows": doc.DroppedRows,
		"elapsedMs":        result.ElapsedMs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal import notes: %w", err)
	}

	logRow := model.ImportLog{
		BatchID:        batchID,
		SourceLabel:    sourceLabel,
		TotalRows:      result.TotalRows,
		SuccessRows:    result.SuccessRows,
		ErrorRows:      result.ErrorRows,
		DuplicateRows:  result.DuplicateRows,
		NewCompanies:   result.NewCompanies,
		NewDepartments: result.NewDepartments,
		NewUsers:       result.NewUsers,
		NewSuppliers:   result.NewSuppliers,
		NewProducts:    result.NewProducts,
		Status:         model.ImportStatusCompleted,
		Notes:          string(notes),
	}
	if err := database.InsertImportLogInTx(tx, logRow); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit error: %w", err)
	}

	result.Success = true
	imp.log.Infof("取込完了: %s (batch=%s) 成功=%d 重複=%d エラー=%d 新規マスタ=%d",
		sourceLabel, batchID, result.SuccessRows, result.DuplicateRows, result.ErrorRows,
		result.NewCompanies+result.NewDepartments+result.NewUsers+result.NewSuppliers+result.NewProducts)

	return result, nil
}

// processRow は1行分の正規化・検証・マスタ解決・重複判定・書き込みです。
// 返したエラーは行単位で数えられ、取込全体には伝播しません。
func (imp *Importer) processRow(tx *sqlx.Tx, resolver *dimensionResolver, doc *parsers.OrderCSVDocument,
	raw parsers.RawRow, batchID string, result *model.ImportResult, warn func(string, ...interface{})) error {

	row, err := normalizeRow(doc, raw)
	if err != nil {
		return err
	}

	if err := validateDomain(row, warn); err != nil {
		return err
	}

	ids, err := resolver.resolveAll(row)
	if err != nil {
		return err
	}

	exists, err := database.OrderExistsInTx(tx, row.UserCode, row.DeliveryDate, row.ProductCode, row.CooperationCode)
	if err != nil {
		return err
	}
	if exists {
		// 取込済み注文の再取込はエラーではなくスキップ
		result.DuplicateRows++
		return nil
	}

	order := model.Order{
		BatchID:         batchID,
		CompanyID:       ids.Company,
		DepartmentID:    ids.Department,
		UserID:          ids.User,
		SupplierID:      ids.Supplier,
		ProductID:       ids.Product,
		DeliveryDate:    row.DeliveryDate,
		OfficeName:      row.OfficeName,
		UserCode:        row.UserCode,
		UserName:        row.UserName,
		ProductCode:     row.ProductCode,
		ProductName:     row.ProductName,
		Quantity:        row.Quantity,
		UnitPrice:       row.UnitPrice,
		TotalAmount:     row.TotalAmount,
		Notes:           row.Notes,
		CooperationCode: row.CooperationCode,
	}
	if row.DeliveryTime != "" {
		order.DeliveryTime = sql.NullString{String: row.DeliveryTime, Valid: true}
	}

	if _, err := database.InsertOrderInTx(tx, order); err != nil {
		return err
	}

	result.SuccessRows++
	return nil
}
