package config

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// importLogger は取込診断ログの出力先です。行単位のエラーと実行サマリを
// 監査ログ (import_logs) とは別に logs/import.log へ残します。
var importLogger = logrus.New()

// ImportLogFilePath は取込診断ログのファイルパスを返します。
func ImportLogFilePath() string {
	return filepath.Join("logs", "import.log")
}

// InitImportLogging は診断ログファイルを準備します。ファイルが開けない場合は
// 標準出力のみに出力します（取込自体は継続する）。
func InitImportLogging() *os.File {
	importLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	dir := filepath.Dir(ImportLogFilePath())
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("WARN: Failed to create logs directory: %v", err)
		importLogger.SetOutput(os.Stdout)
		return nil
	}

	logFile, err := os.OpenFile(ImportLogFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Printf("WARN: Failed to open import log file: %v", err)
		importLogger.SetOutput(os.Stdout)
		return nil
	}

	importLogger.SetOutput(io.MultiWriter(os.Stdout, logFile))
	return logFile
}

// ImportLogger は取込診断ロガーを返します。
func ImportLogger() *logrus.Logger {
	return importLogger
}
