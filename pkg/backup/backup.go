package backup

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"TransLingo/pkg/config"
	"TransLingo/pkg/logger"

	"go.uber.org/zap"
)

// ExecuteBackup 根据配置执行数据库备份
func ExecuteBackup() error {
	switch config.GlobalConfig.DBDriver {
	case "", "sqlite":
		dst := filepath.Join(config.GlobalConfig.BackupPath, fmt.Sprintf("translingo_backup_%s.db", time.Now().Format("20060102_150405")))
		return backupSQLiteDatabase(config.GlobalConfig.DSN, dst)
	case "mysql":
		dst := filepath.Join(config.GlobalConfig.BackupPath, fmt.Sprintf("translingo_backup_%s.sql", time.Now().Format("20060102_150405")))
		return backupMySQLDatabase(config.GlobalConfig.DSN, dst)
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", config.GlobalConfig.DBDriver)
	}
}

func backupSQLiteDatabase(src, dst string) error {
	if src == "" || src == "file::memory:" {
		return fmt.Errorf("in-memory database cannot be backed up")
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}

	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return fmt.Errorf("copy data: %w", err)
	}

	logger.Info("sqlite backup completed", zap.String("dst", dst))
	return nil
}

func backupMySQLDatabase(dsn, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}

	cmd := exec.Command("mysqldump", dsn, "--result-file="+dst)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("mysqldump: %w", err)
	}

	logger.Info("mysql backup completed", zap.String("dst", dst))
	return nil
}
