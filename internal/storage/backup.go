package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// BackupConfig holds configuration for analytics backup.
type BackupConfig struct {
	// Dir is the directory where backups are written. Defaults to a
	// "backups" subdirectory next to the database.
	Dir string

	// Name is the backup file name without extension. Defaults to a
	// timestamp-based name.
	Name string

	// Passphrase, when set, encrypts the backup at rest.
	Passphrase string
}

// Backup writes a consistent copy of the analytics database using VACUUM
// INTO, optionally encrypting the result. Returns the backup file path.
func (db *DB) Backup(config *BackupConfig) (string, error) {
	if config == nil {
		config = &BackupConfig{}
	}
	if db.path == ":memory:" {
		return "", fmt.Errorf("cannot back up an in-memory database")
	}

	dir := config.Dir
	if dir == "" {
		dir = filepath.Join(filepath.Dir(db.path), "backups")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	name := config.Name
	if name == "" {
		name = fmt.Sprintf("backup_%s", time.Now().Format("20060102_150405"))
	}
	backupPath := filepath.Join(dir, name+".db")

	// VACUUM INTO produces an atomic copy without exclusive locks.
	if _, err := db.conn.Exec("VACUUM INTO ?", backupPath); err != nil {
		return "", fmt.Errorf("vacuum into backup: %w", err)
	}

	if config.Passphrase == "" {
		return backupPath, nil
	}

	plaintext, err := os.ReadFile(backupPath)
	if err != nil {
		return "", fmt.Errorf("read backup for encryption: %w", err)
	}

	encrypted, err := encryptData(plaintext, config.Passphrase)
	if err != nil {
		return "", fmt.Errorf("encrypt backup: %w", err)
	}

	encPath := backupPath + ".enc"
	if err := os.WriteFile(encPath, encrypted, 0o600); err != nil {
		return "", fmt.Errorf("write encrypted backup: %w", err)
	}
	if err := os.Remove(backupPath); err != nil {
		return "", fmt.Errorf("remove plaintext backup: %w", err)
	}

	return encPath, nil
}

// RestoreBackup decrypts an encrypted backup file to the given destination.
func RestoreBackup(encPath, destPath, passphrase string) error {
	data, err := os.ReadFile(encPath)
	if err != nil {
		return fmt.Errorf("read encrypted backup: %w", err)
	}

	plaintext, err := decryptData(data, passphrase)
	if err != nil {
		return fmt.Errorf("decrypt backup: %w", err)
	}

	if err := os.WriteFile(destPath, plaintext, 0o600); err != nil {
		return fmt.Errorf("write restored database: %w", err)
	}

	return nil
}
