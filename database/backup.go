package database

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

const backupTimeLayout = "20060102_150405"

var backupRe = regexp.MustCompile(`^(\d{8}_\d{6})`)

func (d *Database) BackupDir() string {
	return filepath.Join(filepath.Dir(d.path), "backups")
}

// Backup vacuums the database into a timestamped copy and zips it.
// It returns the path of the zip file.
func (d *Database) Backup(ctx context.Context) (string, error) {
	dir := d.BackupDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	dest := filepath.Join(dir, fmt.Sprintf("%s_solara.db", time.Now().Format(backupTimeLayout)))
	if _, err := d.write.ExecContext(ctx, "VACUUM INTO ?", dest); err != nil {
		return "", fmt.Errorf("vacuuming database into '%s': %w", dest, err)
	}

	zipPath := dest + ".zip"
	if err := zipFile(dest, zipPath, filepath.Base(d.path)); err != nil {
		return "", err
	}

	if err := os.Remove(dest); err != nil {
		d.logger.Warn("could not remove original backup after compression", slog.Any("error", err))
	}

	d.logger.Info("database backup complete", slog.String("filename", zipPath))
	return zipPath, nil
}

func zipFile(src, dest, entryName string) error {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create zip file: %w", err)
	}
	defer out.Close()

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open database backup for compression: %w", err)
	}
	defer in.Close()

	fileInfo, err := in.Stat()
	if err != nil {
		return fmt.Errorf("get file info: %w", err)
	}

	header, err := zip.FileInfoHeader(fileInfo)
	if err != nil {
		return fmt.Errorf("create zip header: %w", err)
	}
	header.Name = entryName
	header.Method = zip.Deflate

	zw := zip.NewWriter(out)
	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("create zip file entry: %w", err)
	}
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("write database to zip: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize zip file: %w", err)
	}
	return nil
}

// PurgeBackups deletes backups older than retentionDays, zero or less keeps all.
// It returns the number of removed files.
func (d *Database) PurgeBackups(ctx context.Context, retentionDays int) (int, error) {
	if retentionDays < 1 {
		return 0, nil
	}
	return d.purgeBackupsBefore(time.Now().Add(-time.Duration(retentionDays) * 24 * time.Hour))
}

func (d *Database) purgeBackupsBefore(limit time.Time) (int, error) {
	dir := d.BackupDir()
	d.logger.Debug("purging old backups", slog.String("dir", dir))

	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read backup directory: %w", err)
	}

	removed := 0
	for _, file := range files {
		match := backupRe.FindString(file.Name())
		if match == "" {
			continue
		}
		t, err := time.ParseInLocation(backupTimeLayout, match, time.Local)
		if err != nil {
			d.logger.Debug("failed to parse backup timestamp", slog.String("filename", file.Name()), slog.Any("error", err))
			continue
		}
		if t.Before(limit) {
			path := filepath.Join(dir, file.Name())
			d.logger.Debug("deleting old backup", slog.String("path", path))
			if err := os.Remove(path); err != nil {
				return removed, fmt.Errorf("remove old backup '%s': %w", path, err)
			}
			removed++
		}
	}

	d.logger.Info("backup purge complete", slog.Int("removed", removed))
	return removed, nil
}
