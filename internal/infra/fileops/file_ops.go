// Where: cli/internal/infra/fileops/file_ops.go
// What: Shared filesystem operations for scaffolding, archives and bootstrap.
// Why: Keep behavior consistent and avoid duplicated I/O helper implementations.
package fileops

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const maxZipEntryBytes int64 = 200 << 20 // 200 MiB safety cap for zip extraction.

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(path, content string, perm os.FileMode) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), perm)
}

// ExtractZip unpacks src into dst, rejecting entries that escape dst.
func ExtractZip(src, dst string) error {
	reader, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer reader.Close()

	if err := EnsureDir(dst); err != nil {
		return err
	}
	for _, file := range reader.File {
		//nolint:gosec // Path traversal is checked below with cleaned prefix validation.
		targetPath := filepath.Join(dst, filepath.FromSlash(file.Name))
		if !strings.HasPrefix(filepath.Clean(targetPath), filepath.Clean(dst)+string(os.PathSeparator)) {
			return fmt.Errorf("zip path escapes target: %s", file.Name)
		}

		if file.FileInfo().IsDir() {
			if err := EnsureDir(targetPath); err != nil {
				return err
			}
			continue
		}
		if err := extractZipEntry(file, targetPath); err != nil {
			return err
		}
	}
	return nil
}

func extractZipEntry(file *zip.File, targetPath string) error {
	if file.UncompressedSize64 > uint64(maxZipEntryBytes) {
		return fmt.Errorf("zip entry too large: %s", file.Name)
	}
	if err := EnsureDir(filepath.Dir(targetPath)); err != nil {
		return err
	}

	in, err := file.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(targetPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, file.Mode().Perm())
	if err != nil {
		return err
	}
	written, err := io.Copy(out, io.LimitReader(in, maxZipEntryBytes+1))
	if err != nil {
		out.Close()
		return err
	}
	if written > maxZipEntryBytes {
		out.Close()
		return fmt.Errorf("zip entry too large: %s", file.Name)
	}
	return out.Close()
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
