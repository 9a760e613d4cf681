package pkg

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// CheckFileExist 检查文件是否存在
func CheckFileExist(filePath string) (bool, error) {
	_, err := os.Lstat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "stat %s", filePath)
	}
	return true, nil
}

// ReadFileText 读取整个文件内容
func ReadFileText(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", filePath)
	}
	return string(data), nil
}

// WriteFileText 写入文件，目录不存在时自动创建
func WriteFileText(filePath, text string) error {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create directory %s", dir)
		}
	}
	if err := os.WriteFile(filePath, []byte(text), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", filePath)
	}
	return nil
}
