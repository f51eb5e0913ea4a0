package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// SaveToDir 내보낸 파일을 dir 에 <kind>_<uuid>.xlsx 로 저장하고 경로를 돌려준다
func SaveToDir(f *excelize.File, dir string, kind Kind) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("내보내기 디렉터리 생성 실패: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.xlsx", kind, uuid.NewString()))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("엑셀 저장 실패: %w", err)
	}
	return path, nil
}

// CleanupExpired dir 안에서 ttl 보다 오래된 xlsx 를 지우고 지운 개수를 돌려준다
func CleanupExpired(dir string, ttl time.Duration, now time.Time) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".xlsx") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) < ttl {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}
