package store

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// IsTooManyConnections 잠시 후 다시 시도하면 풀릴 수 있는 연결 과다/잠금 오류인지 확인
func IsTooManyConnections(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked {
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "too many connections")
}
