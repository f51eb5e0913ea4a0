package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 애플리케이션 설정
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Report ReportConfig `toml:"report"`
}

// ServerConfig 서버 설정
type ServerConfig struct {
	Port    int    `toml:"port"`
	DevMode bool   `toml:"dev_mode"`
	LogMode string `toml:"log_mode"` // dev / prod
	// AllowOrigins CORS 허용 출처, 비어 있으면 전체 허용
	AllowOrigins []string `toml:"allow_origins"`
}

// DataConfig 데이터 설정
type DataConfig struct {
	DataDir string `toml:"data_dir"`
	DBName  string `toml:"db_name"`
}

// ReportConfig 보고서 조회 설정
type ReportConfig struct {
	// RetryWaitMS 연결 과다 오류 시 재시도 전 대기 (밀리초)
	RetryWaitMS int `toml:"retry_wait_ms"`
	// ExportTTLMinutes 내보내기 파일 다운로드 유효 시간
	ExportTTLMinutes int `toml:"export_ttl_minutes"`
}

// RetryWait 재시도 대기 시간
func (r ReportConfig) RetryWait() time.Duration {
	return time.Duration(r.RetryWaitMS) * time.Millisecond
}

// ExportTTL 다운로드 유효 시간
func (r ReportConfig) ExportTTL() time.Duration {
	return time.Duration(r.ExportTTLMinutes) * time.Minute
}

// LoadConfigInfo 설정 로드 메타 정보
type LoadConfigInfo struct {
	Path          string
	PortSpecified bool
}

// DefaultConfig 기본 설정
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
			LogMode: "prod",
		},
		Data: DataConfig{
			DataDir: "data",
			DBName:  "healingstat.db",
		},
		Report: ReportConfig{
			RetryWaitMS:      1000,
			ExportTTLMinutes: 10,
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 실행 파일이 있는 디렉터리
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultConfigPath 실행 파일 옆의 config.toml
func DefaultConfigPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadConfigFrom 지정 경로의 config.toml 을 읽는다 (없으면 기본값)
func LoadConfigFrom(configPath string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: configPath}
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, info, err
		}
	} else {
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, err
		}
	}

	applyEnv(config, &info)
	return config, info, nil
}

// LoadConfigWithInfo 실행 파일 옆 config.toml 로드
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	return LoadConfigFrom(DefaultConfigPath())
}

// applyEnv 환경 변수 덮어쓰기 (배포/E2E 용)
func applyEnv(config *AppConfig, info *LoadConfigInfo) {
	if v := os.Getenv("HEALINGSTAT_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("HEALINGSTAT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			config.Server.Port = port
			info.PortSpecified = true
		}
	}
	if v := os.Getenv("HEALINGSTAT_LOG_MODE"); v != "" {
		config.Server.LogMode = v
	}
}

// SaveConfig 설정을 path 에 저장 (비어 있으면 실행 파일 옆 config.toml)
func SaveConfig(config *AppConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ResolveDataDir 상대 경로면 실행 파일 기준으로 해석
func ResolveDataDir(config *AppConfig) string {
	if filepath.IsAbs(config.Data.DataDir) {
		return config.Data.DataDir
	}
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.DataDir)
}

// EnsureDataDir 데이터 디렉터리와 하위 디렉터리 생성
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := ResolveDataDir(config)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	subdirs := []string{"uploads", "exports"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}

// DBPath SQLite 파일 경로
func DBPath(config *AppConfig, dataDir string) string {
	name := config.Data.DBName
	if name == "" {
		name = "healingstat.db"
	}
	return filepath.Join(dataDir, name)
}
