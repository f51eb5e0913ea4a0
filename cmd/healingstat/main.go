package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healingstat/internal/config"
	"healingstat/internal/logger"
	"healingstat/internal/server"
	"healingstat/internal/store"
)

var (
	port        = flag.Int("port", 0, "서비스 포트 (config.toml 에 port 가 없을 때만 적용)")
	devMode     = flag.Bool("dev", false, "개발 모드")
	dataDir     = flag.String("dataDir", "", "데이터 디렉터리 (설정 파일보다 우선)")
	configPath  = flag.String("config", "", "설정 파일 경로 (기본: 실행 파일 옆 config.toml)")
	writeConfig = flag.Bool("writeConfig", false, "현재 설정을 설정 파일로 저장하고 종료")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  healingstat - 힐링센터 평가 통계 서버")
	fmt.Println("==========================================")

	cfg, info, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "설정을 읽지 못해 기본 설정을 사용합니다: %v\n", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
		cfg.Server.LogMode = "dev"
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	if *writeConfig {
		if err := config.SaveConfig(cfg, *configPath); err != nil {
			fmt.Fprintf(os.Stderr, "설정 저장 실패: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("설정을 저장했습니다")
		return
	}

	log, err := logger.New(cfg.Server.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "로거 초기화 실패: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	dir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Fatal("create data dir failed", "error", err)
	}
	log.Info("data dir ready", "path", dir, "config", info.Path)

	st, err := store.New(config.DBPath(cfg, dir))
	if err != nil {
		log.Fatal("open database failed", "error", err)
	}
	defer st.Close()

	srv := server.NewServer(cfg, st, dir, log)
	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(addr)
	}()
	fmt.Printf("http://localhost:%d 에서 서비스 중 (Ctrl+C 로 종료)\n", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server stopped", "error", err)
		}
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}
}

func loadConfig() (*config.AppConfig, config.LoadConfigInfo, error) {
	if *configPath != "" {
		return config.LoadConfigFrom(*configPath)
	}
	return config.LoadConfigWithInfo()
}
