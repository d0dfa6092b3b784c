// Package main is the entry point for PrimeGrid.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"prime-grid/internal/api"
	"prime-grid/internal/config"
	"prime-grid/internal/logger"
	"prime-grid/internal/pool"
	"prime-grid/internal/runner"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	version = "dev"
)

func main() {
	// フラグ定義
	var (
		maxValue    = flag.String("max", "", "素数を数える上限値 (例: 1000000, 1e12)")
		workers     = flag.Int("workers", -1, "ワーカー数 (0 でスレッド不使用、最大 100)")
		configFile  = flag.String("config", "", "設定ファイルパス (YAML/JSON)")
		presetName  = flag.String("preset", "", "プリセット名 (quick, million, billion, large, stress)")
		progress    = flag.Bool("progress", true, "stderr への進捗表示を有効化")
		report      = flag.Bool("report", false, "実行後に詳細レポートを表示")
		logLevel    = flag.String("log-level", "info", "ログレベル (debug, info, warn, error)")
		listPresets = flag.Bool("list-presets", false, "利用可能なプリセットを表示")
		showVersion = flag.Bool("version", false, "バージョンを表示")
		serverMode  = flag.Bool("server", false, "Web UI サーバーモードで起動")
		serverAddr  = flag.String("addr", ":8080", "サーバーアドレス (例: :8080, 0.0.0.0:3000)")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `PrimeGrid - Multithreaded Prime Counting

Usage:
  prime-grid [options] [max value] [num workers]

Options:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # 10億までの素数を数える
  prime-grid 1e9

  # ワーカー数を指定
  prime-grid 1e12 8

  # プリセットを実行
  prime-grid --preset quick

  # 設定ファイルから実行
  prime-grid --config run.yaml

  # プリセット一覧を表示
  prime-grid --list-presets

  # Web UIサーバーモードで起動
  prime-grid --server --addr :3000
`)
	}

	flag.Parse()

	// バージョン表示
	if *showVersion {
		fmt.Printf("prime-grid version %s\n", version)
		return
	}

	// プリセット一覧表示
	if *listPresets {
		printPresets()
		return
	}

	// ログレベル設定
	level, err := logger.ParseLevel(*logLevel)
	if err != nil {
		logger.Error("", "フラグエラー: %v", err)
		os.Exit(1)
	}
	logger.Default.SetLevel(level)

	// Web UIサーバーモード
	if *serverMode {
		if err := runServer(*serverAddr); err != nil {
			logger.Error("", "サーバーエラー: %v", err)
			os.Exit(1)
		}
		return
	}

	// 実行設定の決定
	runConfig, err := buildRunConfig(*configFile, *presetName, *maxValue, *workers, *progress, flag.Args())
	if err != nil {
		logger.Error("", "設定エラー: %v", err)
		os.Exit(1)
	}

	// 実行
	if err := runOnce(runConfig, *report); err != nil {
		logger.Error("", "実行エラー: %v", err)
		os.Exit(1)
	}
}

// buildRunConfig は実行設定を構築する
func buildRunConfig(
	configFile, presetName, maxValue string,
	workers int, progress bool, args []string,
) (runner.Config, error) {
	var cfg runner.Config

	// 1. 設定ファイルから読み込み
	if configFile != "" {
		fileConfig, err := config.LoadFile(configFile)
		if err != nil {
			return cfg, fmt.Errorf("設定ファイル読み込みエラー: %w", err)
		}
		if err := fileConfig.Validate(); err != nil {
			return cfg, fmt.Errorf("設定検証エラー: %w", err)
		}
		cfg, err = fileConfig.ToRunConfig()
		if err != nil {
			return cfg, fmt.Errorf("設定変換エラー: %w", err)
		}
	} else if presetName != "" {
		// 2. プリセットから読み込み
		preset, ok := runner.GetPreset(presetName)
		if !ok {
			return cfg, fmt.Errorf("不明なプリセット: %s (利用可能: %v)", presetName, runner.ListPresets())
		}
		cfg = preset
	} else {
		// 3. デフォルト
		cfg = runner.DefaultConfig()
	}

	// 位置引数（元の primes コマンド互換: max と workers）
	if len(args) > 0 {
		maxValue = args[0]
	}
	if len(args) > 1 {
		if _, err := fmt.Sscanf(args[1], "%d", &workers); err != nil {
			return cfg, fmt.Errorf("ワーカー数が不正: %s", args[1])
		}
	}

	// フラグでオーバーライド
	if maxValue != "" {
		max, err := config.ParseMax(maxValue)
		if err != nil {
			return cfg, err
		}
		cfg.Max = max
	}
	if workers >= 0 {
		if workers > pool.MaxWorkers {
			return cfg, fmt.Errorf("ワーカー数は 0 から %d の範囲で指定すること", pool.MaxWorkers)
		}
		cfg.Workers = workers
	}
	cfg.Progress = progress

	return cfg, nil
}

// runOnce は計算を一度実行して結果を表示する
func runOnce(cfg runner.Config, report bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := runner.New(cfg)
	result, err := engine.Run(ctx)
	if err != nil {
		return err
	}

	// 桁区切り付きで結果を表示する
	p := message.NewPrinter(language.English)
	p.Printf("there are %d primes less than %d; the last is %d\n",
		result.TotalPrimes, result.Max, result.LastPrime)

	if report {
		fmt.Println(result.Report())
	}

	return nil
}

// runServer はWeb UIサーバーモードで起動する
func runServer(addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(addr)
	return server.Start(ctx)
}

// printPresets はプリセット一覧を表示する
func printPresets() {
	fmt.Println("Available presets:")
	for _, name := range runner.ListPresets() {
		preset, _ := runner.GetPreset(name)
		fmt.Printf("  %-10s %s (max=%d, workers=%d)\n",
			name, preset.Description, preset.Max, preset.Workers)
	}
}
