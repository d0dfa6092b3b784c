package runner

// QuickRun はクイックテスト用の設定を返す
// 短時間での動作確認用
func QuickRun() Config {
	return Config{
		Name:        "quick",
		Description: "Quick run for verification (1e8)",
		Max:         100_000_000,
		Workers:     4,
		Progress:    true,
	}
}

// MillionRun は基底のみの設定を返す
// スライス分割もスレッドも使わない単一スレッド実行
func MillionRun() Config {
	return Config{
		Name:        "million",
		Description: "Base-only single-threaded run (1e6)",
		Max:         1_000_000,
		Workers:     0,
		Progress:    false,
	}
}

// BillionRun は 10 億までの標準的な設定を返す
func BillionRun() Config {
	return Config{
		Name:        "billion",
		Description: "Standard run to one billion",
		Max:         1_000_000_000,
		Workers:     4,
		Progress:    true,
	}
}

// LargeRun は長時間の設定を返す
func LargeRun() Config {
	return Config{
		Name:        "large",
		Description: "Long run to 1e11",
		Max:         100_000_000_000,
		Workers:     8,
		Progress:    true,
	}
}

// StressRun は高負荷の設定を返す
// スライス数が多く、進捗表示の動作確認にも使える
func StressRun() Config {
	return Config{
		Name:        "stress",
		Description: "High load run to 1e12",
		Max:         1_000_000_000_000,
		Workers:     16,
		Progress:    true,
	}
}

// GetPreset は名前からプリセットを取得する
func GetPreset(name string) (Config, bool) {
	presets := map[string]func() Config{
		"quick":   QuickRun,
		"million": MillionRun,
		"billion": BillionRun,
		"large":   LargeRun,
		"stress":  StressRun,
	}

	if fn, ok := presets[name]; ok {
		return fn(), true
	}
	return Config{}, false
}

// ListPresets は利用可能なプリセット名を返す
func ListPresets() []string {
	return []string{"quick", "million", "billion", "large", "stress"}
}
