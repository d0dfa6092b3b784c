// Package runner は π(N) 計算の実行機能を提供する。
//
// 実行エンジンは sieve、pool、metrics を連携させて計算を実行する。
// まず sqrt(N) を覆う基底素数表を作り、残りの区間をスライスに分割して
// ワーカープールへ投入する。各スライスの結果は投入順の Ordered 区間で
// Tally に集約されるため、ワーカー数に関わらず結果は決定的になる。
//
// # 機能
//
// - 分割方針（Plan）の決定と実行
// - 定義済みプリセット
// - 実行結果のレポート生成
//
// # プリセット
//
// - quick: 短時間の動作確認（1e8）
// - million: 基底のみの単一スレッド実行（1e6）
// - billion: 10億までの標準実行
// - large: 1e11 の長時間実行
// - stress: 1e12 の高負荷実行
//
// # 使用例
//
//	config := runner.QuickRun()
//	engine := runner.New(config)
//	result, err := engine.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Report())
package runner
