package api

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"prime-grid/internal/config"
	"prime-grid/internal/events"
	"prime-grid/internal/logger"
	"prime-grid/internal/pool"
	"prime-grid/internal/runner"

	"golang.org/x/net/websocket"
)

//go:embed static/*
var staticFiles embed.FS

// Server はAPIサーバー
type Server struct {
	addr string
	bus  *events.Bus

	mu        sync.RWMutex
	running   bool
	engine    *runner.Engine
	runConfig runner.Config
	cancelRun context.CancelFunc
	lastRun   *runner.Result
	wsClients map[*websocket.Conn]bool

	server *http.Server
}

// NewServer は新しいAPIサーバーを作成する
func NewServer(addr string) *Server {
	return &Server{
		addr:      addr,
		bus:       events.NewBus(),
		wsClients: make(map[*websocket.Conn]bool),
	}
}

// Start はサーバーを開始する
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()

	// API routes
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/metrics", s.handleMetrics)
	mux.HandleFunc("/api/presets", s.handlePresets)
	mux.HandleFunc("/api/run/start", s.handleRunStart)
	mux.HandleFunc("/api/run/stop", s.handleRunStop)

	// WebSocket
	mux.Handle("/ws", websocket.Handler(s.handleWebSocket))

	// Static files
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to get static files: %w", err)
	}
	mux.Handle("/", http.FileServer(http.FS(staticFS)))

	s.server = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	// バックグラウンドでイベントとステータスを配信
	go s.forwardEvents(ctx)
	go s.broadcastLoop(ctx)

	logger.Info("api", "server starting on http://%s", s.addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// StatusResponse はステータスレスポンス
type StatusResponse struct {
	Running    bool   `json:"running"`
	RunName    string `json:"run_name,omitempty"`
	Max        uint64 `json:"max,omitempty"`
	Workers    int    `json:"workers"`
	SlicesDone uint64 `json:"slices_done"`
	Slices     int    `json:"slices"`
	Percent    int    `json:"percent"`
}

func (s *Server) status() StatusResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp := StatusResponse{
		Running: s.running,
	}

	if s.engine != nil {
		resp.RunName = s.runConfig.Name
		resp.Max = s.runConfig.Max
		resp.Workers = s.runConfig.Workers

		done, total := s.engine.Progress()
		resp.SlicesDone = done
		resp.Slices = total
		if total > 0 {
			resp.Percent = int(done) * 100 / total
		}
	}

	return resp
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeJSON(w, s.status())
}

// MetricsResponse はメトリクスレスポンス
type MetricsResponse struct {
	SlicesDone      uint64  `json:"slices_done"`
	AvgSliceMs      float64 `json:"avg_slice_ms"`
	P99SliceMs      float64 `json:"p99_slice_ms"`
	SlicesPerSecond float64 `json:"slices_per_second"`
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	engine := s.engine
	s.mu.RUnlock()

	resp := MetricsResponse{}

	if engine != nil {
		snap := engine.Metrics()
		resp.SlicesDone = snap.SlicesDone
		resp.AvgSliceMs = float64(snap.AvgSliceTime.Microseconds()) / 1000
		resp.P99SliceMs = float64(snap.P99SliceTime.Microseconds()) / 1000
		resp.SlicesPerSecond = snap.SlicesPerSecond
	}

	s.writeJSON(w, resp)
}

// RunRequest は実行開始リクエスト
type RunRequest struct {
	Preset  string `json:"preset"`
	Max     string `json:"max,omitempty"`
	Workers *int   `json:"workers,omitempty"`
}

func (s *Server) handleRunStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// プリセット取得
	runConfig, ok := runner.GetPreset(req.Preset)
	if !ok {
		runConfig = runner.QuickRun()
	}
	runConfig.Progress = false // 進捗はWebSocketで配信する

	// オーバーライド
	if req.Max != "" {
		max, err := config.ParseMax(req.Max)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		runConfig.Max = max
	}
	if req.Workers != nil {
		if *req.Workers < 0 || *req.Workers > pool.MaxWorkers {
			http.Error(w, fmt.Sprintf("workers must be between 0 and %d", pool.MaxWorkers), http.StatusBadRequest)
			return
		}
		runConfig.Workers = *req.Workers
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		http.Error(w, "Run already in progress", http.StatusConflict)
		return
	}

	engine := runner.New(runConfig)
	engine.SetEventBus(s.bus)

	runCtx, cancel := context.WithCancel(context.Background())
	s.engine = engine
	s.runConfig = runConfig
	s.cancelRun = cancel
	s.running = true
	s.mu.Unlock()

	// バックグラウンドで実行
	go func() {
		result, err := engine.Run(runCtx)
		cancel()

		s.mu.Lock()
		s.running = false
		s.lastRun = result
		s.mu.Unlock()

		if err != nil {
			logger.Error("api", "run failed: %v", err)
			return
		}

		logger.Info("api", "run completed: %d primes below %d", result.TotalPrimes, result.Max)
		s.broadcast(map[string]any{
			"type":   "run_result",
			"result": result,
		})
	}()

	s.writeJSON(w, map[string]string{"status": "started", "run": runConfig.Name})
}

func (s *Server) handleRunStop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	if !s.running || s.cancelRun == nil {
		s.mu.Unlock()
		http.Error(w, "No run in progress", http.StatusBadRequest)
		return
	}
	cancel := s.cancelRun
	s.mu.Unlock()

	// 投入済みのスライスは完了まで走る。新規投入だけが止まる
	cancel()

	s.writeJSON(w, map[string]string{"status": "stop requested"})
}

// PresetInfo はプリセット情報
type PresetInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var presets []PresetInfo
	for _, name := range runner.ListPresets() {
		preset, _ := runner.GetPreset(name)
		presets = append(presets, PresetInfo{Name: preset.Name, Description: preset.Description})
	}

	s.writeJSON(w, presets)
}

// WebSocket handling
func (s *Server) handleWebSocket(ws *websocket.Conn) {
	s.mu.Lock()
	s.wsClients[ws] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.wsClients, ws)
		s.mu.Unlock()
		_ = ws.Close()
	}()

	// Keep connection alive
	for {
		var msg string
		if err := websocket.Message.Receive(ws, &msg); err != nil {
			break
		}
	}
}

func (s *Server) broadcast(data any) {
	s.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(s.wsClients))
	for ws := range s.wsClients {
		clients = append(clients, ws)
	}
	s.mu.RUnlock()

	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}

	for _, ws := range clients {
		_ = websocket.Message.Send(ws, string(jsonData))
	}
}

// forwardEvents はイベントバスのイベントをWebSocketへ転送する
func (s *Server) forwardEvents(ctx context.Context) {
	ch := s.bus.Subscribe()
	defer s.bus.Unsubscribe(ch)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			s.broadcast(map[string]any{
				"type":  "event",
				"event": event,
			})
		}
	}
}

// broadcastLoop は定期的にステータスを配信する
func (s *Server) broadcastLoop(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.broadcast(map[string]any{
				"type":   "status",
				"status": s.status(),
			})
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("api", "failed to encode response: %v", err)
	}
}
