package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"shanzai-server/internal/engine"
	"shanzai-server/internal/network"
	"shanzai-server/internal/version"
	"shanzai-server/pkg/api"
	"shanzai-server/pkg/logger"
)

// Server - внешний HTTP слой над движком. Ядро однопоточное, поэтому
// все обращения к нему сериализуются одним мьютексом.
type Server struct {
	Engine *engine.GameService
	Hub    *network.Broadcaster
	Port   string

	mu sync.Mutex
}

func New(engine *engine.GameService, port string) *Server {
	return &Server{
		Engine: engine,
		Hub:    network.NewBroadcaster(),
		Port:   port,
	}
}

// Run запускает HTTP сервер
func (s *Server) Run() error {
	mux := http.NewServeMux()

	// Регистрируем роуты
	mux.HandleFunc("/state", enableCORS(s.handleState))
	mux.HandleFunc("/command", enableCORS(s.handleCommand))
	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	logger.Log.Infof("🀄 Tiny Shanzai Rogue server running on :%s", s.Port)
	return http.ListenAndServe(":"+s.Port, mux)
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// handleState отдает полный снимок текущего состояния
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := s.Engine.BuildSnapshot()
	s.mu.Unlock()

	writeJSON(w, snap)
}

// handleCommand применяет одну команду игрока и отдает новый снимок.
// Мертвый игрок получает новую игру вместо хода; "restart" перезапускает явно.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var cmd api.ClientCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	switch {
	case s.Engine.State.GameOver():
		// Команда после смерти не применяется: сразу новая игра.
		s.Engine.Restart()
	case cmd.Command == "restart":
		s.Engine.Restart()
	default:
		s.Engine.ProcessCommand(cmd)
	}
	snap := s.Engine.BuildSnapshot()
	s.mu.Unlock()

	s.Hub.Broadcast(snap)
	writeJSON(w, snap)
}

// handleWS подключает зрителя по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("Upgrade error:", err)
		return
	}

	client := NewClient(s, conn)

	// Запускаем пампы
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, version.Info())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.WithError(err).Warn("failed to encode response")
	}
}
