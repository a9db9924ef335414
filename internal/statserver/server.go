// Package statserver expõe as estatísticas do sistema de animação por
// WebSocket, para overlays de debug externos. Diagnóstico puro: nenhum
// estado do núcleo é mutado por aqui.
package statserver

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/Dubnium32x/anim4dc/pkg/vertexanim"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StatsFunc retorna o snapshot de estatísticas a ser transmitido.
// Chamada na goroutine do servidor: precisa ser segura para chamadas
// concorrentes (o demo entrega uma cópia protegida por mutex própria,
// atualizada uma vez por frame pelo loop principal).
type StatsFunc func() vertexanim.Stats

// Server transmite snapshots periódicos de Stats para todos os clientes
// WebSocket conectados.
type Server struct {
	addr     string
	interval time.Duration
	statsFn  StatsFunc

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	done    chan struct{}
}

// New cria um servidor de estatísticas em addr (ex.: ":8090").
func New(addr string, interval time.Duration, statsFn StatsFunc) *Server {
	return &Server{
		addr:     addr,
		interval: interval,
		statsFn:  statsFn,
		clients:  make(map[*websocket.Conn]bool),
		done:     make(chan struct{}),
	}
}

// Start sobe o servidor HTTP e o loop de broadcast em goroutines próprias.
func (s *Server) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/stats", s.handleStats)

	go func() {
		log.Printf("[StatServer] Escutando em %s/stats", s.addr)
		if err := http.ListenAndServe(s.addr, mux); err != nil {
			log.Printf("[StatServer] Servidor encerrado: %v", err)
		}
	}()

	go s.broadcastLoop()
}

// Stop encerra o loop de broadcast e derruba as conexões ativas.
func (s *Server) Stop() {
	close(s.done)

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		conn.Close()
		delete(s.clients, conn)
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[StatServer] Falha no upgrade: %v", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()
	log.Printf("[StatServer] Cliente registrado: %s", conn.RemoteAddr())

	// Drena (e ignora) mensagens do cliente até a conexão cair.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.mu.Lock()
				if s.clients[conn] {
					delete(s.clients, conn)
					conn.Close()
					log.Printf("[StatServer] Cliente desregistrado: %s", conn.RemoteAddr())
				}
				s.mu.Unlock()
				return
			}
		}
	}()
}

func (s *Server) broadcastLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.broadcast()
		}
	}
}

func (s *Server) broadcast() {
	payload, err := json.Marshal(s.statsFn())
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			delete(s.clients, conn)
			conn.Close()
		}
	}
}
