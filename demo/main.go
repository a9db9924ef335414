package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/Dubnium32x/anim4dc/demo/internal/app"
	"github.com/Dubnium32x/anim4dc/shared/config"
)

func main() {
	// IMPORTANTE para estabilidade: Raylib/OpenGL exige rodar na thread principal do SO
	runtime.LockOSThread()

	// Flags de linha de comando
	modelBase := flag.String("model", "assets/Fox", "Caminho base do modelo (sem extensão, tenta .gltf/.glb/.iqm/.obj)")
	instances := flag.Int("instances", 0, "Número de instâncias (padrão: valor do config)")
	statsAddr := flag.String("stats", "", "Endereço do servidor de estatísticas WebSocket (ex.: :8090)")
	cacheDir := flag.String("cache", "", "Diretório do cache de bakes em SQLite")
	debug := flag.Bool("debug", false, "Mostrar informações de debug")
	flag.Parse()

	// Configurar Log em Arquivo
	f, err := os.OpenFile("debug_anim4dc.log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err == nil {
		log.SetOutput(f)
		log.Println("--- INICIANDO ANIM4DC FOX DEMO ---")
	}

	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Println("╔══════════════════════════════════════╗")
	log.Println("║          Anim4DC Fox Demo            ║")
	log.Println("║  Animação por vértices estilo DC     ║")
	log.Println("╚══════════════════════════════════════╝")

	// Carregar configurações
	cfg := config.Load()

	// Aplicar flags de linha de comando (sobrescrevem o config salvo)
	if *instances > 0 {
		cfg.MaxInstances = *instances
	}
	if *statsAddr != "" {
		cfg.StatsAddr = *statsAddr
	}
	if *cacheDir != "" {
		cfg.CacheDir = *cacheDir
	}
	if *debug {
		cfg.ShowDebugInfo = true
	}

	// Criar e rodar o demo
	demo := app.New(cfg)
	demo.Run(*modelBase)
}
