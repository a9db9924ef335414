package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/chewxy/math32"

	"github.com/Dubnium32x/anim4dc/demo/internal/camera"
	"github.com/Dubnium32x/anim4dc/internal/bakecache"
	"github.com/Dubnium32x/anim4dc/internal/statserver"
	"github.com/Dubnium32x/anim4dc/pkg/vertexanim"
	"github.com/Dubnium32x/anim4dc/shared/config"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// App é o demo principal: carrega o modelo da raposa, faz o bake das
// animações por vértice e renderiza um anel de instâncias com LOD.
type App struct {
	Config *config.Config

	Cam  *camera.Controller
	Anim *vertexanim.System

	model     rl.Model
	modelPath string
	clipNames []string

	instances []vertexanim.ModelInstance

	cache *bakecache.Cache
	stats *statserver.Server

	// Última cópia de Stats tirada pelo loop principal. O System não tem
	// sincronização interna; a goroutine do servidor só lê esta cópia.
	statsMu   sync.Mutex
	lastStats vertexanim.Stats

	initialized bool
	status      string

	frameTime  float32
	frameCount int
	fps        float32
}

// New cria uma nova instância do demo.
func New(cfg *config.Config) *App {
	return &App{
		Config: cfg,
		status: "Carregando...",
	}
}

// Run inicia o loop principal do demo.
func (a *App) Run(modelBase string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Erro fatal recuperado: %v", r)
			panic(r)
		}
	}()

	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(a.Config.WindowWidth, a.Config.WindowHeight, a.Config.WindowTitle)
	rl.SetTraceLogLevel(rl.LogWarning)

	if a.Config.Fullscreen {
		rl.ToggleFullscreen()
	}
	rl.SetTargetFPS(a.Config.TargetFPS)

	a.Cam = camera.New(200.0)

	a.Anim = vertexanim.New(a.Config)
	if !a.Anim.Init() {
		log.Println("[App] Falha ao inicializar o sistema de animação")
		rl.CloseWindow()
		return
	}

	a.openCache()
	a.loadModel(modelBase)

	if a.initialized {
		a.initInstances()
		a.status = "Pronto - ESPAÇO troca a animação"
	}

	if a.Config.StatsAddr != "" {
		a.stats = statserver.New(a.Config.StatsAddr, time.Second, a.statsSnapshot)
		a.stats.Start()
	}

	for !rl.WindowShouldClose() {
		a.update()
		a.draw()
	}

	a.shutdown()
	rl.CloseWindow()
}

// openCache abre o cache de bakes em SQLite. Falha aqui não é fatal:
// o demo simplesmente refaz o bake a cada execução.
func (a *App) openCache() {
	cache, err := bakecache.Open(a.Config.CacheDir)
	if err != nil {
		log.Printf("[App] Cache de bakes indisponível: %v", err)
		return
	}
	a.cache = cache
}

// loadModel carrega o modelo com fallback de formato e prepara os clipes,
// restaurando do cache quando existir um bake válido para o arquivo.
func (a *App) loadModel(basePath string) {
	model, usedPath := vertexanim.LoadModelWithFallback(basePath)
	if model.MeshCount == 0 {
		log.Printf("[App] ERRO - Falha ao carregar o modelo: %s", basePath)
		a.status = "ERRO: modelo não carregado"
		return
	}
	a.model = model
	a.modelPath = usedPath

	key := bakecache.ModelKey(usedPath)
	if a.cache != nil {
		clips, vertexCount, err := a.cache.LoadBake(key)
		if err == nil && a.Anim.RestoreClips(clips, vertexCount) {
			log.Printf("[App] Bake restaurado do cache (%d clipes)", len(clips))
			a.collectClipNames()
			a.initialized = true
			return
		}
	}

	anims := rl.LoadModelAnimations(usedPath)
	if len(anims) == 0 {
		log.Printf("[App] ERRO - Nenhuma animação encontrada em %s", usedPath)
		a.status = "ERRO: modelo sem animações"
		return
	}

	if !a.Anim.Bake(a.model, anims) {
		log.Println("[App] ERRO - Falha no bake das animações")
		a.status = "ERRO: bake falhou"
		return
	}
	a.collectClipNames()
	a.initialized = true

	if a.cache != nil {
		if err := a.cache.SaveBake(key, a.Anim.VertexCount(), a.Anim.Animations()); err != nil {
			log.Printf("[App] Falha ao gravar o bake no cache: %v", err)
		}
	}
}

func (a *App) collectClipNames() {
	a.clipNames = a.clipNames[:0]
	for _, clip := range a.Anim.Animations() {
		a.clipNames = append(a.clipNames, clip.Name)
	}
}

// initInstances posiciona as instâncias em círculo, com os relógios
// defasados para as animações não ficarem em sincronia perfeita.
func (a *App) initInstances() {
	count := a.Config.MaxInstances
	a.instances = make([]vertexanim.ModelInstance, count)

	const radius = 80.0
	for i := range a.instances {
		angle := 2.0 * math32.Pi * float32(i) / float32(count)
		a.instances[i] = vertexanim.ModelInstance{
			Position: rl.Vector3{
				X: math32.Cos(angle) * radius,
				Y: 0,
				Z: math32.Sin(angle) * radius,
			},
			Rotation:       rl.Vector3{Y: angle*rl.Rad2deg + 90.0},
			Scale:          1.0,
			AnimationIndex: 0,
			AnimationTime:  float32(i) * 0.1,
			LodLevel:       vertexanim.LodNear,
			Visible:        true,
		}
	}
	log.Printf("[App] %d instâncias inicializadas", count)
}

// update processa entrada e avança a simulação um frame.
func (a *App) update() {
	dt := rl.GetFrameTime()

	a.frameTime += dt
	a.frameCount++
	if a.frameTime >= 1.0 {
		a.fps = float32(a.frameCount) / a.frameTime
		a.frameTime = 0
		a.frameCount = 0
	}

	a.handleInput()

	a.Cam.HandleInput(dt)
	a.Cam.Update(dt)

	if !a.initialized {
		return
	}

	a.Anim.ClassifyInstances(a.instances, a.Cam.RLCamera.Position)

	// O relógio é compartilhado entre as instâncias, então a velocidade
	// usada é a do melhor LOD visível neste frame.
	a.Anim.Advance(dt * a.bestLodSpeed())

	a.statsMu.Lock()
	a.lastStats = a.Anim.GetStats()
	a.statsMu.Unlock()
}

// statsSnapshot devolve a cópia de Stats do último frame, protegida por
// mutex. É o que o servidor de estatísticas consome da goroutine dele.
func (a *App) statsSnapshot() vertexanim.Stats {
	a.statsMu.Lock()
	defer a.statsMu.Unlock()
	return a.lastStats
}

// bestLodSpeed retorna o multiplicador de velocidade da instância visível
// mais próxima da câmera. Sem instâncias visíveis, congela o relógio.
func (a *App) bestLodSpeed() float32 {
	best := vertexanim.LodCulled
	bestDist := float32(math32.MaxFloat32)
	for i := range a.instances {
		if !a.instances[i].Visible {
			continue
		}
		if a.instances[i].DistanceSquared < bestDist {
			bestDist = a.instances[i].DistanceSquared
			best = a.instances[i].LodLevel
		}
	}
	return best.Speed()
}

// handleInput trata os atalhos do demo.
func (a *App) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) && len(a.clipNames) > 0 {
		next := (a.Anim.GetCurrentClip() + 1) % len(a.clipNames)
		name := a.clipNames[next]
		if a.Anim.SelectClipByName(name) {
			for i := range a.instances {
				a.instances[i].AnimationIndex = next
			}
			a.status = "Animação: " + name
		}
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		a.Config.ShowDebugInfo = !a.Config.ShowDebugInfo
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.Anim.SetPaused(!a.Anim.Paused())
	}
}

// draw renderiza o frame atual.
func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.SkyBlue)

	rl.BeginMode3D(a.Cam.RLCamera)
	rl.DrawGrid(20, 10.0)

	if a.initialized {
		a.Anim.RenderInstances(a.model, a.instances)
	}
	rl.EndMode3D()

	a.drawHUD()
	rl.EndDrawing()
}

// drawHUD desenha o overlay de texto.
func (a *App) drawHUD() {
	rl.DrawText(a.status, 10, a.Config.WindowHeight-30, 18, rl.Yellow)

	if !a.Config.ShowDebugInfo {
		return
	}

	stats := a.Anim.GetStats()
	clip := "-"
	if idx := a.Anim.GetCurrentClip(); idx >= 0 && idx < len(a.clipNames) {
		clip = a.clipNames[idx]
	}

	text := fmt.Sprintf(
		"Anim4DC Fox Demo\n"+
			"FPS: %.1f | Instâncias: %d\n"+
			"Visíveis: %d | Descartadas: %d\n"+
			"Animação: %s (%.2fs)\n"+
			"Memória: %d KB\n"+
			"ESPAÇO=Animação  F1=Debug  P=Pausa",
		a.fps, len(a.instances),
		stats.VisibleInstances, stats.CulledInstances,
		clip, a.Anim.GetClockTime(),
		stats.MemoryUsageBytes/1024,
	)
	rl.DrawText(text, 10, 10, 16, rl.White)
}

// shutdown libera recursos e salva as configurações.
func (a *App) shutdown() {
	log.Println("[App] Finalizando demo...")

	if a.stats != nil {
		a.stats.Stop()
	}
	if a.cache != nil {
		a.cache.Close()
	}

	a.Anim.Shutdown()
	if a.model.MeshCount > 0 {
		rl.UnloadModel(a.model)
	}

	if err := a.Config.Save(); err != nil {
		log.Printf("[App] Erro ao salvar configurações: %v", err)
	}
}
