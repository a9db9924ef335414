package vertexanim

import (
	"log"

	"github.com/Dubnium32x/anim4dc/shared/config"
	"github.com/Dubnium32x/anim4dc/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PoseEvaluator aplica a pose de um frame da animação esquelética no modelo,
// escrevendo as posições animadas em AnimVertices da mesh 0.
// A implementação padrão delega para o raylib; os testes injetam um stub.
type PoseEvaluator func(model rl.Model, anim rl.ModelAnimation, frame int32)

// Stats agrega os contadores de desempenho do sistema.
type Stats struct {
	VisibleInstances int `json:"visible_instances"`
	CulledInstances  int `json:"culled_instances"`
	AnimationUpdates int `json:"animation_updates"`
	MemoryUsageBytes int `json:"memory_usage_bytes"`
}

// System é o estado vivo de animação de exatamente um modelo: os clipes
// baked, o clipe selecionado, o relógio de playback e o buffer reutilizável
// de interpolação. O System é dono exclusivo de todos os buffers de keyframe
// e do buffer de interpolação.
//
// Todas as operações rodam em uma única thread de controle por frame, na
// ordem: Advance → ClassifyInstances → GetInterpolatedVertices → render.
// Nenhuma sincronização interna; o chamador serializa.
type System struct {
	cfg *config.Config

	animations   []VertexAnimation
	currentAnim  int // -1 = nenhum clipe selecionado
	currentTime  float32
	interpBuffer []float32
	vertexCount  int32
	initialized  bool
	paused       bool

	evaluator PoseEvaluator
	stats     Stats
}

// New cria um sistema de animação usando a configuração dada.
// Passar nil usa a configuração padrão.
func New(cfg *config.Config) *System {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &System{
		cfg:         cfg,
		currentAnim: -1,
		evaluator: func(model rl.Model, anim rl.ModelAnimation, frame int32) {
			rl.UpdateModelAnimation(model, anim, frame)
		},
	}
}

// Init prepara o sistema para uso. Chamar Init em um sistema já inicializado
// descarta qualquer estado anterior.
func (s *System) Init() bool {
	if s.initialized {
		s.Shutdown()
	}

	s.animations = nil
	s.currentAnim = -1
	s.currentTime = 0
	s.interpBuffer = nil
	s.vertexCount = 0
	s.paused = false
	s.stats = Stats{}
	s.initialized = true

	log.Printf("[Anim4DC] Sistema inicializado (max %d animações, %d keyframes cada)",
		s.cfg.MaxAnimations, s.cfg.MaxKeyframes)
	return true
}

// Shutdown libera todos os buffers de keyframe e o buffer de interpolação e
// zera o estado. Idempotente.
func (s *System) Shutdown() {
	if !s.initialized {
		return
	}

	// Solta as referências explicitamente para que nenhum keyframe sobreviva
	// a um ciclo de shutdown/re-bake na contabilidade de memória.
	for a := range s.animations {
		for k := range s.animations[a].Keyframes {
			s.animations[a].Keyframes[k].Vertices = nil
		}
		s.animations[a].Keyframes = nil
	}
	s.animations = nil
	s.interpBuffer = nil
	s.currentAnim = -1
	s.currentTime = 0
	s.vertexCount = 0
	s.paused = false
	s.stats = Stats{}
	s.initialized = false

	log.Printf("[Anim4DC] Shutdown completo")
}

// Initialized informa se o sistema está pronto para baking/playback.
func (s *System) Initialized() bool {
	return s.initialized
}

// SetPoseEvaluator substitui o avaliador de pose esquelética usado no baking.
func (s *System) SetPoseEvaluator(eval PoseEvaluator) {
	if eval != nil {
		s.evaluator = eval
	}
}

// AnimationCount retorna o número de clipes baked.
func (s *System) AnimationCount() int {
	return len(s.animations)
}

// Animation retorna o clipe no índice dado, ou nil se fora do intervalo.
func (s *System) Animation(index int) *VertexAnimation {
	if index < 0 || index >= len(s.animations) {
		return nil
	}
	return &s.animations[index]
}

// Animations retorna os clipes baked. O slice pertence ao System e não deve
// ser mutado; exposto para o cache de bake serializar.
func (s *System) Animations() []VertexAnimation {
	return s.animations
}

// VertexCount retorna o número de vértices fixado no bake.
func (s *System) VertexCount() int32 {
	return s.vertexCount
}

// RestoreClips popula o sistema com clipes vindos do cache de bake,
// dispensando o re-baking. Substitui qualquer estado anterior de clipes.
func (s *System) RestoreClips(clips []VertexAnimation, vertexCount int32) bool {
	if !s.initialized {
		log.Printf("[Anim4DC] ERRO - RestoreClips em sistema não inicializado")
		return false
	}
	if len(clips) == 0 || vertexCount <= 0 {
		log.Printf("[Anim4DC] ERRO - RestoreClips sem clipes ou vértices (%d clipes, %d vértices)",
			len(clips), vertexCount)
		return false
	}

	// Dados vindos do disco não são confiáveis: um buffer de keyframe com
	// tamanho errado estouraria o lerp do playback. Valida tudo antes de
	// descartar qualquer estado existente.
	for c := range clips {
		for k := range clips[c].Keyframes {
			if len(clips[c].Keyframes[k].Vertices) != int(vertexCount)*3 {
				log.Printf("[Anim4DC] ERRO - Keyframe %d do clipe %q com %d floats, esperado %d",
					k, clips[c].Name, len(clips[c].Keyframes[k].Vertices), int(vertexCount)*3)
				return false
			}
		}
	}

	s.releaseClips()

	clips = clips[:util.Min(len(clips), s.cfg.MaxAnimations)]
	s.animations = clips
	s.vertexCount = vertexCount
	s.interpBuffer = make([]float32, vertexCount*3)
	s.currentAnim = 0
	s.currentTime = 0

	s.stats.MemoryUsageBytes = s.ComputeMemoryUsage()
	log.Printf("[Anim4DC] %d clipes restaurados do cache (%d vértices)", len(clips), vertexCount)
	return true
}

// releaseClips descarta os clipes e o buffer de interpolação antes de um
// novo bake, evitando que a contabilidade some buffers mortos.
func (s *System) releaseClips() {
	for a := range s.animations {
		s.animations[a].Keyframes = nil
	}
	s.animations = nil
	s.interpBuffer = nil
	s.vertexCount = 0
	s.currentAnim = -1
	s.currentTime = 0
}

// ComputeMemoryUsage soma os bytes de todos os keyframes vivos mais o buffer
// de interpolação, se alocado. Puramente observacional: exceder o orçamento
// nunca rejeita um bake.
func (s *System) ComputeMemoryUsage() int {
	total := 0
	for a := range s.animations {
		total += s.animations[a].MemoryBytes()
	}
	total += len(s.interpBuffer) * 4
	return total
}

// GetStats retorna um snapshot dos contadores de desempenho. O uso de
// memória é calculado na cópia retornada; o estado interno não é mutado
// aqui, chamar GetStats é uma leitura pura.
func (s *System) GetStats() Stats {
	stats := s.stats
	stats.MemoryUsageBytes = s.ComputeMemoryUsage()
	return stats
}
