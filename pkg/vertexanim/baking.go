package vertexanim

import (
	"log"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// CheckCompatibility verifica se o par modelo/animações pode ser baked em
// keyframes de vértices. Cada falha tem um motivo distinto no log e nenhum
// estado é mutado; o chamador pode cair para renderização estática.
func (s *System) CheckCompatibility(model rl.Model, anims []rl.ModelAnimation) bool {
	if model.MeshCount <= 0 {
		log.Printf("[Anim4DC] ERRO - Modelo sem meshes")
		return false
	}

	if len(anims) == 0 {
		// Não é um erro: o modelo segue como estático.
		log.Printf("[Anim4DC] Modelo carregado como estático (sem animações)")
		return false
	}

	if model.BoneCount <= 0 {
		log.Printf("[Anim4DC] ERRO - Modelo sem ossos")
		return false
	}

	if model.Bones == nil || model.BindPose == nil {
		log.Printf("[Anim4DC] ERRO - Modelo sem hierarquia de ossos/bind pose")
		return false
	}

	// A primeira animação dita a compatibilidade do conjunto.
	anim := anims[0]
	if anim.BoneCount != model.BoneCount {
		log.Printf("[Anim4DC] ERRO - Contagem de ossos divergente! Modelo:%d != Anim:%d",
			model.BoneCount, anim.BoneCount)
		return false
	}

	if anim.Bones == nil || anim.FramePoses == nil {
		log.Printf("[Anim4DC] ERRO - Animação sem dados de pose por frame")
		return false
	}

	// Pelo menos uma mesh precisa carregar atributos de skinning.
	meshes := unsafe.Slice(model.Meshes, model.MeshCount)
	hasSkinning := false
	for i := range meshes {
		if meshes[i].BoneIds != nil && meshes[i].BoneWeights != nil && meshes[i].AnimVertices != nil {
			hasSkinning = true
			break
		}
	}

	if !hasSkinning {
		log.Printf("[Anim4DC] ERRO - Modelo sem dados de skinning (boneIds/boneWeights/animVertices)")
		return false
	}

	log.Printf("[Anim4DC] Verificação de compatibilidade do modelo passou")
	return true
}

// Bake amostra as animações esqueléticas em um passo fixo e produz os clipes
// de keyframes de vértices. Clipes além de MaxAnimations e keyframes além de
// MaxKeyframes são descartados silenciosamente (política de capacidade).
// Em caso de sucesso seleciona o clipe 0 e zera o relógio.
func (s *System) Bake(model rl.Model, anims []rl.ModelAnimation) bool {
	if !s.initialized {
		log.Printf("[Anim4DC] ERRO - Sistema não inicializado")
		return false
	}

	if !s.CheckCompatibility(model, anims) {
		return false
	}

	// Um segundo bake libera os keyframes do anterior antes de popular.
	s.releaseClips()

	animsToBake := len(anims)
	if animsToBake > s.cfg.MaxAnimations {
		log.Printf("[Anim4DC] %d animações excedem o máximo de %d; excedente ignorado",
			len(anims), s.cfg.MaxAnimations)
		animsToBake = s.cfg.MaxAnimations
	}

	meshes := unsafe.Slice(model.Meshes, model.MeshCount)
	vertexCount := meshes[0].VertexCount
	if vertexCount <= 0 {
		log.Printf("[Anim4DC] ERRO - Mesh 0 sem vértices")
		return false
	}
	s.vertexCount = vertexCount
	s.animations = make([]VertexAnimation, 0, animsToBake)

	for a := 0; a < animsToBake; a++ {
		skelAnim := anims[a]
		vertAnim := VertexAnimation{
			Name:     s.clipName(a),
			Duration: float32(skelAnim.FrameCount) / s.cfg.SampleRate,
			Looping:  true,
		}

		log.Printf("[Anim4DC] Baking animação %d: %s (%d frames)", a, vertAnim.Name, skelAnim.FrameCount)

		// Passo de captura: compromisso fixo de memória × fidelidade, sem
		// adaptação à complexidade do movimento.
		stride := s.cfg.StrideShort
		if skelAnim.FrameCount > s.cfg.StrideThreshold {
			stride = s.cfg.StrideLong
		}

		for frame := int32(0); frame < skelAnim.FrameCount; frame += stride {
			s.evaluator(model, skelAnim, frame)

			if meshes[0].AnimVertices == nil {
				continue
			}
			animVerts := unsafe.Slice(meshes[0].AnimVertices, int(vertexCount)*3)
			timestamp := float32(frame) / s.cfg.SampleRate
			vertAnim.captureKeyframe(timestamp, animVerts, vertexCount, s.cfg.MaxKeyframes)
		}

		log.Printf("[Anim4DC] %d keyframes baked para %s", len(vertAnim.Keyframes), vertAnim.Name)
		s.animations = append(s.animations, vertAnim)
	}

	s.interpBuffer = make([]float32, vertexCount*3)

	s.currentAnim = 0
	s.currentTime = 0

	s.stats.MemoryUsageBytes = s.ComputeMemoryUsage()
	if s.stats.MemoryUsageBytes > s.cfg.MemoryBudgetBytes {
		log.Printf("[Anim4DC] AVISO - Uso de memória %d bytes excede o orçamento de %d bytes",
			s.stats.MemoryUsageBytes, s.cfg.MemoryBudgetBytes)
	}
	log.Printf("[Anim4DC] Baking de vértices completo! Usando %d KB de memória",
		s.stats.MemoryUsageBytes/1024)

	return true
}

// clipName resolve o nome do clipe pelo pool configurado, truncado ao
// comprimento máximo. Índices além do pool recebem "Unknown".
func (s *System) clipName(index int) string {
	name := "Unknown"
	if index < len(s.cfg.AnimationNames) {
		name = s.cfg.AnimationNames[index]
	}
	if s.cfg.MaxNameLength > 0 && len(name) > s.cfg.MaxNameLength {
		name = name[:s.cfg.MaxNameLength]
	}
	return name
}
