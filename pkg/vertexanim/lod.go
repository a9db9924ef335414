package vertexanim

import (
	"github.com/Dubnium32x/anim4dc/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// LodLevel classifica uma instância pela distância da câmera.
type LodLevel int

const (
	LodNear LodLevel = iota // Detalhe completo, velocidade de animação cheia
	LodMid                  // Taxa de animação reduzida
	LodFar                  // Animação mínima
	LodFrozen               // Animação congelada (nunca atribuído por distância; reservado para congelamento manual)
	LodCulled               // Não renderizado
)

// Speed retorna o multiplicador consultivo de deltaTime para o nível.
// O chamador escala o deltaTime antes de chamar Advance; o classificador
// nunca avança relógio algum. Frozen e Culled retornam 0.
func (l LodLevel) Speed() float32 {
	switch l {
	case LodNear:
		return 1.0
	case LodMid:
		return 0.5
	case LodFar:
		return 0.25
	default:
		return 0.0
	}
}

// String retorna o nome do nível para HUDs de debug.
func (l LodLevel) String() string {
	switch l {
	case LodNear:
		return "NEAR"
	case LodMid:
		return "MID"
	case LodFar:
		return "FAR"
	case LodFrozen:
		return "FROZEN"
	case LodCulled:
		return "CULLED"
	}
	return "?"
}

// ModelInstance é uma instância do modelo para renderização em lote com LOD.
// O slice de instâncias pertence ao chamador; o classificador só lê o
// transform e escreve os campos derivados (LodLevel, Visible,
// DistanceSquared). Todas as instâncias compartilham o buffer interpolado do
// System, somente leitura.
type ModelInstance struct {
	Position        rl.Vector3
	Rotation        rl.Vector3 // Ângulos de Euler em graus
	Scale           float32    // Escala uniforme
	AnimationIndex  int        // Qual animação tocar (-1 = nenhuma)
	AnimationTime   float32
	LodLevel        LodLevel
	Visible         bool
	DistanceSquared float32
}

// ClassifyInstances calcula a distância quadrada de cada instância à câmera,
// atribui o nível LOD e marca visibilidade, acumulando os totais de visíveis
// e descartadas nas estatísticas. Limiares em distância quadrada para evitar
// a raiz. Instâncias já congeladas manualmente (LodFrozen) dentro do alcance
// de cull permanecem congeladas e visíveis.
func (s *System) ClassifyInstances(instances []ModelInstance, cameraPosition rl.Vector3) {
	near2 := s.cfg.LODNearDist * s.cfg.LODNearDist
	mid2 := s.cfg.LODMidDist * s.cfg.LODMidDist
	cull2 := s.cfg.LODCullDist * s.cfg.LODCullDist

	s.stats.VisibleInstances = 0
	s.stats.CulledInstances = 0

	for i := range instances {
		inst := &instances[i]
		inst.DistanceSquared = util.DistSq(inst.Position, cameraPosition)

		frozen := inst.LodLevel == LodFrozen

		switch {
		case inst.DistanceSquared > cull2:
			inst.LodLevel = LodCulled
			inst.Visible = false
			s.stats.CulledInstances++
			continue
		case frozen:
			// Mantém o congelamento manual.
		case inst.DistanceSquared > mid2:
			inst.LodLevel = LodFar
		case inst.DistanceSquared > near2:
			inst.LodLevel = LodMid
		default:
			inst.LodLevel = LodNear
		}
		inst.Visible = true
		s.stats.VisibleInstances++
	}
}
