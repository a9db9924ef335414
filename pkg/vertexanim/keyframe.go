// Package vertexanim implementa o sistema de animação Anim4DC: baking de
// animações esqueléticas em keyframes de vértices, playback interpolado e
// classificação LOD por distância.
//
// O hardware alvo não comporta skinning por matriz de ossos a cada frame;
// o baking troca um custo único de CPU/memória por um playback muito mais
// barato (lerp entre dois snapshots de vértices).
package vertexanim

// Keyframe é um snapshot dos vértices animados em um instante do clipe.
// Vertices guarda as posições em sequência x,y,z (len = VertexCount*3).
type Keyframe struct {
	Vertices    []float32
	VertexCount int32
	Timestamp   float32 // Segundos desde o início do clipe
}

// MemoryBytes retorna os bytes ocupados pelo buffer de vértices.
func (k *Keyframe) MemoryBytes() int {
	return len(k.Vertices) * 4
}

// VertexAnimation é um clipe nomeado de keyframes em ordem cronológica.
// Criado uma única vez durante o baking; nunca mutado depois, exceto por um
// re-bake completo.
type VertexAnimation struct {
	Name      string
	Keyframes []Keyframe
	Duration  float32 // Segundos
	Looping   bool
}

// captureKeyframe anexa um snapshot copiado de vertexData ao clipe.
// Keyframes além de maxKeyframes são descartados silenciosamente: limite de
// capacidade, não um erro.
func (a *VertexAnimation) captureKeyframe(timestamp float32, vertexData []float32, vertexCount int32, maxKeyframes int) {
	if len(a.Keyframes) >= maxKeyframes {
		return
	}

	buf := make([]float32, vertexCount*3)
	copy(buf, vertexData)

	a.Keyframes = append(a.Keyframes, Keyframe{
		Vertices:    buf,
		VertexCount: vertexCount,
		Timestamp:   timestamp,
	})
}

// MemoryBytes retorna os bytes ocupados por todos os keyframes do clipe.
func (a *VertexAnimation) MemoryBytes() int {
	total := 0
	for i := range a.Keyframes {
		total += a.Keyframes[i].MemoryBytes()
	}
	return total
}
