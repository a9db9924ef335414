package vertexanim

import (
	"log"

	"github.com/Dubnium32x/anim4dc/shared/util"

	"github.com/chewxy/math32"
)

// Advance avança o relógio de playback e escreve o frame interpolado no
// buffer de interpolação. No-op se o sistema não está inicializado, está
// pausado, nenhum clipe está selecionado ou o clipe tem menos de 2 keyframes
// (clipe inerte: o buffer anterior é mantido, sem erro).
//
// O buffer é sobrescrito no lugar a cada chamada; quem precisar reter o
// resultado além do próximo Advance deve copiá-lo.
func (s *System) Advance(deltaTime float32) {
	if !s.initialized || s.paused || s.currentAnim < 0 || s.currentAnim >= len(s.animations) {
		return
	}

	anim := &s.animations[s.currentAnim]
	if len(anim.Keyframes) < 2 || s.interpBuffer == nil {
		return
	}

	// Loop por reset duro: um deltaTime maior que a duração inteira colapsa
	// o relógio para exatamente 0, sem carregar o resto adiante.
	s.currentTime += deltaTime
	if s.currentTime >= anim.Duration {
		s.currentTime = 0
	}

	// Localiza o par de keyframes que delimita o relógio.
	current := 0
	next := 1
	for i := 0; i < len(anim.Keyframes)-1; i++ {
		if s.currentTime >= anim.Keyframes[i].Timestamp && s.currentTime < anim.Keyframes[i+1].Timestamp {
			current = i
			next = i + 1
			break
		}
	}

	// Relógio no último keyframe ou além: interpola de volta ao primeiro
	// para fechar o loop.
	last := len(anim.Keyframes) - 1
	if s.currentTime >= anim.Keyframes[last].Timestamp {
		current = last
		next = 0
	}

	t1 := anim.Keyframes[current].Timestamp
	var t float32
	if next == 0 {
		gap := anim.Duration - t1
		if gap > 0 {
			t = (s.currentTime - t1) / gap
		}
	} else {
		gap := anim.Keyframes[next].Timestamp - t1
		if gap > 0 {
			t = (s.currentTime - t1) / gap
		}
	}
	t = util.Clamp01(t)

	interpolateVertices(s.interpBuffer, anim.Keyframes[current].Vertices, anim.Keyframes[next].Vertices, t)
	s.stats.AnimationUpdates++
}

// interpolateVertices faz lerp componente a componente entre dois buffers.
func interpolateVertices(out, v1, v2 []float32, t float32) {
	for i := range out {
		out[i] = v1[i] + (v2[i]-v1[i])*t
	}
}

// GetInterpolatedVertices retorna o buffer de interpolação, a única fonte de
// vértices exposta aos chamadores. Válido apenas após um bake bem sucedido;
// o conteúdo muda a cada Advance.
func (s *System) GetInterpolatedVertices() []float32 {
	return s.interpBuffer
}

// SelectClip troca o clipe atual pelo índice e zera o relógio.
// Falha sem mudar estado se o índice está fora do intervalo.
func (s *System) SelectClip(index int) bool {
	if !s.initialized || index < 0 || index >= len(s.animations) {
		return false
	}

	s.currentAnim = index
	s.currentTime = 0
	return true
}

// SelectClipByName troca o clipe atual pelo primeiro clipe com o nome dado.
// Falha sem mudar estado se o nome não existe (o clipe anterior segue ativo).
func (s *System) SelectClipByName(name string) bool {
	if !s.initialized || name == "" {
		return false
	}

	for i := range s.animations {
		if s.animations[i].Name == name {
			return s.SelectClip(i)
		}
	}
	log.Printf("[Anim4DC] Clipe %q não encontrado", name)
	return false
}

// GetCurrentClip retorna o índice do clipe selecionado, ou -1.
func (s *System) GetCurrentClip() int {
	return s.currentAnim
}

// GetClockTime retorna o relógio de playback em segundos.
func (s *System) GetClockTime() float32 {
	return s.currentTime
}

// SetClockTime posiciona o relógio para scrubbing, com wrap por resto
// flutuante em [0, duração) e correção para resultados negativos. Política
// distinta do reset duro do Advance.
func (s *System) SetClockTime(t float32) {
	if s.currentAnim < 0 || s.currentAnim >= len(s.animations) {
		return
	}

	duration := s.animations[s.currentAnim].Duration
	if duration <= 0 {
		s.currentTime = 0
		return
	}

	s.currentTime = math32.Mod(t, duration)
	if s.currentTime < 0 {
		s.currentTime += duration
	}
}

// SetPaused pausa ou retoma o playback; pausado, Advance vira no-op.
func (s *System) SetPaused(paused bool) {
	s.paused = paused
}

// Paused informa se o playback está pausado.
func (s *System) Paused() bool {
	return s.paused
}
