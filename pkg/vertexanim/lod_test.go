package vertexanim

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestClassifyInstancesBoundaries(t *testing.T) {
	// Distâncias quadradas exatas nos limites da tabela LOD. Componentes
	// inteiros pequenos mantêm a aritmética float32 exata (80²+1² = 6401 etc).
	tests := []struct {
		name        string
		position    rl.Vector3
		wantD2      float32
		wantLevel   LodLevel
		wantVisible bool
	}{
		{"origem", rl.Vector3{}, 0, LodNear, true},
		{"limite near (80²)", rl.Vector3{X: 80}, 6400, LodNear, true},
		{"logo além do near", rl.Vector3{X: 80, Y: 1}, 6401, LodMid, true},
		{"limite mid (120²)", rl.Vector3{X: 120}, 14400, LodMid, true},
		{"logo além do mid", rl.Vector3{X: 120, Y: 1}, 14401, LodFar, true},
		{"limite cull (200²)", rl.Vector3{X: 200}, 40000, LodFar, true},
		{"logo além do cull", rl.Vector3{X: 200, Y: 1}, 40001, LodCulled, false},
	}

	s := New(nil)
	s.Init()

	for _, tt := range tests {
		instances := []ModelInstance{{Position: tt.position, Scale: 1}}
		s.ClassifyInstances(instances, rl.Vector3{})

		inst := instances[0]
		if inst.DistanceSquared != tt.wantD2 {
			t.Errorf("%s: DistanceSquared = %v, want %v", tt.name, inst.DistanceSquared, tt.wantD2)
		}
		if inst.LodLevel != tt.wantLevel {
			t.Errorf("%s: LodLevel = %v, want %v", tt.name, inst.LodLevel, tt.wantLevel)
		}
		if inst.Visible != tt.wantVisible {
			t.Errorf("%s: Visible = %v, want %v", tt.name, inst.Visible, tt.wantVisible)
		}
	}
}

func TestClassifyInstancesTallies(t *testing.T) {
	s := New(nil)
	s.Init()

	instances := []ModelInstance{
		{Position: rl.Vector3{X: 10}},          // NEAR
		{Position: rl.Vector3{X: 100}},         // MID
		{Position: rl.Vector3{X: 150}},         // FAR
		{Position: rl.Vector3{X: 500}},         // CULLED
		{Position: rl.Vector3{X: 500, Z: 500}}, // CULLED
	}
	s.ClassifyInstances(instances, rl.Vector3{})

	stats := s.GetStats()
	if stats.VisibleInstances != 3 {
		t.Errorf("VisibleInstances = %d, want 3", stats.VisibleInstances)
	}
	if stats.CulledInstances != 2 {
		t.Errorf("CulledInstances = %d, want 2", stats.CulledInstances)
	}

	// Reclassificar zera os totais em vez de acumular entre frames.
	s.ClassifyInstances(instances[:1], rl.Vector3{})
	stats = s.GetStats()
	if stats.VisibleInstances != 1 || stats.CulledInstances != 0 {
		t.Errorf("totais não zeraram: %d visíveis, %d culled", stats.VisibleInstances, stats.CulledInstances)
	}
}

func TestClassifyInstancesFrozen(t *testing.T) {
	s := New(nil)
	s.Init()

	// Congelamento manual sobrevive à classificação dentro do alcance...
	instances := []ModelInstance{{Position: rl.Vector3{X: 10}, LodLevel: LodFrozen}}
	s.ClassifyInstances(instances, rl.Vector3{})
	if instances[0].LodLevel != LodFrozen || !instances[0].Visible {
		t.Errorf("congelado perto: LodLevel = %v, Visible = %v", instances[0].LodLevel, instances[0].Visible)
	}

	// ...mas o culling por distância ainda se aplica.
	instances[0].Position = rl.Vector3{X: 500}
	s.ClassifyInstances(instances, rl.Vector3{})
	if instances[0].LodLevel != LodCulled || instances[0].Visible {
		t.Errorf("congelado longe: LodLevel = %v, Visible = %v", instances[0].LodLevel, instances[0].Visible)
	}
}

func TestLodSpeed(t *testing.T) {
	tests := []struct {
		level LodLevel
		want  float32
	}{
		{LodNear, 1.0},
		{LodMid, 0.5},
		{LodFar, 0.25},
		{LodFrozen, 0.0},
		{LodCulled, 0.0},
	}

	for _, tt := range tests {
		if got := tt.level.Speed(); got != tt.want {
			t.Errorf("%v.Speed() = %v, want %v", tt.level, got, tt.want)
		}
	}
}
