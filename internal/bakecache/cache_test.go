package bakecache

import (
	"errors"
	"testing"

	"github.com/Dubnium32x/anim4dc/pkg/vertexanim"

	"gorm.io/gorm"
)

func testClips() []vertexanim.VertexAnimation {
	kf := func(ts float32, base float32) vertexanim.Keyframe {
		return vertexanim.Keyframe{
			Vertices:    []float32{base, base + 1, base + 2, base + 3, base + 4, base + 5},
			VertexCount: 2,
			Timestamp:   ts,
		}
	}
	return []vertexanim.VertexAnimation{
		{Name: "Survey", Keyframes: []vertexanim.Keyframe{kf(0, 0), kf(0.4, 10)}, Duration: 1.0, Looping: true},
		{Name: "Walk", Keyframes: []vertexanim.Keyframe{kf(0, 20), kf(0.4, 30), kf(0.8, 40)}, Duration: 2.0, Looping: true},
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	cache, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer cache.Close()

	clips := testClips()
	if err := cache.SaveBake("fox@123", 2, clips); err != nil {
		t.Fatalf("SaveBake: %v", err)
	}

	loaded, vertexCount, err := cache.LoadBake("fox@123")
	if err != nil {
		t.Fatalf("LoadBake: %v", err)
	}
	if vertexCount != 2 {
		t.Errorf("vertexCount = %d, want 2", vertexCount)
	}
	if len(loaded) != len(clips) {
		t.Fatalf("clipes carregados = %d, want %d", len(loaded), len(clips))
	}

	for i := range clips {
		if loaded[i].Name != clips[i].Name || loaded[i].Duration != clips[i].Duration || loaded[i].Looping != clips[i].Looping {
			t.Errorf("clipe %d: metadados divergentes: %+v", i, loaded[i])
		}
		if len(loaded[i].Keyframes) != len(clips[i].Keyframes) {
			t.Fatalf("clipe %d: keyframes = %d, want %d", i, len(loaded[i].Keyframes), len(clips[i].Keyframes))
		}
		for k := range clips[i].Keyframes {
			want := clips[i].Keyframes[k]
			got := loaded[i].Keyframes[k]
			if got.Timestamp != want.Timestamp || got.VertexCount != want.VertexCount {
				t.Errorf("clipe %d keyframe %d: %+v, want %+v", i, k, got, want)
			}
			for c := range want.Vertices {
				if got.Vertices[c] != want.Vertices[c] {
					t.Errorf("clipe %d keyframe %d vértice %d: %v != %v", i, k, c, got.Vertices[c], want.Vertices[c])
				}
			}
		}
	}
}

func TestSaveBakeReplacesPrevious(t *testing.T) {
	cache, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer cache.Close()

	if err := cache.SaveBake("fox@123", 2, testClips()); err != nil {
		t.Fatalf("SaveBake: %v", err)
	}

	// Regravar com menos clipes não pode deixar sobras do bake anterior.
	single := testClips()[:1]
	if err := cache.SaveBake("fox@123", 2, single); err != nil {
		t.Fatalf("SaveBake (regravação): %v", err)
	}

	loaded, _, err := cache.LoadBake("fox@123")
	if err != nil {
		t.Fatalf("LoadBake: %v", err)
	}
	if len(loaded) != 1 {
		t.Errorf("clipes após regravação = %d, want 1", len(loaded))
	}
}

func TestLoadBakeMissingKey(t *testing.T) {
	cache, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer cache.Close()

	_, _, err = cache.LoadBake("inexistente")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("LoadBake de chave ausente: err = %v, want ErrRecordNotFound", err)
	}
}
