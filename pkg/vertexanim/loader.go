package vertexanim

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// LoadModelWithFallback carrega um modelo tentando .gltf, .glb, .iqm e .obj
// nessa ordem a partir do caminho base (sem extensão). Retorna também o
// caminho completo que funcionou, ou um modelo vazio se nenhum.
func LoadModelWithFallback(basePath string) (rl.Model, string) {
	for _, ext := range []string{".gltf", ".glb", ".iqm", ".obj"} {
		fullPath := basePath + ext
		model := rl.LoadModel(fullPath)
		if model.MeshCount > 0 {
			log.Printf("[Anim4DC] Modelo carregado: %s", fullPath)
			return model, fullPath
		}
	}

	log.Printf("[Anim4DC] Falha ao carregar modelo com caminho base: %s", basePath)
	return rl.Model{}, ""
}
