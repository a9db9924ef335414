package vertexanim

import (
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ApplyToMesh copia o buffer interpolado para os vértices da mesh e reenvia
// para a GPU. Deve ser chamado uma vez por frame, depois do Advance e antes
// de desenhar as instâncias (todas compartilham a mesma mesh animada).
func (s *System) ApplyToMesh(mesh *rl.Mesh) {
	if s.interpBuffer == nil || mesh == nil || mesh.Vertices == nil {
		return
	}
	if mesh.VertexCount != s.vertexCount {
		return
	}

	dst := unsafe.Slice(mesh.Vertices, int(mesh.VertexCount)*3)
	copy(dst, s.interpBuffer)

	if rl.IsWindowReady() {
		rl.UploadMesh(mesh, false)
	}
}

// lodTint escurece a cor base conforme o nível LOD, para depurar a
// classificação visualmente.
func lodTint(level LodLevel) rl.Color {
	switch level {
	case LodNear:
		return rl.White
	case LodMid:
		return rl.LightGray
	case LodFar:
		return rl.Gray
	default:
		return rl.DarkGray
	}
}

// RenderInstances desenha todas as instâncias visíveis com a mesh animada já
// aplicada. Instâncias descartadas pelo LOD não geram draw call.
func (s *System) RenderInstances(model rl.Model, instances []ModelInstance) {
	if !rl.IsWindowReady() || model.MeshCount == 0 {
		return
	}

	if s.interpBuffer != nil {
		meshes := unsafe.Slice(model.Meshes, model.MeshCount)
		s.ApplyToMesh(&meshes[0])
	}

	for i := range instances {
		if !instances[i].Visible {
			continue
		}
		rl.DrawModelEx(model,
			instances[i].Position,
			rl.Vector3{X: 0, Y: 1, Z: 0},
			instances[i].Rotation.Y,
			rl.Vector3{X: instances[i].Scale, Y: instances[i].Scale, Z: instances[i].Scale},
			lodTint(instances[i].LodLevel))
	}
}
