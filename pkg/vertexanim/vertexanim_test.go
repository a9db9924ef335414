package vertexanim

import (
	"github.com/Dubnium32x/anim4dc/shared/config"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// fakeRig monta um modelo e animações esqueléticas falsos inteiramente em Go,
// sem janela nem cgo de runtime: os ponteiros das structs do raylib apontam
// para slices Go mantidos vivos aqui. O avaliador de pose padrão do rig
// escreve o número do frame em todos os componentes de AnimVertices, o que
// torna a interpolação verificável por aritmética simples.
type fakeRig struct {
	model     rl.Model
	anims     []rl.ModelAnimation
	animVerts []float32

	// Mantém vivos os buffers referenciados pelos ponteiros C-style.
	meshes   []rl.Mesh
	bones    []rl.BoneInfo
	bindPose []rl.Transform
	boneIDs  []int32
	weights  []float32
	poseRows [][]rl.Transform
	poses    [][]*rl.Transform
}

func newFakeRig(vertexCount, boneCount int32, frameCounts ...int32) *fakeRig {
	r := &fakeRig{
		animVerts: make([]float32, vertexCount*3),
		meshes:    make([]rl.Mesh, 1),
		bones:     make([]rl.BoneInfo, boneCount),
		bindPose:  make([]rl.Transform, boneCount),
		boneIDs:   make([]int32, vertexCount*4),
		weights:   make([]float32, vertexCount*4),
	}

	r.meshes[0].VertexCount = vertexCount
	r.meshes[0].AnimVertices = &r.animVerts[0]
	r.meshes[0].BoneIds = &r.boneIDs[0]
	r.meshes[0].BoneWeights = &r.weights[0]

	r.model = rl.Model{
		MeshCount: 1,
		Meshes:    &r.meshes[0],
		BoneCount: boneCount,
		Bones:     &r.bones[0],
		BindPose:  &r.bindPose[0],
	}

	for _, fc := range frameCounts {
		r.anims = append(r.anims, r.makeAnim(boneCount, fc))
	}
	return r
}

func (r *fakeRig) makeAnim(boneCount, frameCount int32) rl.ModelAnimation {
	bones := make([]rl.BoneInfo, boneCount)
	rows := make([]rl.Transform, int(boneCount)*int(frameCount))
	poses := make([]*rl.Transform, frameCount)
	for f := int32(0); f < frameCount; f++ {
		poses[f] = &rows[f*boneCount]
	}
	r.poseRows = append(r.poseRows, rows)
	r.poses = append(r.poses, poses)

	return rl.ModelAnimation{
		BoneCount:  boneCount,
		FrameCount: frameCount,
		Bones:      &bones[0],
		FramePoses: &poses[0],
	}
}

// evaluator devolve o avaliador de pose determinístico do rig.
func (r *fakeRig) evaluator() PoseEvaluator {
	return func(_ rl.Model, _ rl.ModelAnimation, frame int32) {
		for i := range r.animVerts {
			r.animVerts[i] = float32(frame)
		}
	}
}

// newBakedSystem inicializa um sistema com a configuração dada (nil = padrão)
// e executa um bake completo sobre o rig.
func newBakedSystem(cfg *config.Config, rig *fakeRig) *System {
	s := New(cfg)
	s.Init()
	s.SetPoseEvaluator(rig.evaluator())
	s.Bake(rig.model, rig.anims)
	return s
}
