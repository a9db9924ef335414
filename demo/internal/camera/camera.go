package camera

import (
	"github.com/chewxy/math32"

	"github.com/Dubnium32x/anim4dc/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Controller gerencia a câmera orbital do demo: roda ao redor do alvo com
// zoom suavizado, no estilo do visualizador original.
type Controller struct {
	RLCamera rl.Camera3D

	RotateSpeed  float32
	ZoomSpeed    float32
	MinZoom      float32
	MaxZoom      float32
	SmoothFactor float32

	TargetLookAt rl.Vector3
	TargetAngle  float32 // Rotação horizontal (radianos)
	TargetZoom   float32

	CurrentLookAt rl.Vector3
	CurrentZoom   float32
}

// New cria um controlador olhando para a origem à distância dada.
func New(distance float32) *Controller {
	c := &Controller{
		RotateSpeed:  rl.Deg2rad * 30.0,
		ZoomSpeed:    60.0,
		MinZoom:      20.0,
		MaxZoom:      400.0,
		SmoothFactor: 0.1,

		TargetZoom: distance,
	}
	c.CurrentLookAt = c.TargetLookAt
	c.CurrentZoom = c.TargetZoom

	c.RLCamera = rl.Camera3D{
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}
	c.apply()
	return c
}

// HandleInput lê as setas para orbitar e PgUp/PgDn para o zoom.
func (c *Controller) HandleInput(dt float32) {
	if rl.IsKeyDown(rl.KeyLeft) {
		c.TargetAngle -= c.RotateSpeed * dt
	}
	if rl.IsKeyDown(rl.KeyRight) {
		c.TargetAngle += c.RotateSpeed * dt
	}
	if rl.IsKeyDown(rl.KeyPageUp) {
		c.TargetZoom -= c.ZoomSpeed * dt
	}
	if rl.IsKeyDown(rl.KeyPageDown) {
		c.TargetZoom += c.ZoomSpeed * dt
	}
	if c.TargetZoom < c.MinZoom {
		c.TargetZoom = c.MinZoom
	}
	if c.TargetZoom > c.MaxZoom {
		c.TargetZoom = c.MaxZoom
	}
}

// Update interpola o estado atual em direção ao alvo e recalcula a posição.
// Amortecimento normalizado para 60 FPS, como no visualizador.
func (c *Controller) Update(dt float32) {
	factor := c.SmoothFactor * 60.0 * dt
	if factor > 1.0 {
		factor = 1.0
	}

	cur := mgl32.Vec3{c.CurrentLookAt.X, c.CurrentLookAt.Y, c.CurrentLookAt.Z}
	tgt := mgl32.Vec3{c.TargetLookAt.X, c.TargetLookAt.Y, c.TargetLookAt.Z}
	lerped := cur.Add(tgt.Sub(cur).Mul(factor))

	c.CurrentLookAt = rl.Vector3{X: lerped.X(), Y: lerped.Y(), Z: lerped.Z()}
	c.CurrentZoom = util.Lerp(c.CurrentZoom, c.TargetZoom, factor)

	c.apply()
}

// apply converte ângulo e zoom em posição cartesiana da câmera.
func (c *Controller) apply() {
	c.RLCamera.Position = rl.Vector3{
		X: c.CurrentLookAt.X + math32.Cos(c.TargetAngle)*c.CurrentZoom,
		Y: c.CurrentLookAt.Y + c.CurrentZoom*0.35,
		Z: c.CurrentLookAt.Z + math32.Sin(c.TargetAngle)*c.CurrentZoom,
	}
	c.RLCamera.Target = c.CurrentLookAt
}
