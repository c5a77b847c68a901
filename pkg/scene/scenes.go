package scene

import (
	"fmt"

	"github.com/segfall/prism/pkg/core"
	"github.com/segfall/prism/pkg/geometry"
	"github.com/segfall/prism/pkg/loaders"
	"github.com/segfall/prism/pkg/material"
	"github.com/segfall/prism/pkg/renderer"
)

// NewDefaultScene builds a small showcase: a checkered ground plane, a
// diffuse, a metal and a glass sphere under a gradient sky.
func NewDefaultScene() (*Scene, error) {
	checker := material.NewCheckerTexture(
		core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.2, 0.3, 0.2), 20.0)
	ground := material.NewTexturedLambertian(checker)
	diffuse := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	silver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.05)
	glass := material.NewDielectric(1.5)

	primitives := []geometry.Primitive{
		geometry.NewAARectPrimitive(geometry.NewAARect(
			core.NewVec2(-50, -50), core.NewVec2(50, 50), 0.0, geometry.AxisY, ground)),
		geometry.NewSpherePrimitive(geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, diffuse)),
		geometry.NewSpherePrimitive(geometry.NewSphere(core.NewVec3(-1.1, 0.5, -1), 0.5, silver)),
		geometry.NewSpherePrimitive(geometry.NewSphere(core.NewVec3(1.1, 0.5, -1), 0.5, glass)),
	}

	return &Scene{
		Name:       "default",
		Primitives: primitives,
		Camera: CameraConfig{
			Origin:        core.NewVec3(0, 0.75, 2),
			LookAt:        core.NewVec3(0, 0.5, -1),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          40.0,
			Aperture:      0.05,
			FocusDistance: 3.0,
		},
		Sky: renderer.GradientSky(core.NewVec3(1, 1, 1), core.NewVec3(0.5, 0.7, 1.0)),
	}, nil
}

// NewCornellScene builds the classic Cornell box: five walls, a ceiling
// light and two boxes, lit purely by the emitter.
func NewCornellScene() (*Scene, error) {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewEmissive(core.NewVec3(15, 15, 15))

	primitives := []geometry.Primitive{
		// Left and right walls (fixed x)
		geometry.NewAARectPrimitive(geometry.NewAARect(
			core.NewVec2(0, -555), core.NewVec2(555, 0), 555, geometry.AxisX, green)),
		geometry.NewAARectPrimitive(geometry.NewAARect(
			core.NewVec2(0, -555), core.NewVec2(555, 0), 0, geometry.AxisX, red)),
		// Floor and ceiling (fixed y)
		geometry.NewAARectPrimitive(geometry.NewAARect(
			core.NewVec2(0, -555), core.NewVec2(555, 0), 0, geometry.AxisY, white)),
		geometry.NewAARectPrimitive(geometry.NewAARect(
			core.NewVec2(0, -555), core.NewVec2(555, 0), 555, geometry.AxisY, white)),
		// Back wall (fixed z)
		geometry.NewAARectPrimitive(geometry.NewAARect(
			core.NewVec2(0, 0), core.NewVec2(555, 555), -555, geometry.AxisZ, white)),
		// Ceiling light
		geometry.NewAARectPrimitive(geometry.NewAARect(
			core.NewVec2(213, -343), core.NewVec2(343, -227), 554, geometry.AxisY, light)),
		// Boxes
		geometry.NewAABoxPrimitive(geometry.NewAABox(
			core.NewVec3(130, 0, -230), core.NewVec3(295, 165, -65), white)),
		geometry.NewAABoxPrimitive(geometry.NewAABox(
			core.NewVec3(265, 0, -460), core.NewVec3(430, 330, -295), white)),
	}

	return &Scene{
		Name:       "cornell",
		Primitives: primitives,
		Camera: CameraConfig{
			Origin:        core.NewVec3(278, 278, 800),
			LookAt:        core.NewVec3(278, 278, 0),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          40.0,
			Aperture:      0.0,
			FocusDistance: 800.0,
		},
		Sky: renderer.BlackSky(),
	}, nil
}

// NewMeshScene loads a glTF/GLB model and places it on a diffuse ground
// under a gradient sky
func NewMeshScene(path string) (*Scene, error) {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	mesh, err := loaders.LoadMesh(path, white)
	if err != nil {
		return nil, fmt.Errorf("load mesh scene: %w", err)
	}

	bounds := mesh.BoundingBox()
	center := bounds.Center()
	size := bounds.Size().Length()

	primitives := []geometry.Primitive{
		geometry.NewTriangleMeshPrimitive(mesh),
		geometry.NewAARectPrimitive(geometry.NewAARect(
			core.NewVec2(center.X-size*10, center.Z-size*10),
			core.NewVec2(center.X+size*10, center.Z+size*10),
			bounds.Min.Y, geometry.AxisY, ground)),
	}

	// Frame the model from a three-quarter view
	origin := center.Add(core.NewVec3(size, size*0.6, size))
	return &Scene{
		Name:       "mesh",
		Primitives: primitives,
		Camera: CameraConfig{
			Origin:        origin,
			LookAt:        center,
			Up:            core.NewVec3(0, 1, 0),
			VFov:          40.0,
			Aperture:      0.0,
			FocusDistance: origin.Subtract(center).Length(),
		},
		Sky: renderer.GradientSky(core.NewVec3(1, 1, 1), core.NewVec3(0.5, 0.7, 1.0)),
	}, nil
}
