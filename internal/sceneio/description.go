// Package sceneio builds scenes from YAML scene descriptions and provides
// the built-in demo scene.
//
// A description names its materials and meshes once and lets actors refer
// to them by name:
//
//	name: example
//	background: [0.1, 0.1, 0.1]
//	materials:
//	  - {name: red, color: [1, 0, 0]}
//	meshes:
//	  - {name: ball, shape: sphere, segments: 32}
//	  - {name: jet, file: models/f-16.obj}
//	lights:
//	  - {name: sun, azimuth: 45, elevation: 60, distance: 20}
//	actors:
//	  - {mesh: ball, material: red, position: [3, 3, 0], scale: [1, 2, 1]}
//	camera:
//	  fit: true
package sceneio

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownMesh is returned when an actor refers to an undeclared mesh.
	ErrUnknownMesh = errors.New("unknown mesh")
	// ErrUnknownMaterial is returned when an actor refers to an undeclared material.
	ErrUnknownMaterial = errors.New("unknown material")
)

// Description is the YAML form of a scene.
type Description struct {
	Name       string         `yaml:"name"`
	Background []float32      `yaml:"background,omitempty"`
	Ambient    []float32      `yaml:"ambient,omitempty"`
	Materials  []MaterialDesc `yaml:"materials,omitempty"`
	Meshes     []MeshDesc     `yaml:"meshes,omitempty"`
	Lights     []LightDesc    `yaml:"lights,omitempty"`
	Actors     []ActorDesc    `yaml:"actors,omitempty"`
	Camera     *CameraDesc    `yaml:"camera,omitempty"`
}

// MaterialDesc declares a named material derived from one color.
type MaterialDesc struct {
	Name  string    `yaml:"name"`
	Color []float32 `yaml:"color"`
}

// MeshDesc declares a named mesh: either a procedural shape or a file
// relative to the description.
type MeshDesc struct {
	Name     string `yaml:"name"`
	Shape    string `yaml:"shape,omitempty"` // sphere, cone, cylinder, cube
	Segments int    `yaml:"segments,omitempty"`
	File     string `yaml:"file,omitempty"`
}

// LightDesc places a point light either at Position or, when Position is
// empty, at Distance along the direction given by Azimuth and Elevation
// (degrees).
type LightDesc struct {
	Name      string    `yaml:"name"`
	Position  []float32 `yaml:"position,omitempty"`
	Azimuth   float32   `yaml:"azimuth,omitempty"`
	Elevation float32   `yaml:"elevation,omitempty"`
	Distance  float32   `yaml:"distance,omitempty"`
	Color     []float32 `yaml:"color,omitempty"`
}

// RotationDesc is an axis and an angle in degrees.
type RotationDesc struct {
	Axis  []float32 `yaml:"axis"`
	Angle float32   `yaml:"angle"`
}

// ActorDesc places one instance of a mesh.
type ActorDesc struct {
	Mesh     string        `yaml:"mesh"`
	Material string        `yaml:"material,omitempty"`
	Position []float32     `yaml:"position,omitempty"`
	Rotation *RotationDesc `yaml:"rotation,omitempty"`
	Scale    []float32     `yaml:"scale,omitempty"`
	Hidden   bool          `yaml:"hidden,omitempty"`
}

// CameraDesc sets the initial camera. Fit frames the scene bounds and
// overrides Position and FocalPoint.
type CameraDesc struct {
	Position   []float32 `yaml:"position,omitempty"`
	FocalPoint []float32 `yaml:"focal_point,omitempty"`
	ViewUp     []float32 `yaml:"view_up,omitempty"`
	ViewAngle  float32   `yaml:"view_angle,omitempty"`
	Projection string    `yaml:"projection,omitempty"`
	Fit        bool      `yaml:"fit,omitempty"`
}

// Parse decodes and validates a YAML description.
func Parse(data []byte) (*Description, error) {
	var d Description
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// ReadFile parses the description at path.
func ReadFile(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Marshal encodes d as YAML.
func (d *Description) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

// Validate checks names, references and vector lengths.
func (d *Description) Validate() error {
	var errs []error
	check := func(what string, v []float32, lengths ...int) {
		if len(v) == 0 {
			return
		}
		for _, n := range lengths {
			if len(v) == n {
				return
			}
		}
		errs = append(errs, fmt.Errorf("%s: expected %v components, got %d", what, lengths, len(v)))
	}

	check("background", d.Background, 3, 4)
	check("ambient", d.Ambient, 3, 4)

	materials := make(map[string]bool)
	for i, m := range d.Materials {
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("material %d: missing name", i))
		} else if materials[m.Name] {
			errs = append(errs, fmt.Errorf("material %q: declared twice", m.Name))
		}
		materials[m.Name] = true
		check(fmt.Sprintf("material %q color", m.Name), m.Color, 3, 4)
	}

	meshes := make(map[string]bool)
	for i, m := range d.Meshes {
		switch {
		case m.Name == "":
			errs = append(errs, fmt.Errorf("mesh %d: missing name", i))
		case meshes[m.Name]:
			errs = append(errs, fmt.Errorf("mesh %q: declared twice", m.Name))
		case (m.Shape == "") == (m.File == ""):
			errs = append(errs, fmt.Errorf("mesh %q: exactly one of shape and file is required", m.Name))
		case m.Shape != "" && !isShape(m.Shape):
			errs = append(errs, fmt.Errorf("mesh %q: unknown shape %q", m.Name, m.Shape))
		}
		meshes[m.Name] = true
	}

	for i, l := range d.Lights {
		check(fmt.Sprintf("light %d position", i), l.Position, 3)
		check(fmt.Sprintf("light %d color", i), l.Color, 3, 4)
	}

	for i, a := range d.Actors {
		if !meshes[a.Mesh] {
			errs = append(errs, fmt.Errorf("actor %d: %w %q", i, ErrUnknownMesh, a.Mesh))
		}
		if a.Material != "" && !materials[a.Material] {
			errs = append(errs, fmt.Errorf("actor %d: %w %q", i, ErrUnknownMaterial, a.Material))
		}
		check(fmt.Sprintf("actor %d position", i), a.Position, 3)
		check(fmt.Sprintf("actor %d scale", i), a.Scale, 3)
		if a.Rotation != nil {
			check(fmt.Sprintf("actor %d rotation axis", i), a.Rotation.Axis, 3)
		}
	}

	if c := d.Camera; c != nil {
		check("camera position", c.Position, 3)
		check("camera focal_point", c.FocalPoint, 3)
		check("camera view_up", c.ViewUp, 3)
		switch c.Projection {
		case "", "perspective", "orthographic":
		default:
			errs = append(errs, fmt.Errorf("camera: unknown projection %q", c.Projection))
		}
	}

	return errors.Join(errs...)
}

func isShape(s string) bool {
	switch s {
	case "sphere", "cone", "cylinder", "cube":
		return true
	}
	return false
}
