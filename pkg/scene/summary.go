package scene

import "github.com/Faultbox/midgard-3ds/pkg/math"

// Summary is a compact, serializable overview of a scene.
type Summary struct {
	Meshes     []MeshSummary      `yaml:"meshes"`
	Materials  []MaterialSummary  `yaml:"materials"`
	Lights     []LightSummary     `yaml:"lights,omitempty"`
	Cameras    []CameraSummary    `yaml:"cameras,omitempty"`
	Root       *NodeSummary       `yaml:"root"`
	Animations []AnimationSummary `yaml:"animations,omitempty"`
}

// MeshSummary describes one mesh.
type MeshSummary struct {
	Name     string `yaml:"name"`
	Vertices int    `yaml:"vertices"`
	Faces    int    `yaml:"faces"`
	Material string `yaml:"material"`
	HasUV    bool   `yaml:"has_uv"`
}

// MaterialSummary describes one material.
type MaterialSummary struct {
	Name       string     `yaml:"name"`
	Shading    string     `yaml:"shading"`
	Diffuse    [3]float32 `yaml:"diffuse,flow"`
	Opacity    float32    `yaml:"opacity"`
	TwoSided   bool       `yaml:"two_sided,omitempty"`
	Wireframe  bool       `yaml:"wireframe,omitempty"`
	Textures   []string   `yaml:"textures,omitempty"`
	Background string     `yaml:"background,omitempty"`
}

// LightSummary describes one light.
type LightSummary struct {
	Name     string     `yaml:"name"`
	Type     string     `yaml:"type"`
	Position [3]float32 `yaml:"position,flow"`
	Color    [3]float32 `yaml:"color,flow"`
}

// CameraSummary describes one camera.
type CameraSummary struct {
	Name     string     `yaml:"name"`
	Position [3]float32 `yaml:"position,flow"`
	LookAt   [3]float32 `yaml:"look_at,flow"`
	FOV      float32    `yaml:"fov"`
}

// NodeSummary describes a node and its subtree.
type NodeSummary struct {
	Name        string        `yaml:"name"`
	Translation [3]float32    `yaml:"translation,flow"`
	Meshes      []int         `yaml:"meshes,omitempty,flow"`
	Children    []NodeSummary `yaml:"children,omitempty"`
}

// AnimationSummary describes an animation and its channels.
type AnimationSummary struct {
	Name     string           `yaml:"name"`
	Duration float64          `yaml:"duration"`
	Channels []ChannelSummary `yaml:"channels"`
}

// ChannelSummary counts the keys of a channel.
type ChannelSummary struct {
	Node      string `yaml:"node"`
	Positions int    `yaml:"positions"`
	Rotations int    `yaml:"rotations"`
	Scalings  int    `yaml:"scalings"`
}

// Summarize builds a Summary of s.
func Summarize(s *Scene) Summary {
	var sum Summary

	for _, m := range s.Meshes {
		ms := MeshSummary{
			Name:     m.Name,
			Vertices: len(m.Positions),
			Faces:    len(m.Faces),
			HasUV:    m.TexCoords != nil,
		}
		if m.MaterialIndex >= 0 && m.MaterialIndex < len(s.Materials) {
			ms.Material = s.Materials[m.MaterialIndex].Name
		}
		sum.Meshes = append(sum.Meshes, ms)
	}

	for _, m := range s.Materials {
		ms := MaterialSummary{
			Name:       m.Name,
			Shading:    m.Shading.String(),
			Diffuse:    color(m.Diffuse),
			Opacity:    m.Opacity,
			TwoSided:   m.TwoSided,
			Wireframe:  m.Wireframe,
			Background: m.BackgroundImage,
		}
		for _, t := range m.Textures {
			ms.Textures = append(ms.Textures, t.Type.String()+": "+t.Path)
		}
		sum.Materials = append(sum.Materials, ms)
	}

	for _, l := range s.Lights {
		sum.Lights = append(sum.Lights, LightSummary{
			Name:     l.Name,
			Type:     l.Type.String(),
			Position: vec(l.Position),
			Color:    color(l.ColorDiffuse),
		})
	}

	for _, c := range s.Cameras {
		sum.Cameras = append(sum.Cameras, CameraSummary{
			Name:     c.Name,
			Position: vec(c.Position),
			LookAt:   vec(c.LookAt),
			FOV:      c.HorizontalFOV,
		})
	}

	if s.Root != nil {
		root := summarizeNode(s.Root)
		sum.Root = &root
	}

	for _, a := range s.Animations {
		as := AnimationSummary{Name: a.Name, Duration: a.Duration}
		for _, ch := range a.Channels {
			as.Channels = append(as.Channels, ChannelSummary{
				Node:      ch.NodeName,
				Positions: len(ch.PositionKeys),
				Rotations: len(ch.RotationKeys),
				Scalings:  len(ch.ScalingKeys),
			})
		}
		sum.Animations = append(sum.Animations, as)
	}
	return sum
}

func summarizeNode(n *Node) NodeSummary {
	ns := NodeSummary{
		Name:        n.Name,
		Translation: [3]float32{n.Transform[12], n.Transform[13], n.Transform[14]},
		Meshes:      n.Meshes,
	}
	for _, c := range n.Children {
		ns.Children = append(ns.Children, summarizeNode(c))
	}
	return ns
}

func vec(v math.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func color(c math.Color3) [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}
