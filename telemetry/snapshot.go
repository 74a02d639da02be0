package telemetry

import (
	"github.com/lixenwraith/archery/arrow"
	"github.com/lixenwraith/archery/rig"
	"github.com/lixenwraith/archery/vmath"
)

// Pose is the wire form of a pose; rotation is w, x, y, z
type Pose struct {
	Position [3]float64 `json:"position"`
	Rotation [4]float64 `json:"rotation"`
}

func PoseOf(p vmath.Pose) Pose {
	return Pose{
		Position: p.Position,
		Rotation: [4]float64{p.Rotation.W, p.Rotation.V[0], p.Rotation.V[1], p.Rotation.V[2]},
	}
}

// ArrowState is one arrow as seen by viewers
type ArrowState struct {
	ID    string `json:"id"`
	State string `json:"state"`
	Pose  Pose   `json:"pose"`
	Tail  Pose   `json:"tail"`
}

// Snapshot is one frame of rig state
type Snapshot struct {
	Frame   uint64       `json:"frame"`
	Tension float64      `json:"tension"`
	Grabbed bool         `json:"grabbed"`
	Loaded  bool         `json:"loaded"`
	Splay   float64      `json:"splay"` // radians
	Bow     Pose         `json:"bow"`
	Nock    Pose         `json:"nock"`
	Arrows  []ArrowState `json:"arrows,omitempty"`
}

// Capture reads the coordinator's bow and the given arrows
func Capture(frame uint64, c *rig.Coordinator, arrows ...*arrow.Arrow) Snapshot {
	b := c.Bow()
	s := Snapshot{
		Frame:   frame,
		Tension: b.Tension(),
		Grabbed: b.Grabbed(),
		Loaded:  c.Loaded() != nil,
		Splay:   b.Splay(),
		Bow:     PoseOf(b.WorldPose()),
		Nock:    PoseOf(b.NockPose()),
	}
	for _, a := range arrows {
		if a == nil {
			continue
		}
		s.Arrows = append(s.Arrows, ArrowState{
			ID:    a.ID().String(),
			State: a.State().String(),
			Pose:  PoseOf(a.Pose()),
			Tail:  PoseOf(a.TailPose()),
		})
	}
	return s
}
