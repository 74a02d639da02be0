package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/archery/arrow"
	"github.com/lixenwraith/archery/parameter"
	"github.com/lixenwraith/archery/vmath"
)

var (
	styleBase   = tcell.StyleDefault
	styleGround = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleBow    = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	styleString = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleNock   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleArrow  = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleHand   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleHelp   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

const helpText = "←/→ draw  ↑/↓ raise  a/d side  space grip/release  n arrow  s slow  p pause  m mute  q quit"

// bowHalfHeight is the stave half length drawn above and below the grip
const bowHalfHeight = 0.45

// view maps the side view (Z across, Y up) onto the terminal
type view struct {
	width, height int
	originCol     int // column of z = 0
	groundRow     int // row of y = 0
}

func newView(width, height int) view {
	return view{
		width:     width,
		height:    height,
		originCol: width / 4,
		groundRow: height - parameter.BottomMargin - 1,
	}
}

// cell returns the terminal cell of a world point; rows are twice as tall as columns are wide
func (v view) cell(p mgl64.Vec3) (x, y int) {
	x = v.originCol + int(math.Round(p.Z()*parameter.CellsPerMetre))
	y = v.groundRow - int(math.Round(p.Y()*parameter.CellsPerMetre/2))
	return x, y
}

func (v view) inside(x, y int) bool {
	return x >= 0 && x < v.width && y >= parameter.TopMargin && y <= v.groundRow
}

// ui renders the scene and translates keys into hand motion
type ui struct {
	screen tcell.Screen
	scene  *scene
	mute   func() bool
	muted  func() bool
}

func (u *ui) put(v view, x, y int, r rune, st tcell.Style) {
	if v.inside(x, y) {
		u.screen.SetContent(x, y, r, nil, st)
	}
}

// line samples a world segment at cell resolution
func (u *ui) line(v view, a, b mgl64.Vec3, r rune, st tcell.Style) {
	ax, ay := v.cell(a)
	bx, by := v.cell(b)
	steps := max(abs(bx-ax), abs(by-ay), 1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x, y := v.cell(a.Add(b.Sub(a).Mul(t)))
		u.put(v, x, y, r, st)
	}
}

func (u *ui) text(x, y int, s string, st tcell.Style) {
	w, _ := u.screen.Size()
	for _, r := range s {
		if x >= w {
			return
		}
		u.screen.SetContent(x, y, r, nil, st)
		x++
	}
}

func (u *ui) draw() {
	u.screen.Clear()
	w, h := u.screen.Size()
	v := newView(w, h)
	s := u.scene

	u.text(0, 0, "bow sandbox", styleBase.Bold(true))

	for x := 0; x < w; x++ {
		u.put(v, x, v.groundRow, '─', styleGround)
	}

	// Stave, then the string from each tip to the nock
	parent := s.bow.Parent().Position
	top := parent.Add(vmath.Up.Mul(bowHalfHeight))
	bottom := parent.Sub(vmath.Up.Mul(bowHalfHeight))
	u.line(v, top, bottom, '│', styleBow)
	tx, ty := v.cell(top)
	bx, by := v.cell(bottom)
	u.put(v, tx, ty, '╮', styleBow)
	u.put(v, bx, by, '╯', styleBow)

	nock := s.bow.NockPose().Position
	stringRune := '·'
	if s.bow.Splay() > 0 {
		stringRune = '•'
	}
	u.line(v, top, nock, stringRune, styleString)
	u.line(v, bottom, nock, stringRune, styleString)
	nx, ny := v.cell(nock)
	u.put(v, nx, ny, '◆', styleNock)

	for _, sh := range s.shots {
		u.drawArrow(v, sh)
	}

	hx, hy := v.cell(s.hand.Pose().Position)
	handRune := 'o'
	if s.hand.IsSelecting() {
		handRune = '@'
	}
	u.put(v, hx, hy, handRune, styleHand)

	u.text(0, h-2, u.statusLine(), styleStatus)
	u.text(0, h-1, helpText, styleHelp)
	u.screen.Show()
}

func (u *ui) drawArrow(v view, sh *shot) {
	pose := sh.arrow.Pose()
	pos := sh.renderPosition(u.scene.loop.Alpha(), u.scene.loop.FixedStep())
	fwd := pose.Forward()
	if sh.arrow.State() == arrow.Launched && !sh.landed && sh.body.Velocity.Len() > vmath.Epsilon {
		fwd = sh.body.Velocity.Normalize()
	}
	half := fwd.Mul(u.scene.doc.Arrow.Length / 2)
	tail := pos.Sub(half)
	tip := pos.Add(half)

	u.line(v, tail, tip, '─', styleArrow)
	tx, ty := v.cell(tip)
	u.put(v, tx, ty, headRune(fwd), styleArrow)
}

// headRune picks an arrowhead glyph for a direction in the side view
func headRune(dir mgl64.Vec3) rune {
	deg := mgl64.RadToDeg(math.Atan2(dir.Y(), dir.Z()))
	switch {
	case deg >= -22.5 && deg < 22.5:
		return '►'
	case deg >= 22.5 && deg < 67.5:
		return '◥'
	case deg >= 67.5 && deg < 112.5:
		return '▲'
	case deg >= 112.5 && deg < 157.5:
		return '◤'
	case deg >= -67.5 && deg < -22.5:
		return '◢'
	case deg >= -112.5 && deg < -67.5:
		return '▼'
	case deg >= -157.5 && deg < -112.5:
		return '◣'
	}
	return '◄'
}

func (u *ui) statusLine() string {
	s := u.scene
	tension := s.bow.Tension()

	filled := int(math.Round(tension / 0.6 * parameter.TensionBarWidth))
	filled = min(max(filled, 0), parameter.TensionBarWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", parameter.TensionBarWidth-filled)

	state := s.rigState()

	sound := "on"
	if u.muted != nil && u.muted() {
		sound = "muted"
	}

	line := fmt.Sprintf(" %s %.2fm | %s | rumble %.2f/%.2f | sound %s | shots %d",
		bar, tension, state, s.haptics.low, s.haptics.high, sound, s.launches)
	if s.hub != nil {
		line += fmt.Sprintf(" | viewers %d", s.hub.ViewerCount())
	}
	if s.loop.Clock().IsPaused() {
		line += " | PAUSED"
	} else if s.loop.Clock().Scale() < 1 {
		line += " | SLOW"
	}
	if msg := s.statusText(); msg != "" {
		line += " | " + msg
	}
	return line
}

// handleKey applies one key press, returning false on quit
func (u *ui) handleKey(ev *tcell.EventKey) bool {
	s := u.scene
	step := parameter.HandStep
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		s.moveHand(mgl64.Vec3{0, 0, -step})
	case tcell.KeyRight:
		s.moveHand(mgl64.Vec3{0, 0, step})
	case tcell.KeyUp:
		s.moveHand(mgl64.Vec3{0, step, 0})
	case tcell.KeyDown:
		s.moveHand(mgl64.Vec3{0, -step, 0})
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			s.grip()
		case 'n':
			s.spawnArrow()
		case 'a':
			s.moveHand(mgl64.Vec3{-step, 0, 0})
		case 'd':
			s.moveHand(mgl64.Vec3{step, 0, 0})
		case 's':
			s.toggleSlowMotion()
		case 'p':
			s.togglePause()
		case 'm':
			if u.mute != nil {
				if u.mute() {
					s.setStatus("muted")
				} else {
					s.setStatus("unmuted")
				}
			}
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
