package gcode

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MoveType represents the type of CNC toolpath movement.
type MoveType int

const (
	MoveRapid   MoveType = iota // G0: rapid positioning (no cutting)
	MoveFeed                    // G1/G2/G3: cutting move in the XY plane
	MovePlunge                  // G1 with Z decreasing: plunging into material
	MoveRetract                 // G0/G1 with Z increasing: retracting from material
)

// arcStep is the largest angle one flattened arc segment spans.
const arcStep = math.Pi / 36

// GCodeMove represents a single parsed movement from GCode. Arcs are
// flattened into consecutive feed moves with Arc set.
type GCodeMove struct {
	Type     MoveType
	FromX    float64
	FromY    float64
	FromZ    float64
	ToX      float64
	ToY      float64
	ToZ      float64
	FeedRate float64
	Arc      bool
}

var coordRe = regexp.MustCompile(`([XYZFIJ])(-?\d+\.?\d*)`)

type command int

const (
	cmdNone command = iota
	cmdRapid
	cmdFeed
	cmdArcCW
	cmdArcCCW
)

func parseCommand(upper string) command {
	word := upper
	if i := strings.IndexByte(upper, ' '); i >= 0 {
		word = upper[:i]
	}
	switch word {
	case "G0", "G00":
		return cmdRapid
	case "G1", "G01":
		return cmdFeed
	case "G2", "G02":
		return cmdArcCW
	case "G3", "G03":
		return cmdArcCCW
	}
	return cmdNone
}

// stripComment removes semicolon and parenthetical comments.
func stripComment(line string) string {
	if idx := strings.Index(line, ";"); idx >= 0 {
		line = line[:idx]
	}
	if idx := strings.Index(line, "("); idx >= 0 {
		if end := strings.Index(line, ")"); end > idx {
			line = line[:idx] + line[end+1:]
		}
	}
	return strings.TrimSpace(line)
}

// ParseGCode parses a GCode string into a slice of structured moves.
// It tracks absolute position state and classifies each G0/G1 command
// by its movement characteristics (rapid, feed, plunge, retract). G2/G3
// arcs use I/J center offsets; an arc ending where it starts is a full circle.
func ParseGCode(code string) []GCodeMove {
	var moves []GCodeMove

	// Current machine state
	curX, curY, curZ := 0.0, 0.0, 0.0
	curFeed := 0.0

	for _, line := range strings.Split(code, "\n") {
		line = stripComment(strings.TrimSpace(line))
		if line == "" {
			continue
		}

		upper := strings.ToUpper(line)
		cmd := parseCommand(upper)
		if cmd == cmdNone {
			continue
		}

		newX, newY, newZ, newFeed := curX, curY, curZ, curFeed
		var i, j float64
		for _, m := range coordRe.FindAllStringSubmatch(upper, -1) {
			val, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			switch m[1] {
			case "X":
				newX = val
			case "Y":
				newY = val
			case "Z":
				newZ = val
			case "F":
				newFeed = val
			case "I":
				i = val
			case "J":
				j = val
			}
		}

		if cmd == cmdArcCW || cmd == cmdArcCCW {
			moves = append(moves, flattenArc(curX, curY, curZ, newX, newY, newZ, i, j, cmd == cmdArcCW, newFeed)...)
		} else {
			moves = append(moves, GCodeMove{
				Type:     classifyMove(cmd == cmdRapid, curZ, newZ, curX, curY, newX, newY),
				FromX:    curX,
				FromY:    curY,
				FromZ:    curZ,
				ToX:      newX,
				ToY:      newY,
				ToZ:      newZ,
				FeedRate: newFeed,
			})
		}

		curX, curY, curZ, curFeed = newX, newY, newZ, newFeed
	}

	return moves
}

// flattenArc splits an XY arc into short feed moves. Z is interpolated
// linearly so helical entries flatten too.
func flattenArc(fx, fy, fz, tx, ty, tz, i, j float64, cw bool, feed float64) []GCodeMove {
	cx, cy := fx+i, fy+j
	r := math.Hypot(i, j)
	if r < 1e-9 {
		return []GCodeMove{{Type: MoveFeed, FromX: fx, FromY: fy, FromZ: fz, ToX: tx, ToY: ty, ToZ: tz, FeedRate: feed, Arc: true}}
	}

	a0 := math.Atan2(fy-cy, fx-cx)
	a1 := math.Atan2(ty-cy, tx-cx)
	var sweep float64
	if cw {
		sweep = a0 - a1
	} else {
		sweep = a1 - a0
	}
	for sweep <= 1e-9 {
		sweep += 2 * math.Pi
	}
	if cw {
		sweep = -sweep
	}

	segments := max(1, int(math.Ceil(math.Abs(sweep)/arcStep)))
	moves := make([]GCodeMove, 0, segments)
	px, py, pz := fx, fy, fz
	for k := 1; k <= segments; k++ {
		t := float64(k) / float64(segments)
		nx, ny := cx+r*math.Cos(a0+sweep*t), cy+r*math.Sin(a0+sweep*t)
		nz := fz + (tz-fz)*t
		if k == segments {
			nx, ny = tx, ty
		}
		moves = append(moves, GCodeMove{Type: MoveFeed, FromX: px, FromY: py, FromZ: pz, ToX: nx, ToY: ny, ToZ: nz, FeedRate: feed, Arc: true})
		px, py, pz = nx, ny, nz
	}
	return moves
}

// classifyMove determines the MoveType based on movement characteristics.
func classifyMove(isRapid bool, fromZ, toZ, fromX, fromY, toX, toY float64) MoveType {
	zDelta := toZ - fromZ
	hasXY := fromX != toX || fromY != toY

	switch {
	case isRapid:
		if zDelta > 0 {
			return MoveRetract
		}
		return MoveRapid
	case zDelta < -0.001 && !hasXY:
		// Z going down (more negative) without XY movement = plunge
		return MovePlunge
	case zDelta > 0.001 && !hasXY:
		// Z going up without XY movement = retract
		return MoveRetract
	default:
		return MoveFeed
	}
}

// Bounds returns the XY extent of all feed moves.
func Bounds(moves []GCodeMove) (minX, minY, maxX, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, m := range moves {
		if m.Type != MoveFeed {
			continue
		}
		ok = true
		minX = math.Min(minX, math.Min(m.FromX, m.ToX))
		minY = math.Min(minY, math.Min(m.FromY, m.ToY))
		maxX = math.Max(maxX, math.Max(m.FromX, m.ToX))
		maxY = math.Max(maxY, math.Max(m.FromY, m.ToY))
	}
	return minX, minY, maxX, maxY, ok
}
