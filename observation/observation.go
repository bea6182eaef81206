// Package observation parses the fixed detection-file text format into
// per-meteor pixel tracks with interpolated frame times.
package observation

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// ErrParse is returned when the detection file does not match the
// documented fixed layout.
var ErrParse = errors.New("observation: malformed detection file")

// Point is a single pixel sample with its frame index.
type Point struct {
	X, Y  float64
	Frame int
}

// Track is one meteor's ordered pixel samples with interpolated times
// (seconds, same epoch as the header start/end).
type Track struct {
	Points []Point
	Times  []float64
}

var starLinePattern = regexp.MustCompile(`^#(\d+) position \(([-\d.]+), ([-\d.]+)\)`)
var starScanPattern = regexp.MustCompile(`#\d+ position \(([-\d.]+), ([-\d.]+)\)`)
var meteorHeaderPattern = regexp.MustCompile(`^#Meteor (\d+):.*start \(([-\d.]+), ([-\d.]+)\).*end \(([-\d.]+), ([-\d.]+)\).*seconds: ([-\d.]+) ([-\d.]+)`)
var starCountPattern = regexp.MustCompile(`^#Number of stars:\s*(\d+)`)
var meteorCountPattern = regexp.MustCompile(`^#Number of meteors:\s*(\d+)`)

// MeteorSummary is the start/end pixel endpoints and time bounds parsed
// from a "#Meteor k:" header line.
type MeteorSummary struct {
	Index            int
	StartX, StartY   float64
	EndX, EndY       float64
	StartSec, EndSec float64
}

// ParsedFile is the result of parsing one detection file.
type ParsedFile struct {
	Stars    []Point
	Meteors  []MeteorSummary
	Tracks   []Track
}

// ParseFile opens path and parses it as a detection file.
func ParseFile(path string) (ParsedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return ParsedFile{}, fmt.Errorf("observation: opening %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a detection file body in its fixed layout:
// 8 header lines, a "#Number of stars: S" line, S star-position lines,
// a "#Number of meteors: M" line, then M meteor blocks each consisting
// of a "#Meteor k: ... seconds: start end" header followed by " frame"
// lines terminated by any non-frame line.
func Parse(r io.Reader) (ParsedFile, error) {
	sc := bufio.NewScanner(r)

	lineNo := 0
	var pending string
	hasPending := false

	readLine := func() (string, bool) {
		if hasPending {
			hasPending = false
			return pending, true
		}
		if !sc.Scan() {
			return "", false
		}
		lineNo++
		return sc.Text(), true
	}
	// unread pushes a line back so the next readLine returns it again; used
	// when the frame-scan below reads one line past the end of a meteor's
	// frames and that line turns out to be the next meteor's header.
	unread := func(line string) {
		pending = line
		hasPending = true
	}

	for i := 0; i < 8; i++ {
		if _, ok := readLine(); !ok {
			return ParsedFile{}, fmt.Errorf("observation: line %d: header: %w", lineNo, ErrParse)
		}
	}

	starsLine, ok := readLine()
	if !ok {
		return ParsedFile{}, fmt.Errorf("observation: line %d: expected star count: %w", lineNo, ErrParse)
	}
	m := starCountPattern.FindStringSubmatch(starsLine)
	if m == nil {
		return ParsedFile{}, fmt.Errorf("observation: line %d: %q: %w", lineNo, starsLine, ErrParse)
	}
	starCount, _ := strconv.Atoi(m[1])

	stars := make([]Point, 0, starCount)
	for i := 0; i < starCount; i++ {
		line, ok := readLine()
		if !ok {
			return ParsedFile{}, fmt.Errorf("observation: line %d: expected star entry: %w", lineNo, ErrParse)
		}
		sm := starLinePattern.FindStringSubmatch(line)
		if sm == nil {
			return ParsedFile{}, fmt.Errorf("observation: line %d: %q: %w", lineNo, line, ErrParse)
		}
		x, _ := strconv.ParseFloat(sm[2], 64)
		y, _ := strconv.ParseFloat(sm[3], 64)
		stars = append(stars, Point{X: x, Y: y})
	}

	meteorCountLine, ok := readLine()
	if !ok {
		return ParsedFile{}, fmt.Errorf("observation: line %d: expected meteor count: %w", lineNo, ErrParse)
	}
	mc := meteorCountPattern.FindStringSubmatch(meteorCountLine)
	if mc == nil {
		return ParsedFile{}, fmt.Errorf("observation: line %d: %q: %w", lineNo, meteorCountLine, ErrParse)
	}
	meteorCount, _ := strconv.Atoi(mc[1])

	out := ParsedFile{Stars: stars}

	for i := 0; i < meteorCount; i++ {
		line, ok := readLine()
		if !ok {
			break // missing meteors yield an empty sequence, not an error
		}
		hm := meteorHeaderPattern.FindStringSubmatch(line)
		if hm == nil {
			continue
		}
		idx, _ := strconv.Atoi(hm[1])
		startX, _ := strconv.ParseFloat(hm[2], 64)
		startY, _ := strconv.ParseFloat(hm[3], 64)
		endX, _ := strconv.ParseFloat(hm[4], 64)
		endY, _ := strconv.ParseFloat(hm[5], 64)
		startSec, _ := strconv.ParseFloat(hm[6], 64)
		endSec, _ := strconv.ParseFloat(hm[7], 64)

		summary := MeteorSummary{
			Index: idx, StartX: startX, StartY: startY,
			EndX: endX, EndY: endY, StartSec: startSec, EndSec: endSec,
		}
		out.Meteors = append(out.Meteors, summary)

		var points []Point
		for {
			fl, ok := readLine()
			if !ok {
				break
			}
			if !strings.HasPrefix(fl, " frame") {
				// Non-frame line terminates this meteor's block. It may be
				// the next meteor's header (or trailing footer text), so
				// hand it back rather than consuming it here: the outer
				// loop's own readLine is what parses meteor headers.
				unread(fl)
				break
			}
			p, ok := parseFrameLine(fl)
			if !ok {
				continue
			}
			points = append(points, p)
		}

		out.Tracks = append(out.Tracks, buildTrack(points, startSec, endSec))
	}

	if err := sc.Err(); err != nil {
		return ParsedFile{}, fmt.Errorf("observation: reading: %w", err)
	}

	return out, nil
}

// parseFrameLine extracts frame_number (token 3), x (token 6), y
// (token 11) from a whitespace-split " frame N ... x ... y ..." line.
func parseFrameLine(line string) (Point, bool) {
	tokens := strings.Fields(line)
	if len(tokens) <= 11 {
		return Point{}, false
	}
	frame, err := strconv.Atoi(tokens[3])
	if err != nil {
		return Point{}, false
	}
	x, err := strconv.ParseFloat(tokens[6], 64)
	if err != nil {
		return Point{}, false
	}
	y, err := strconv.ParseFloat(tokens[11], 64)
	if err != nil {
		return Point{}, false
	}
	return Point{X: x, Y: y, Frame: frame}, true
}

// buildTrack linearly interpolates frame times between the observation
// interval endpoints using the frame indices:
// t_i = start + (frame_i - frame_0)*(end-start)/(frame_last-frame_0).
func buildTrack(points []Point, startSec, endSec float64) Track {
	if len(points) == 0 {
		return Track{}
	}
	frame0 := points[0].Frame
	frameLast := points[len(points)-1].Frame
	span := float64(frameLast - frame0)

	times := make([]float64, len(points))
	for i, p := range points {
		if span == 0 {
			times[i] = startSec
			continue
		}
		times[i] = startSec + float64(p.Frame-frame0)*(endSec-startSec)/span
	}
	return Track{Points: points, Times: times}
}

var meteorSummaryLinePattern = regexp.MustCompile(`start \(([-\d.]+), ([-\d.]+)\) end \(([-\d.]+), ([-\d.]+)\)`)

// ExtractMeteorStartEnd finds the "#Meteor 1: ... start (x, y) end (x, y)"
// summary line in raw detection-file text and returns the start and end
// pixel positions.
func ExtractMeteorStartEnd(data string) (start, end Point, ok bool) {
	for _, line := range strings.Split(data, "\n") {
		if !strings.HasPrefix(line, "#Meteor 1:") {
			continue
		}
		m := meteorSummaryLinePattern.FindStringSubmatch(line)
		if m == nil {
			return Point{}, Point{}, false
		}
		sx, _ := strconv.ParseFloat(m[1], 64)
		sy, _ := strconv.ParseFloat(m[2], 64)
		ex, _ := strconv.ParseFloat(m[3], 64)
		ey, _ := strconv.ParseFloat(m[4], 64)
		return Point{X: sx, Y: sy}, Point{X: ex, Y: ey}, true
	}
	return Point{}, Point{}, false
}

// ExtractStars finds every "#N position (x, y)" reference-star line in
// raw detection-file text and returns their pixel positions.
func ExtractStars(data string) []Point {
	matches := starScanPattern.FindAllStringSubmatch(data, -1)
	stars := make([]Point, 0, len(matches))
	for _, m := range matches {
		x, _ := strconv.ParseFloat(m[1], 64)
		y, _ := strconv.ParseFloat(m[2], 64)
		stars = append(stars, Point{X: x, Y: y})
	}
	return stars
}
