package flatfile

import (
	"bufio"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/lnls-sirius/trackgo/internal/track"
)

// LoadKicktable reads a kicktable grid file: three header lines (name,
// author, length label), the element length, horizontal/vertical point
// counts, then the horizontal and vertical kick tables each prefixed by a
// row of sampled x positions and, for each of the y_nrpts rows (read from
// the last y value down to the first), a sampled y position followed by
// x_nrpts kick values. Grid bounds are inferred from the sampled extremes,
// exactly as the original loader infers them, not read as explicit header
// fields.
func LoadKicktable(path string) (*track.Kicktable, track.Status) {
	f, err := os.Open(path)
	if err != nil {
		return nil, track.StatusFileNotFound
	}
	defer f.Close()

	s := newTokenStream(f)

	s.skipLine() // kicktable name
	s.skipLine() // author
	s.skipLine() // "ID length[m]" label
	length := s.float()
	s.skipLine()
	s.skipLine() // "number of horizontal points"
	xNrPts := s.int()
	s.skipLine()
	s.skipLine() // "number of vertical points"
	yNrPts := s.int()
	s.skipLine()

	kt := &track.Kicktable{
		Filename: path,
		Length:   length,
		XNrPts:   xNrPts,
		YNrPts:   yNrPts,
		XKick:    make([]float64, xNrPts*yNrPts),
		YKick:    make([]float64, xNrPts*yNrPts),
	}

	s.skipLine() // "Horizontal KickTable in T^2.m^2"
	s.skipLine() // "START"

	xMin, xMax := math.Inf(1), math.Inf(-1)
	for i := 0; i < xNrPts; i++ {
		x := s.float()
		if x < xMin {
			xMin = x
		}
		if x > xMax {
			xMax = x
		}
	}
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for j := yNrPts - 1; j >= 0; j-- {
		y := s.float()
		if y < yMin {
			yMin = y
		}
		if y > yMax {
			yMax = y
		}
		for i := 0; i < xNrPts; i++ {
			kt.XKick[j*xNrPts+i] = s.float()
		}
	}
	kt.XMin, kt.XMax = xMin, xMax
	kt.YMin, kt.YMax = yMin, yMax

	s.skipLine()
	s.skipLine() // "Vertical KickTable in T^2.m^2"
	s.skipLine() // "START"
	for i := 0; i < xNrPts; i++ {
		s.float() // x positions repeated, already known
	}
	for j := yNrPts - 1; j >= 0; j-- {
		s.float() // y position repeated
		for i := 0; i < xNrPts; i++ {
			kt.YKick[j*xNrPts+i] = s.float()
		}
	}

	if s.err != nil {
		return nil, track.StatusFlatFileError
	}
	return kt, track.StatusSuccess
}

// tokenStream mirrors C++'s mixed use of getline (to skip a label line) and
// operator>> (to pull whitespace-separated numbers that may themselves
// continue across line boundaries): skipLine discards the rest of the
// current line including any buffered-but-unread tokens, while float/int
// pull the next whitespace-separated token, reading further lines as
// needed.
type tokenStream struct {
	sc      *bufio.Scanner
	pending []string
	err     error
}

func newTokenStream(f *os.File) *tokenStream {
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &tokenStream{sc: sc}
}

func (s *tokenStream) skipLine() {
	s.pending = nil
	if !s.sc.Scan() {
		s.err = s.sc.Err()
	}
}

func (s *tokenStream) nextToken() (string, bool) {
	for len(s.pending) == 0 {
		if !s.sc.Scan() {
			s.err = s.sc.Err()
			return "", false
		}
		s.pending = strings.Fields(s.sc.Text())
	}
	tok := s.pending[0]
	s.pending = s.pending[1:]
	return tok, true
}

func (s *tokenStream) float() float64 {
	tok, ok := s.nextToken()
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		s.err = err
	}
	return v
}

func (s *tokenStream) int() int {
	return int(s.float())
}
