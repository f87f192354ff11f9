package flatfile

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lnls-sirius/trackgo/internal/track"
)

// ReadTrackcpp parses the native flat-file dialect into a fresh
// Accelerator. Kicktable files referenced by kicktable_pass elements are
// loaded relative to dir, the lattice file's own directory, and registered
// on the returned Accelerator.
func ReadTrackcpp(path string) (*track.Accelerator, track.Status) {
	f, err := os.Open(path)
	if err != nil {
		return nil, track.StatusFileNotFound
	}
	defer f.Close()

	dir := dirOf(path)
	acc := track.New()

	cur := track.NewElement("", 0)
	haveElement := false
	foundHmin := false
	foundVmin := false

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd := fields[0]
		if strings.HasPrefix(cmd, "#") {
			continue
		}
		if strings.HasPrefix(cmd, "%") {
			if len(fields) < 2 {
				continue
			}
			key, rest := fields[1], fields[2:]
			switch key {
			case "energy":
				acc.Energy = parseFloat(rest, 0)
			case "harmonic_number":
				acc.HarmonicNumber = int(parseFloat(rest, 0))
			case "cavity_on":
				acc.CavityOn = parseBool(rest)
			case "radiation_on":
				acc.RadiationOn = parseBool(rest)
			case "vchamber_on":
				acc.VchamberOn = parseBool(rest)
			}
			continue
		}

		rest := fields[1:]

		switch cmd {
		case "fam_name":
			if haveElement {
				acc.Lattice = append(acc.Lattice, cur)
			}
			cur = track.NewElement("", 0)
			haveElement = true
			foundHmin = false
			foundVmin = false
			if len(rest) > 0 {
				cur.FamName = rest[0]
			}
		case "length":
			cur.Length = parseFloat(rest, 0)
		case "hmin":
			cur.Hmin = parseFloat(rest, 0)
			foundHmin = true
		case "hmax":
			cur.Hmax = parseFloat(rest, 0)
			if !foundHmin {
				cur.Hmin = -cur.Hmax
			}
			foundHmin = false
		case "vmin":
			cur.Vmin = parseFloat(rest, 0)
			foundVmin = true
		case "vmax":
			cur.Vmax = parseFloat(rest, 0)
			if !foundVmin {
				cur.Vmin = -cur.Vmax
			}
			foundVmin = false
		case "hkick":
			cur.Hkick = parseFloat(rest, 0)
		case "vkick":
			cur.Vkick = parseFloat(rest, 0)
		case "nr_steps":
			cur.NrSteps = int(parseFloat(rest, 1))
		case "angle":
			cur.Angle = parseFloat(rest, 0)
		case "gap":
			cur.Gap = parseFloat(rest, 0)
		case "fint_in":
			cur.FintIn = parseFloat(rest, 0)
		case "fint_out":
			cur.FintOut = parseFloat(rest, 0)
		case "voltage":
			cur.Voltage = parseFloat(rest, 0)
		case "frequency":
			cur.Frequency = parseFloat(rest, 0)
		case "angle_in":
			cur.AngleIn = parseFloat(rest, 0)
		case "angle_out":
			cur.AngleOut = parseFloat(rest, 0)
		case "t_in":
			parseVec6(rest, &cur.TIn)
		case "t_out":
			parseVec6(rest, &cur.TOut)
		case "rx|r_in":
			parseVec6(rest, rowPtr(&cur.RIn, 0))
		case "px|r_in":
			parseVec6(rest, rowPtr(&cur.RIn, 1))
		case "ry|r_in":
			parseVec6(rest, rowPtr(&cur.RIn, 2))
		case "py|r_in":
			parseVec6(rest, rowPtr(&cur.RIn, 3))
		case "de|r_in":
			parseVec6(rest, rowPtr(&cur.RIn, 4))
		case "dl|r_in":
			parseVec6(rest, rowPtr(&cur.RIn, 5))
		case "rx|r_out":
			parseVec6(rest, rowPtr(&cur.ROut, 0))
		case "px|r_out":
			parseVec6(rest, rowPtr(&cur.ROut, 1))
		case "ry|r_out":
			parseVec6(rest, rowPtr(&cur.ROut, 2))
		case "py|r_out":
			parseVec6(rest, rowPtr(&cur.ROut, 3))
		case "de|r_out":
			parseVec6(rest, rowPtr(&cur.ROut, 4))
		case "dl|r_out":
			parseVec6(rest, rowPtr(&cur.ROut, 5))
		case "pass_method":
			if len(rest) == 0 {
				return nil, track.StatusFlatFileError
			}
			pm, ok := track.ParsePassMethod(rest[0])
			if !ok {
				return nil, track.StatusPassMethodNotDefined
			}
			cur.PassMethod = pm
			if pm == track.PassKicktable {
				kt, status := LoadKicktable(joinDir(dir, cur.FamName+".txt"))
				if status != track.StatusSuccess {
					return nil, status
				}
				cur.Kicktable = acc.AddKicktable(cur.FamName+".txt", kt)
				cur.Length = cur.Kicktable.Length
			}
		case "polynom_a":
			applyPolynomPairs(&cur.PolynomA, &cur.PolynomB, rest)
		case "polynom_b":
			applyPolynomPairs(&cur.PolynomB, &cur.PolynomA, rest)
		case "thin_KL":
			cur.ThinKL = parseFloat(rest, 0)
		case "thin_SL":
			cur.ThinSL = parseFloat(rest, 0)
		default:
			if len(cmd) < 2 {
				continue
			}
			return nil, track.StatusFlatFileError
		}
	}

	if haveElement {
		acc.Lattice = append(acc.Lattice, cur)
	}
	return acc, track.StatusSuccess
}

// applyPolynomPairs parses order/value pairs from an order, growing both own
// and sibling polynomials (polynom_a and polynom_b are always kept the same
// length) to the larger of their two sizes, mirroring synchronize_polynomials.
func applyPolynomPairs(own, sibling *[]float64, fields []string) {
	for i := 0; i+1 < len(fields); i += 2 {
		order, err1 := strconv.Atoi(fields[i])
		value, err2 := strconv.ParseFloat(fields[i+1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		if order+1 > len(*own) {
			grown := make([]float64, order+1)
			copy(grown, *own)
			*own = grown
		}
		(*own)[order] = value
	}
	size := len(*own)
	if len(*sibling) > size {
		size = len(*sibling)
	}
	if len(*own) < size {
		grown := make([]float64, size)
		copy(grown, *own)
		*own = grown
	}
	if len(*sibling) < size {
		grown := make([]float64, size)
		copy(grown, *sibling)
		*sibling = grown
	}
}

// WriteTrackcpp writes acc in the native flat-file dialect: 17 significant
// digits, scientific notation, left-aligned fixed-width header fields, and
// parameters omitted when they equal their zero value.
func WriteTrackcpp(path string, acc *track.Accelerator) track.Status {
	f, err := os.Create(path)
	if err != nil {
		return track.StatusFileNotFound
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	fmt.Fprintf(w, "%-18s%s eV\n", "% energy", sci(acc.Energy))
	fmt.Fprintf(w, "%-18s%d\n", "% harmonic_number", acc.HarmonicNumber)
	fmt.Fprintf(w, "%-18s%s\n", "% cavity_on", boolStr(acc.CavityOn))
	fmt.Fprintf(w, "%-18s%s\n", "% radiation_on", boolStr(acc.RadiationOn))
	fmt.Fprintf(w, "%-18s%s\n", "% vchamber_on", boolStr(acc.VchamberOn))
	fmt.Fprintln(w)

	for i, e := range acc.Lattice {
		fmt.Fprintf(w, "### %04d ###\n", i)
		fmt.Fprintf(w, "%-16s%s\n", "fam_name", e.FamName)
		fmt.Fprintf(w, "%-16s%s\n", "length", sci(e.Length))
		fmt.Fprintf(w, "%-16s%s\n", "pass_method", e.PassMethod.String())
		if e.NrSteps != 1 {
			fmt.Fprintf(w, "%-16s%d\n", "nr_steps", e.NrSteps)
		}
		writePolynom(w, "polynom_a", e.PolynomA)
		writePolynom(w, "polynom_b", e.PolynomB)
		writeIfNonzero(w, "hmin", e.Hmin)
		writeIfNonzero(w, "hmax", e.Hmax)
		writeIfNonzero(w, "vmin", e.Vmin)
		writeIfNonzero(w, "vmax", e.Vmax)
		writeIfNonzero(w, "hkick", e.Hkick)
		writeIfNonzero(w, "vkick", e.Vkick)
		writeIfNonzero(w, "angle", e.Angle)
		writeIfNonzero(w, "gap", e.Gap)
		writeIfNonzero(w, "fint_in", e.FintIn)
		writeIfNonzero(w, "fint_out", e.FintOut)
		writeIfNonzero(w, "voltage", e.Voltage)
		writeIfNonzero(w, "frequency", e.Frequency)
		writeIfNonzero(w, "angle_in", e.AngleIn)
		writeIfNonzero(w, "angle_out", e.AngleOut)
		writeIfNonzero(w, "thin_KL", e.ThinKL)
		writeIfNonzero(w, "thin_SL", e.ThinSL)
		if e.TIn != ([6]float64{}) {
			write6(w, "t_in", e.TIn)
		}
		if e.TOut != ([6]float64{}) {
			write6(w, "t_out", e.TOut)
		}
		writeRMatrixIfNonIdentity(w, "r_in", e.RIn)
		writeRMatrixIfNonIdentity(w, "r_out", e.ROut)
		fmt.Fprintln(w)
	}

	return track.StatusSuccess
}

var r6Labels = [6]string{"rx", "px", "ry", "py", "de", "dl"}

func writeRMatrixIfNonIdentity(w *bufio.Writer, suffix string, m [6][6]float64) {
	var id [6][6]float64
	for i := range id {
		id[i][i] = 1
	}
	if m == id {
		return
	}
	for i := 0; i < 6; i++ {
		write6(w, r6Labels[i]+"|"+suffix, m[i])
	}
}

func write6(w *bufio.Writer, label string, v [6]float64) {
	fmt.Fprintf(w, "%-16s", label)
	for _, x := range v {
		fmt.Fprintf(w, "%s  ", sci(x))
	}
	fmt.Fprintln(w)
}

func writePolynom(w *bufio.Writer, label string, p []float64) {
	nonzero := false
	for _, v := range p {
		if v != 0 {
			nonzero = true
			break
		}
	}
	if !nonzero {
		return
	}
	fmt.Fprintf(w, "%-16s", label)
	for i, v := range p {
		if v != 0 {
			fmt.Fprintf(w, "%d %s ", i, sci(v))
		}
	}
	fmt.Fprintln(w)
}

func writeIfNonzero(w *bufio.Writer, label string, v float64) {
	if v != 0 {
		fmt.Fprintf(w, "%-16s%s\n", label, sci(v))
	}
}

func sci(v float64) string {
	return strconv.FormatFloat(v, 'E', 16, 64)
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func parseFloat(fields []string, def float64) float64 {
	if len(fields) == 0 {
		return def
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return def
	}
	return v
}

func parseBool(fields []string) bool {
	return len(fields) > 0 && fields[0] == "true"
}

func parseVec6(fields []string, out *[6]float64) {
	for i := 0; i < 6 && i < len(fields); i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err == nil {
			out[i] = v
		}
	}
}

func rowPtr(m *[6][6]float64, row int) *[6]float64 { return &m[row] }

func dirOf(path string) string {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return "."
	}
	return path[:i]
}

func joinDir(dir, name string) string {
	if dir == "" || dir == "." {
		return name
	}
	return dir + "/" + name
}
