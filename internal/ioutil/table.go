package ioutil

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/jndunlap/csl/internal/clierr"
)

// TableOptions controls how ReadTable interprets an observation-table
// file, mirroring the CLI's table-shape flags.
type TableOptions struct {
	N          int
	M          int
	Separator  rune
	ColObs     bool // observations are columns instead of rows
	VarNames   bool // a names header is present
	ObsIndices bool // an observation-index header is present
}

// ReadTable reads a whitespace- or character-separated observation
// table into variable-major rows ([]byte per variable, one cell per
// observation), plus the variable names (synthesized as V0..Vn-1 if
// opts.VarNames is false).
func ReadTable(path string, opts TableOptions) (names []string, rows [][]byte, err error) {
	return ReadTableOwned(path, opts, nil)
}

// owns reports whether observation index i should actually be decoded;
// a nil owns decodes everything. ReadTableOwned is the single entry
// point both ReadTable and the --parallel-read path funnel through, so
// a rank that owns only a slice of the observations never pays the
// strconv cost of the rest.
type owns func(obsI int) bool

// ReadTableOwned is ReadTable with per-observation ownership control:
// cells belonging to an observation index for which owns returns false
// are skipped (left as the zero byte) instead of parsed, so a caller
// restricting ownership to its own round-robin slice avoids decoding
// cells it will discard anyway.
func ReadTableOwned(path string, opts TableOptions, ownsFn owns) (names []string, rows [][]byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, clierr.Input("ioutil: cannot open %q: %v", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	if opts.Separator != 0 {
		r.Comma = opts.Separator
	}
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	if ownsFn == nil {
		ownsFn = func(int) bool { return true }
	}
	if opts.ColObs {
		return readColumnMajorStream(r, opts, ownsFn)
	}
	return readRowMajorStream(r, opts, ownsFn)
}

func readRowMajorStream(r *csv.Reader, opts TableOptions, owns owns) ([]string, [][]byte, error) {
	var names []string
	if opts.VarNames {
		header, err := r.Read()
		if err != nil {
			return nil, nil, clierr.Input("ioutil: expected a variable-names header row: %v", err)
		}
		if opts.ObsIndices && len(header) > 0 {
			header = header[1:]
		}
		names = append([]string(nil), header...)
	} else {
		names = syntheticNames(opts.N)
	}

	rows := make([][]byte, opts.N)
	for v := range rows {
		rows[v] = make([]byte, opts.M)
	}

	obsI := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, clierr.Input("ioutil: malformed table: %v", err)
		}
		if opts.ObsIndices {
			if len(rec) == 0 {
				return nil, nil, clierr.Input("ioutil: row %d missing observation-index column", obsI)
			}
			rec = rec[1:]
		}
		if len(rec) != opts.N {
			return nil, nil, clierr.Input("ioutil: row %d has %d cells, want %d", obsI, len(rec), opts.N)
		}
		if owns(obsI) {
			for v, cell := range rec {
				b, err := parseCell(cell)
				if err != nil {
					return nil, nil, clierr.Wrapf(err, "ioutil: row %d, variable %d", obsI, v)
				}
				rows[v][obsI] = b
			}
		}
		obsI++
	}
	if obsI != opts.M {
		return nil, nil, clierr.Input("ioutil: table has %d observations, want %d", obsI, opts.M)
	}
	return names, rows, nil
}

func readColumnMajorStream(r *csv.Reader, opts TableOptions, owns owns) ([]string, [][]byte, error) {
	names := make([]string, opts.N)
	rows := make([][]byte, opts.N)

	if opts.ObsIndices {
		if _, err := r.Read(); err != nil {
			return nil, nil, clierr.Input("ioutil: expected an observation-index header row: %v", err)
		}
	}

	v := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, clierr.Input("ioutil: malformed table: %v", err)
		}
		if opts.VarNames {
			if len(rec) == 0 {
				return nil, nil, clierr.Input("ioutil: variable row %d missing name cell", v)
			}
			names[v] = rec[0]
			rec = rec[1:]
		} else {
			names[v] = syntheticName(v)
		}
		if len(rec) != opts.M {
			return nil, nil, clierr.Input("ioutil: variable row %d has %d cells, want %d", v, len(rec), opts.M)
		}
		row := make([]byte, opts.M)
		for obsI, cell := range rec {
			if !owns(obsI) {
				continue
			}
			b, err := parseCell(cell)
			if err != nil {
				return nil, nil, clierr.Wrapf(err, "ioutil: variable %d, observation %d", v, obsI)
			}
			row[obsI] = b
		}
		rows[v] = row
		v++
	}
	if v != opts.N {
		return nil, nil, clierr.Input("ioutil: table has %d variable rows, want %d", v, opts.N)
	}
	return names, rows, nil
}

func parseCell(cell string) (byte, error) {
	n, err := strconv.ParseUint(cell, 10, 16)
	if err != nil {
		return 0, clierr.Input("ioutil: cell %q is not a valid category code: %v", cell, err)
	}
	if n > 255 {
		return 0, clierr.Input("ioutil: cell %q exceeds the 255 category-code limit", cell)
	}
	return byte(n), nil
}

func syntheticNames(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = syntheticName(i)
	}
	return out
}

func syntheticName(i int) string {
	return "V" + strconv.Itoa(i)
}

// CheckObservationCountOverflow reports whether m is large enough that
// joint-count products could overflow 32-bit arithmetic: the reference
// bound is sqrt(UINT32_MAX).
func CheckObservationCountOverflow(m int) bool {
	return float64(m) > math.Sqrt(math.MaxUint32)
}
