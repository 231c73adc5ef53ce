package discovery

import "github.com/jndunlap/csl/internal/clierr"

// Algorithm identifies one of the seven closed, known discovery
// algorithms. It is a tagged variant, not an interface: behavior is
// dispatched by the two Run* functions in this package, not by a method
// on Algorithm.
type Algorithm string

const (
	GS        Algorithm = "gs"
	IAMB      Algorithm = "iamb"
	InterIAMB Algorithm = "inter.iamb"
	MMPC      Algorithm = "mmpc"
	HITON     Algorithm = "hiton"
	SIHITONPC Algorithm = "si.hiton.pc"
	GetPC     Algorithm = "getpc"
)

// ParseAlgorithm validates a CLI-supplied algorithm name (the -a flag).
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case GS, IAMB, InterIAMB, MMPC, HITON, SIHITONPC, GetPC:
		return Algorithm(s), nil
	default:
		return "", clierr.Configuration("discovery: unknown algorithm %q", s)
	}
}

// IsDirectMB reports whether a belongs to the direct Markov-blanket
// family (GS, IAMB, Inter-IAMB), which produces MB(t) directly.
func (a Algorithm) IsDirectMB() bool {
	switch a {
	case GS, IAMB, InterIAMB:
		return true
	default:
		return false
	}
}

// IsTopologicalPC reports whether a belongs to the topological
// parents-and-children family (MMPC, HITON, SI-HITON-PC, GetPC), which
// produces PC(t).
func (a Algorithm) IsTopologicalPC() bool {
	return !a.IsDirectMB()
}

// interleaved reports whether re-screening of CPC happens immediately
// after each admission (HITON, SI-HITON-PC) or is deferred to the end
// (MMPC, GetPC).
func (a Algorithm) interleaved() bool {
	switch a {
	case HITON, SIHITONPC:
		return true
	default:
		return false
	}
}

// extraSepsetPass reports whether, after the deferred rescreen, GetPC
// performs one additional sepset-rescreen pass over the surviving CPC:
// a second rescreen round is GetPC's defining difference from MMPC in
// the literature.
func (a Algorithm) extraSepsetPass() bool {
	return a == GetPC
}
