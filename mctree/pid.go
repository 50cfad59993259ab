package mctree

import (
	"fmt"
	"sort"

	"go-hep.org/x/hep/heppdt"
)

// longLived holds the absolute PDG codes of particles with c*tau above
// 1 mm, excluding the gluon.
var longLived = map[int]struct{}{
	11:   {}, // e
	12:   {}, // nu_e
	13:   {}, // mu
	14:   {}, // nu_mu
	16:   {}, // nu_tau
	22:   {}, // gamma
	130:  {}, // K0_L
	211:  {}, // pi+
	310:  {}, // K0_S
	321:  {}, // K+
	2112: {}, // n
	2212: {}, // p
	3112: {}, // Sigma-
	3122: {}, // Lambda
	3312: {}, // Xi-
	3322: {}, // Xi0
	3334: {}, // Omega-
}

// IsLongLived reports whether particles of type pid or its antiparticle
// are long-lived.
func IsLongLived(pid int) bool {
	if pid < 0 {
		pid = -pid
	}
	_, ok := longLived[pid]
	return ok
}

// LongLivedPIDs returns the long-lived PDG codes in ascending order.
func LongLivedPIDs() []int {
	pids := make([]int, 0, len(longLived))
	for pid := range longLived {
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	return pids
}

const nucleusBase = 1000000000

// Name returns a printable particle name for a PDG code. Nuclei are
// written as Nucleus(Z,A).
func Name(pid int) string {
	if p := heppdt.ParticleByID(heppdt.PID(pid)); p != nil {
		return p.Name
	}
	if pid/nucleusBase == 1 {
		code := pid - nucleusBase
		z := code / 10000
		code -= z * 10000
		a := code / 10
		return fmt.Sprintf("Nucleus(%d,%d)", z, a)
	}
	return fmt.Sprintf("Unknown(%d)", pid)
}
