package io

import (
	"bufio"
	"fmt"
	"os"
	"path"

	"github.com/phil-mansfield/gobssn"
)

// ConstraintFiles returns the names of the Hamiltonian and momentum tables
// written to dir.
func ConstraintFiles(dir, pre, app string) (ham, mom string) {
	ham = path.Join(dir, fmt.Sprintf("%sham%s.txt", pre, app))
	mom = path.Join(dir, fmt.Sprintf("%smom%s.txt", pre, app))
	return ham, mom
}

// WriteConstraints writes c as two text tables. Each row of the Hamiltonian
// table is a time followed by one value per point, and each row of the
// momentum table is a time followed by the r, theta, phi components of every
// point in turn. Both tables start with a commented header listing r.
func WriteConstraints(
	dir, pre, app string, r []float64, c *gobssn.Constraints,
) error {
	hamFile, momFile := ConstraintFiles(dir, pre, app)

	err := writeTable(hamFile, r, c.Times, func(s int, w *bufio.Writer) {
		for _, h := range c.Ham[s] { fmt.Fprintf(w, " %.12g", h) }
	})
	if err != nil { return err }

	return writeTable(momFile, r, c.Times, func(s int, w *bufio.Writer) {
		for _, m := range c.Mom[s] {
			fmt.Fprintf(w, " %.12g %.12g %.12g", m[0], m[1], m[2])
		}
	})
}

func writeTable(
	fname string, r, times []float64, row func(int, *bufio.Writer),
) error {
	f, err := os.Create(fname)
	if err != nil { return err }
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprint(w, "# r:")
	for _, x := range r { fmt.Fprintf(w, " %.12g", x) }
	fmt.Fprintln(w)

	for s, t := range times {
		fmt.Fprintf(w, "%.12g", t)
		row(s, w)
		fmt.Fprintln(w)
	}

	if err := w.Flush(); err != nil { return err }
	return f.Close()
}
