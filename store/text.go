package store

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	log "github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/bobonovski/ldagibbs/matrix"
)

// The text format is one "rows,cols" header line followed by one
// "row,col,value" line per nonzero element.

// serialize float rows to w
func WriteFloat64Rows(w io.Writer, rows [][]float64) error {
	out := bufio.NewWriter(w)

	r, c := len(rows), 0
	if r > 0 {
		c = len(rows[0])
	}
	// write the matrix shape
	fmt.Fprintf(out, "%d,%d\n", r, c)

	for ridx, row := range rows {
		if len(row) != c {
			return errors.Errorf("row %d has %d columns, want %d", ridx, len(row), c)
		}
		for cidx, val := range row {
			if val != 0 { // only write out nonzero value
				fmt.Fprintf(out, "%d,%d,%s\n", ridx, cidx, strconv.FormatFloat(val, 'g', -1, 64))
			}
		}
	}
	return errors.Wrap(out.Flush(), "write rows")
}

// serialize a count table to w
func WriteUint32Matrix(w io.Writer, m matrix.Matrix) error {
	out := bufio.NewWriter(w)

	r, c := m.Shape()
	// write the matrix shape
	fmt.Fprintf(out, "%d,%d\n", r, c)

	var val uint32
	for ridx := uint32(0); ridx < r; ridx += 1 {
		for cidx := uint32(0); cidx < c; cidx += 1 {
			val = m.Get(ridx, cidx)
			if val > 0 { // only write out nonzero value
				fmt.Fprintf(out, "%d,%d,%d\n", ridx, cidx, val)
			}
		}
	}
	return errors.Wrap(out.Flush(), "write matrix")
}

// deserialize float rows from r
func ReadFloat64Rows(r io.Reader) ([][]float64, error) {
	var rows [][]float64
	var ncol uint64
	lineIdx := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		txt := scanner.Text()
		if lineIdx == 0 {
			shape := strings.Split(txt, ",")
			if len(shape) != 2 {
				return nil, errors.Errorf("model corrupted, shape not found: %s", txt)
			}
			nrow, err := strconv.ParseUint(shape[0], 10, 32)
			if err != nil {
				return nil, errors.Wrap(err, "parse row count")
			}
			ncol, err = strconv.ParseUint(shape[1], 10, 32)
			if err != nil {
				return nil, errors.Wrap(err, "parse column count")
			}
			rows = make([][]float64, nrow)
			for i := range rows {
				rows[i] = make([]float64, ncol)
			}
			lineIdx += 1
			continue
		}

		value := strings.Split(txt, ",")
		if len(value) != 3 {
			log.Warningf("data corrupted, row %d, data %s", lineIdx, txt)
			lineIdx += 1
			continue
		}
		ridx, err := strconv.ParseUint(value[0], 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineIdx)
		}
		cidx, err := strconv.ParseUint(value[1], 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineIdx)
		}
		val, err := strconv.ParseFloat(value[2], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineIdx)
		}
		if ridx >= uint64(len(rows)) || cidx >= ncol {
			return nil, errors.Wrapf(matrix.ErrIndexOutOfRange, "line %d: [%d, %d]", lineIdx, ridx, cidx)
		}
		rows[ridx][cidx] = val

		lineIdx += 1
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read rows")
	}
	if lineIdx == 0 {
		return nil, errors.New("model corrupted, empty input")
	}
	return rows, nil
}

// write rows to file fn, replacing it
func WriteFloat64RowsFile(fn string, rows [][]float64) error {
	return WriteFile(fn, func(w io.Writer) error { return WriteFloat64Rows(w, rows) })
}

// write a count table to file fn, replacing it
func WriteUint32MatrixFile(fn string, m matrix.Matrix) error {
	return WriteFile(fn, func(w io.Writer) error { return WriteUint32Matrix(w, m) })
}

func ReadFloat64RowsFile(fn string) ([][]float64, error) {
	file, err := os.Open(fn)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", fn)
	}
	defer file.Close()
	return ReadFloat64Rows(file)
}

// WriteFile creates or truncates fn and hands it to write.
func WriteFile(fn string, write func(io.Writer) error) error {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return errors.Wrapf(err, "create %s", fn)
	}
	if err := write(out); err != nil {
		out.Close()
		return err
	}
	return errors.Wrapf(out.Close(), "close %s", fn)
}
