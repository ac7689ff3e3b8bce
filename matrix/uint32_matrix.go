package matrix

// internal Uint32 matrix representation
type Uint32Matrix struct {
	nrow uint32
	ncol uint32
	data []uint32
}

// NewUint32Matrix creates a new Uint32Matrix with r rows and c columns.
// A uint32 slice is used as the underlying storage and the data layout
// is in row major order, i.e. the (i*c + j)-th element in the data slice
// is the [i, j]-th element in the matrix. Vector is defined as a matrix
// with one column, i.e. a column vector. Zero rows or columns are allowed
// so an empty corpus still gets well formed count tables.
func NewUint32Matrix(r, c uint32) *Uint32Matrix {
	return &Uint32Matrix{
		nrow: r,
		ncol: c,
		data: make([]uint32, uint64(r)*uint64(c)),
	}
}

// get the shape of the matrix
func (m *Uint32Matrix) Shape() (uint32, uint32) {
	return m.nrow, m.ncol
}

// get the [r, c]-th element of the matrix
func (m *Uint32Matrix) Get(r, c uint32) uint32 {
	return m.data[m.offset(r, c)]
}

// get a copy of the r-th row of the matrix
func (m *Uint32Matrix) GetRow(r uint32) []uint32 {
	if r >= m.nrow {
		panic(ErrIndexOutOfRange)
	}
	start := uint64(r) * uint64(m.ncol)
	row := make([]uint32, m.ncol)
	copy(row, m.data[start:start+uint64(m.ncol)])
	return row
}

// get a copy of the c-th column of the matrix
func (m *Uint32Matrix) GetCol(c uint32) []uint32 {
	if c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	column := make([]uint32, m.nrow)
	for r := uint32(0); r < m.nrow; r += 1 {
		column[r] = m.data[uint64(r)*uint64(m.ncol)+uint64(c)]
	}
	return column
}

// set val to the [r, c]-th element of the matrix
func (m *Uint32Matrix) Set(r, c uint32, val uint32) {
	m.data[m.offset(r, c)] = val
}

// increment the [r, c]-th element of the matrix by val
func (m *Uint32Matrix) Incr(r, c uint32, val uint32) {
	m.data[m.offset(r, c)] += val
}

// decrement the [r, c]-th element of the matrix by val, counts never
// wrap around
func (m *Uint32Matrix) Decr(r, c uint32, val uint32) {
	i := m.offset(r, c)
	if m.data[i] < val {
		panic(ErrUnderflow)
	}
	m.data[i] -= val
}

// Sum returns the total of all elements as uint64 so large corpora
// cannot overflow it.
func (m *Uint32Matrix) Sum() uint64 {
	sum := uint64(0)
	for _, v := range m.data {
		sum += uint64(v)
	}
	return sum
}

// Reset zeroes every element in place.
func (m *Uint32Matrix) Reset() {
	for i := range m.data {
		m.data[i] = 0
	}
}

// offset is computed in 64 bits, r*ncol overflows uint32 for large
// topic-word tables
func (m *Uint32Matrix) offset(r, c uint32) uint64 {
	if r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	return uint64(r)*uint64(m.ncol) + uint64(c)
}
