package matrix

// Matrix is a table of counts addressed by row and column. Reads return
// copies of rows and columns, writes panic with ErrIndexOutOfRange on a bad index.
type Matrix interface {
	Shape() (uint32, uint32)
	Get(uint32, uint32) uint32
	Set(uint32, uint32, uint32)
	Incr(uint32, uint32, uint32)
	Decr(uint32, uint32, uint32)
	GetRow(uint32) []uint32
	GetCol(uint32) []uint32
	Sum() uint64
}

var _ Matrix = (*Uint32Matrix)(nil)
