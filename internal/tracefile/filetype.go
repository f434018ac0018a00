package tracefile

// FileType identifies the kind of input or output file a command works with.
type FileType uint8

const (
	TraceFile FileType = 1 + iota
	AddressListFile
	ClusterTreeFile
	RemapFile
	MatrixFile
)

func (t FileType) String() string {
	s := "invalid"
	switch t {
	case TraceFile:
		s = "trace"
	case AddressListFile:
		s = "address list"
	case ClusterTreeFile:
		s = "cluster tree"
	case RemapFile:
		s = "remap"
	case MatrixFile:
		s = "matrix"
	}
	return s
}
