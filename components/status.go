package components

// BranchStatus describes why a branch is or is not growing.
// Statuses are mutually exclusive and evaluated in a fixed priority
// order: max length, then max generation, then overcrowding.
// StoppedSpaceConstraint is never produced by that pass; it is set
// only when a branching attempt finds the prospective tip blocked.
type BranchStatus uint8

const (
	Growing BranchStatus = iota
	StoppedMaxLength
	StoppedSpaceConstraint
	StoppedMaxGeneration
	StoppedOvercrowded
)

// NumStatuses is the number of distinct branch statuses.
const NumStatuses = 5

func (s BranchStatus) String() string {
	switch s {
	case Growing:
		return "growing"
	case StoppedMaxLength:
		return "max_length"
	case StoppedSpaceConstraint:
		return "space_constraint"
	case StoppedMaxGeneration:
		return "max_generation"
	case StoppedOvercrowded:
		return "overcrowded"
	default:
		return "unknown"
	}
}

// Stopped reports whether the status halts autonomous growth.
func (s BranchStatus) Stopped() bool {
	return s != Growing
}

// Reopenable reports whether the status may revert to Growing after
// pruning relieves local crowding. Length and generation stops are
// permanent.
func (s BranchStatus) Reopenable() bool {
	return s == StoppedSpaceConstraint || s == StoppedOvercrowded
}
