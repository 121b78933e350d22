package component

// Z-order layers. Components paint in ascending order; fractions place a
// component just above a layer.
const (
	ZOrderChassis   = 1.0
	ZOrderBoard     = 2.0
	ZOrderTrace     = 3.0
	ZOrderComponent = 4.0
	ZOrderText      = 5.0
)

// BOMPolicy controls how a component appears in a bill of materials.
type BOMPolicy int

const (
	BOMShowAlways BOMPolicy = iota
	BOMShowOnlyTypeName
	BOMNeverShow
)

func (p BOMPolicy) String() string {
	switch p {
	case BOMShowAlways:
		return "always"
	case BOMShowOnlyTypeName:
		return "type-name-only"
	case BOMNeverShow:
		return "never"
	default:
		return "unknown"
	}
}

// TypeDescriptor is the static metadata of a component type.
type TypeDescriptor struct {
	Name               string
	Category           string
	Author             string
	Description        string
	InstanceNamePrefix string
	Stretchable        bool
	ZOrder             float64
	BOMPolicy          BOMPolicy
	AutoEdit           bool // open the property editor right after placement
}
