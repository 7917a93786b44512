package costkey

import "fmt"

// ObjectType is one of the four infrastructure object categories a cost can
// be rolled up to. The numeric value is the ordinal: the slot position in the
// composite key and the value stored in the object_types reference table.
type ObjectType int

const (
	Env ObjectType = iota + 1
	Farm
	FarmRole
	Server
)

// NumObjectTypes is the size of the closed ObjectType set.
const NumObjectTypes = 4

var objectTypeNames = [NumObjectTypes + 1]string{
	Env:      "env",
	Farm:     "farm",
	FarmRole: "farm_role",
	Server:   "server",
}

// ObjectTypes lists every ObjectType in ordinal order.
func ObjectTypes() []ObjectType {
	return []ObjectType{Env, Farm, FarmRole, Server}
}

// Valid reports whether t belongs to the fixed enumeration.
func (t ObjectType) Valid() bool {
	return t >= Env && t <= Server
}

// Ordinal returns the 1-based slot position of t.
func (t ObjectType) Ordinal() int {
	return int(t)
}

func (t ObjectType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("ObjectType(%d)", int(t))
	}
	return objectTypeNames[t]
}

// ParseObjectType maps a stored object_type name back to its ObjectType.
func ParseObjectType(name string) (ObjectType, error) {
	for _, t := range ObjectTypes() {
		if objectTypeNames[t] == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown object type %q", name)
}
