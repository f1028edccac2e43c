package shared

import "fmt"

// ReturnCode is the outcome the host reports for every order
type ReturnCode int

const (
	OK            ReturnCode = 0
	NotOwner      ReturnCode = -1
	NoPath        ReturnCode = -2
	NameExists    ReturnCode = -3
	Busy          ReturnCode = -4
	NotFound      ReturnCode = -5
	NotEnough     ReturnCode = -6
	InvalidTarget ReturnCode = -7
	Full          ReturnCode = -8
	NotInRange    ReturnCode = -9
	InvalidArgs   ReturnCode = -10
	Tired         ReturnCode = -11
	NoBodypart    ReturnCode = -12
)

var returnCodeNames = map[ReturnCode]string{
	OK:            "OK",
	NotOwner:      "ERR_NOT_OWNER",
	NoPath:        "ERR_NO_PATH",
	NameExists:    "ERR_NAME_EXISTS",
	Busy:          "ERR_BUSY",
	NotFound:      "ERR_NOT_FOUND",
	NotEnough:     "ERR_NOT_ENOUGH",
	InvalidTarget: "ERR_INVALID_TARGET",
	Full:          "ERR_FULL",
	NotInRange:    "ERR_NOT_IN_RANGE",
	InvalidArgs:   "ERR_INVALID_ARGS",
	Tired:         "ERR_TIRED",
	NoBodypart:    "ERR_NO_BODYPART",
}

func (c ReturnCode) String() string {
	if name, ok := returnCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ReturnCode(%d)", int(c))
}

// IsOK reports whether the order was accepted
func (c ReturnCode) IsOK() bool {
	return c == OK
}
