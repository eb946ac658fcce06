package cdr

import "unsafe"

// hostEndianness is probed once at package init using a known-value
// probe; callers hold onto the result rather than recomputing it per
// field.
var hostEndianness = detectHostEndianness()

// HostEndianness returns the byte order this process detected at init,
// the value "default-host" endianness resolves to.
func HostEndianness() Endianness {
	return hostEndianness
}

func detectHostEndianness() Endianness {
	var probe uint16 = 0x0001
	b := (*[2]byte)(unsafe.Pointer(&probe))
	if b[0] == 0x01 {
		return LittleEndian
	}
	return BigEndian
}
