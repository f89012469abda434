package module

// Permission gates one family of host-capability calls (spec §4.7).
type Permission uint8

const (
	PermOutput Permission = 1 << iota
	PermOpaque
	PermConnectionAccess
	PermWriteBuffer
	PermReadBuffer
)

// DefaultPermissions are granted to every module at load time (spec §4.5
// step 4): "{Output, Opaque, ConnectionAccess, WriteBuffer, ReadBuffer}".
const DefaultPermissions = PermOutput | PermOpaque | PermConnectionAccess | PermWriteBuffer | PermReadBuffer

// Has reports whether p includes want.
func (p Permission) Has(want Permission) bool {
	return p&want == want
}
