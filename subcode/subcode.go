/*
Package subcode reads and writes the CD+G subcode stream.

A CD+G stream is a sequence of 24 byte packets. Each packet is laid out as:

	byte 0      command, lower six bits (9 for graphics instructions)
	byte 1      instruction, lower six bits
	bytes 2-3   Q channel parity
	bytes 4-19  instruction data
	bytes 20-23 P channel parity

The parity bytes are carried but never checked. The stream runs at 300
packets per second of audio.
*/
package subcode

const (
	// RecordSize is the size in bytes of a single packet
	RecordSize = 24
	// DataSize is the size in bytes of the instruction data
	DataSize = 16
	// RecordsPerSecond is the nominal packet rate of the stream
	RecordsPerSecond = 300

	dataOffset = 4
)

// Record is a single packet of the subcode stream.
type Record [RecordSize]byte

// Command returns the command code held in the packet.
func (r Record) Command() byte {
	return r[0] & 0x3f
}

// Instruction returns the instruction code held in the packet.
func (r Record) Instruction() byte {
	return r[1] & 0x3f
}

// Data returns the 16 bytes of instruction data.
func (r Record) Data() [DataSize]byte {
	var d [DataSize]byte
	copy(d[:], r[dataOffset:dataOffset+DataSize])
	return d
}

// New returns a packet with the given command, instruction and data.
func New(command, instruction byte, data [DataSize]byte) Record {
	var r Record
	r[0] = command & 0x3f
	r[1] = instruction & 0x3f
	copy(r[dataOffset:], data[:])
	return r
}
