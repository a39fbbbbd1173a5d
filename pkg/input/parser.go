package input

import "encoding/binary"

// eventParser splits a byte stream into input_event records. The kernel
// struct is 24 bytes on 64-bit machines (16-byte timeval) and 16 bytes on
// 32-bit ones; the size is inferred from the stream, since reads always
// deliver whole records.
type eventParser struct {
	buf  []byte
	size int // 0 until inferred, then 16 or 24
}

// feed appends chunk to the buffer and invokes cb for every complete record.
func (p *eventParser) feed(chunk []byte, cb func(eventType, code uint16, value int32)) {
	p.buf = append(p.buf, chunk...)

	if p.size == 0 {
		switch {
		case len(p.buf) >= 48 && len(p.buf)%24 == 0:
			p.size = 24
		case len(p.buf) >= 32 && len(p.buf)%16 == 0:
			p.size = 16
		case len(p.buf) >= 24:
			// Single ambiguous record: assume 64-bit, the common case on
			// the aarch64 boards this daemon targets.
			p.size = 24
		}
	}

	for p.size != 0 && len(p.buf) >= p.size {
		rec := p.buf[:p.size]
		p.buf = p.buf[p.size:]

		var eventType, code uint16
		var value int32
		if p.size == 24 {
			eventType = binary.LittleEndian.Uint16(rec[16:18])
			code = binary.LittleEndian.Uint16(rec[18:20])
			value = int32(binary.LittleEndian.Uint32(rec[20:24]))
		} else {
			eventType = binary.LittleEndian.Uint16(rec[8:10])
			code = binary.LittleEndian.Uint16(rec[10:12])
			value = int32(binary.LittleEndian.Uint32(rec[12:16]))
		}
		cb(eventType, code, value)
	}
}
