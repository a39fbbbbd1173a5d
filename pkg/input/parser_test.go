package input

import (
	"encoding/binary"
	"testing"
)

type parsed struct {
	eventType uint16
	code      uint16
	value     int32
}

func record(size int, eventType, code uint16, value int32) []byte {
	b := make([]byte, size)
	off := size - 8
	binary.LittleEndian.PutUint16(b[off:], eventType)
	binary.LittleEndian.PutUint16(b[off+2:], code)
	binary.LittleEndian.PutUint32(b[off+4:], uint32(value))
	return b
}

func collect(p *eventParser, chunk []byte) []parsed {
	var out []parsed
	p.feed(chunk, func(eventType, code uint16, value int32) {
		out = append(out, parsed{eventType, code, value})
	})
	return out
}

func TestParser24ByteRecords(t *testing.T) {
	var p eventParser

	var stream []byte
	stream = append(stream, record(24, evAbs, 0x00, 512)...)  // ABS_X
	stream = append(stream, record(24, evKey, 0x14a, 1)...)   // BTN_TOUCH down
	stream = append(stream, record(24, evSyn, 0x00, 0)...)    // SYN_REPORT

	got := collect(&p, stream)
	if len(got) != 3 {
		t.Fatalf("parsed %d records, want 3", len(got))
	}
	if got[0].eventType != evAbs || got[0].value != 512 {
		t.Errorf("record 0 = %+v, want ABS value 512", got[0])
	}
	if got[1].eventType != evKey || got[1].code != 0x14a || got[1].value != 1 {
		t.Errorf("record 1 = %+v, want BTN_TOUCH down", got[1])
	}
	if got[2].eventType != evSyn {
		t.Errorf("record 2 = %+v, want SYN", got[2])
	}
}

func TestParser16ByteRecords(t *testing.T) {
	var p eventParser

	var stream []byte
	for i := 0; i < 2; i++ {
		stream = append(stream, record(16, evAbs, 0x01, int32(100+i))...)
	}

	got := collect(&p, stream)
	if len(got) != 2 {
		t.Fatalf("parsed %d records, want 2", len(got))
	}
	if got[1].value != 101 {
		t.Errorf("record 1 value = %d, want 101", got[1].value)
	}
}

func TestParserSplitAcrossReads(t *testing.T) {
	var p eventParser

	var stream []byte
	stream = append(stream, record(24, evKey, 0x14a, 1)...)
	stream = append(stream, record(24, evSyn, 0, 0)...)
	stream = append(stream, record(24, evKey, 0x14a, 0)...)

	// Feed in awkward chunk sizes; records must still come out whole.
	var got []parsed
	for i := 0; i < len(stream); i += 10 {
		end := i + 10
		if end > len(stream) {
			end = len(stream)
		}
		got = append(got, collect(&p, stream[i:end])...)
	}

	if len(got) != 3 {
		t.Fatalf("parsed %d records, want 3", len(got))
	}
	if got[2].eventType != evKey || got[2].value != 0 {
		t.Errorf("record 2 = %+v, want BTN_TOUCH up", got[2])
	}
}

func TestIsTouch(t *testing.T) {
	if !isTouch(evKey) || !isTouch(evAbs) {
		t.Error("EV_KEY and EV_ABS must count as touch activity")
	}
	if isTouch(evSyn) {
		t.Error("EV_SYN must not count as touch activity")
	}
}

func TestFakeCoalesces(t *testing.T) {
	f := NewFake()
	f.Touch()
	f.Touch()
	f.Touch()

	select {
	case <-f.Activity():
	default:
		t.Fatal("no activity pending")
	}
	select {
	case <-f.Activity():
		t.Fatal("burst did not coalesce into one notification")
	default:
	}
}
