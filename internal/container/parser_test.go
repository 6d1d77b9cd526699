package container

import (
	"bytes"
	"testing"
)

func collectCodestream(events []Event) []byte {
	var buf bytes.Buffer
	for _, e := range events {
		if e.Kind == EventCodestream {
			buf.Write(e.Codestream)
		}
	}
	return buf.Bytes()
}

func TestBareCodestreamSignature(t *testing.T) {
	data := append([]byte{0xFF, 0x0A}, []byte("rest-of-codestream")...)
	p := NewParser()
	events, consumed, err := p.Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if consumed != len(data) {
		t.Fatalf("consumed=%d want %d", consumed, len(data))
	}
	if len(events) < 1 || events[0].Kind != EventBitstreamKind || events[0].Bitstream != KindBareCodestream {
		t.Fatalf("expected first event to be BitstreamKind(BareCodestream), got %+v", events)
	}
	if got := collectCodestream(events); !bytes.Equal(got, data) {
		t.Fatalf("codestream payload = %q, want %q", got, data)
	}
}

func TestContainerSignatureAndJxlc(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(containerSignature[:])
	payload := []byte("codestream-bytes-here")
	writeBox(&buf, FourCCJxlc, payload)

	p := NewParser()
	events, consumed, err := p.Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if consumed != buf.Len() {
		t.Fatalf("consumed=%d want %d", consumed, buf.Len())
	}
	if len(events) < 1 || events[0].Bitstream != KindContainer {
		t.Fatalf("expected BitstreamKind(Container) first, got %+v", events)
	}
	if got := collectCodestream(events); !bytes.Equal(got, payload) {
		t.Fatalf("codestream = %q, want %q", got, payload)
	}
}

func TestInvalidSignature(t *testing.T) {
	p := NewParser()
	_, _, err := p.Parse([]byte{0x00, 0x01, 0x02, 0x03})
	if err != ErrInvalidSignature {
		t.Fatalf("want ErrInvalidSignature, got %v", err)
	}
}

// TestIncrementalChunking verifies the property from spec.md §8: parser
// output depends only on the concatenation of Codestream payloads, not
// on how the input bytes are chunked across Parse calls.
func TestIncrementalChunking(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(containerSignature[:])
	payload := bytes.Repeat([]byte{0xAB, 0xCD, 0xEF}, 50)
	writeBox(&buf, FourCCJxlc, payload)
	full := buf.Bytes()

	// Whole-buffer parse.
	p1 := NewParser()
	events1, _, err := p1.Parse(full)
	if err != nil {
		t.Fatal(err)
	}
	want := collectCodestream(events1)

	// Growing-window parse: feed progressively larger prefixes, since the
	// parser re-processes from the unconsumed offset each call.
	p3 := NewParser()
	var got3 bytes.Buffer
	offset, end := 0, 1
	for offset < len(full) {
		events, consumed, err := p3.Parse(full[offset:end])
		if err != nil && NeedBytes(err) == 0 {
			t.Fatalf("unexpected error: %v", err)
		}
		got3.Write(collectCodestream(events))
		offset += consumed
		if consumed == 0 {
			end++
			if end > len(full) {
				t.Fatalf("parser stalled before consuming full input")
			}
		}
	}

	if !bytes.Equal(got3.Bytes(), want) {
		t.Fatalf("incremental parse mismatch: got %d bytes, want %d bytes", got3.Len(), len(want))
	}
}

// writeBox writes a minimal 8-byte-header ISOBMFF box.
func writeBox(buf *bytes.Buffer, fourCC FourCC, payload []byte) {
	size := uint32(8 + len(payload))
	buf.WriteByte(byte(size >> 24))
	buf.WriteByte(byte(size >> 16))
	buf.WriteByte(byte(size >> 8))
	buf.WriteByte(byte(size))
	buf.WriteByte(byte(fourCC >> 24))
	buf.WriteByte(byte(fourCC >> 16))
	buf.WriteByte(byte(fourCC >> 8))
	buf.WriteByte(byte(fourCC))
	buf.Write(payload)
}
