package snapshot

import (
	"bytes"
	"testing"

	"github.com/draftcore/engine/geom"
	"github.com/draftcore/engine/selection"
	"github.com/draftcore/engine/store"
	"github.com/draftcore/engine/text"
	"github.com/draftcore/engine/wire"
)

func sampleDoc() Document {
	s := store.New()
	s.UpsertRect(3, store.Rect{X: 1, Y: 2, W: 3, H: 4, Fill: geom.RGBA{1, 0, 0, 1}})
	s.UpsertRect(1, store.Rect{X: 5, Y: 6, W: 7, H: 8})
	s.UpsertPolyline(2, store.Polyline{StrokeWidthPx: 2}, []geom.Vec2{{0, 0}, {1, 1}, {2, 2}})
	s.UpsertLayer(store.Layer{ID: 1, Order: 0, Name: "base"})

	txt := text.New()
	txt.UpsertText(10, text.TextRec{Content: "hi", Runs: []text.TextRun{{StartIndex: 0, Length: 2}}})

	draw := selection.NewDrawOrder()
	draw.Set([]uint32{3, 1, 2, 10})
	sel := selection.New()
	sel.Set([]uint32{1}, selection.Replace)

	return Document{Store: s, Text: txt, Selection: sel, DrawOrder: draw, NextID: 11}
}

func TestEncodeDecodeRoundTripIsByteIdentical(t *testing.T) {
	doc := sampleDoc()
	buf1 := Encode(doc)
	decoded, err := Decode(buf1)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	buf2 := Encode(decoded)
	if !bytes.Equal(buf1, buf2) {
		t.Fatal("encode(decode(encode(doc))) must equal encode(doc)")
	}
}

func TestDecodePreservesPolylinePoints(t *testing.T) {
	doc := sampleDoc()
	decoded, err := Decode(Encode(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	pl, ok := decoded.Store.FindPolyline(2)
	if !ok {
		t.Fatal("polyline 2 missing after round trip")
	}
	pts := decoded.Store.Points.All()[pl.Offset : pl.Offset+pl.Count]
	want := []geom.Vec2{{0, 0}, {1, 1}, {2, 2}}
	for i, p := range want {
		if pts[i] != p {
			t.Fatalf("point %d: have %v, want %v", i, pts[i], p)
		}
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	buf := Encode(sampleDoc())
	buf[0] ^= 0xff
	if _, err := Decode(buf); wire.Code(err) != wire.InvalidMagic {
		t.Fatalf("err: have %v, want InvalidMagic", err)
	}
}

func TestDecodeRejectsCorruptedSectionChecksum(t *testing.T) {
	buf := Encode(sampleDoc())
	// Flip a byte well inside the first section's payload.
	buf[headerSize+sectionEntrySz*7+1] ^= 0xff
	if _, err := Decode(buf); wire.Code(err) != wire.InvalidPayloadSize {
		t.Fatalf("err: have %v, want InvalidPayloadSize", err)
	}
}

func TestDecodeRejectsMissingRequiredSection(t *testing.T) {
	buf := Encode(sampleDoc())
	// Corrupt sectionCount to pretend one fewer section exists,
	// dropping STYL from the table.
	buf[8] = buf[8] - 1
	if _, err := Decode(buf); wire.Code(err) == wire.Ok {
		t.Fatal("expected a missing-section error")
	}
}
