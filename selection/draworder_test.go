package selection

import (
	"reflect"
	"testing"
)

func TestPushRemove(t *testing.T) {
	d := NewDrawOrder()
	d.Push(1)
	d.Push(2)
	d.Push(3)
	d.Remove(2)
	if !reflect.DeepEqual(d.IDs(), []uint32{1, 3}) {
		t.Fatalf("have %v", d.IDs())
	}
}

func TestBringToFrontSendToBack(t *testing.T) {
	d := NewDrawOrder()
	d.Set([]uint32{1, 2, 3, 4})
	d.Reorder([]uint32{2, 4}, BringToFront, 0)
	if !reflect.DeepEqual(d.IDs(), []uint32{1, 3, 2, 4}) {
		t.Fatalf("BringToFront: have %v", d.IDs())
	}
	d.Set([]uint32{1, 2, 3, 4})
	d.Reorder([]uint32{2, 4}, SendToBack, 0)
	if !reflect.DeepEqual(d.IDs(), []uint32{2, 4, 1, 3}) {
		t.Fatalf("SendToBack: have %v", d.IDs())
	}
}

func TestBringForwardStep(t *testing.T) {
	d := NewDrawOrder()
	d.Set([]uint32{1, 2, 3})
	d.Reorder([]uint32{1}, BringForward, 0)
	if !reflect.DeepEqual(d.IDs(), []uint32{2, 1, 3}) {
		t.Fatalf("BringForward: have %v", d.IDs())
	}
}
