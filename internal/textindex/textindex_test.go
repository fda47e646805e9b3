package textindex

import "testing"

func TestASCII(t *testing.T) {
	ix := New("hello")
	if ix.Len() != 5 || ix.Bytes() != 5 || ix.UTF16Len() != 5 {
		t.Fatalf("lengths = %d, %d, %d", ix.Len(), ix.Bytes(), ix.UTF16Len())
	}
	for i := 0; i <= 5; i++ {
		if ix.Byte(i) != i || ix.UTF16(i) != i {
			t.Errorf("rune %d: byte %d, utf16 %d", i, ix.Byte(i), ix.UTF16(i))
		}
	}
}

func TestMixedWidths(t *testing.T) {
	// a (1 byte, 1 unit), é (2 bytes, 1 unit), 😀 (4 bytes, 2 units), b.
	s := "aé😀b"
	ix := New(s)

	if ix.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", ix.Len())
	}

	wantBytes := []int{0, 1, 3, 7, 8}
	wantU16 := []int{0, 1, 2, 4, 5}
	for r := range wantBytes {
		if got := ix.Byte(r); got != wantBytes[r] {
			t.Errorf("Byte(%d) = %d, want %d", r, got, wantBytes[r])
		}
		if got := ix.UTF16(r); got != wantU16[r] {
			t.Errorf("UTF16(%d) = %d, want %d", r, got, wantU16[r])
		}
	}

	byteToRune := map[int]int{0: 0, 1: 1, 2: 1, 3: 2, 5: 2, 6: 2, 7: 3, 8: 4, 99: 4, -1: 0}
	for b, want := range byteToRune {
		if got := ix.RuneFromByte(b); got != want {
			t.Errorf("RuneFromByte(%d) = %d, want %d", b, got, want)
		}
	}

	u16ToRune := map[int]int{0: 0, 1: 1, 2: 2, 3: 2, 4: 3, 5: 4}
	for u, want := range u16ToRune {
		if got := ix.RuneFromUTF16(u); got != want {
			t.Errorf("RuneFromUTF16(%d) = %d, want %d", u, got, want)
		}
	}
}

func TestRanges(t *testing.T) {
	ix := New("aé😀b")

	if s, e := ix.ByteRange(1, 3); s != 1 || e != 7 {
		t.Errorf("ByteRange(1, 3) = %d, %d; want 1, 7", s, e)
	}
	if p, n := ix.UTF16Range(2, 4); p != 2 || n != 3 {
		t.Errorf("UTF16Range(2, 4) = %d, %d; want 2, 3", p, n)
	}
	if p, n := ix.UTF16Range(3, 1); n != 0 || p != 4 {
		t.Errorf("inverted UTF16Range = %d, %d; want 4, 0", p, n)
	}
	if s, e := ix.ByteRange(-5, 50); s != 0 || e != 8 {
		t.Errorf("clamped ByteRange = %d, %d; want 0, 8", s, e)
	}
}

func TestEmpty(t *testing.T) {
	ix := New("")
	if ix.Len() != 0 || ix.Byte(3) != 0 || ix.RuneFromUTF16(2) != 0 {
		t.Error("empty text should map everything to 0")
	}
}
