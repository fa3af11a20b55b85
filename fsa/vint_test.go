package fsa

import "testing"

func TestReadVInt(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    int
		wantEnd int
	}{
		{"zero", []byte{0x00}, 0, 1},
		{"one byte max", []byte{0x7F}, 127, 1},
		{"two bytes", []byte{0x80, 0x01}, 128, 2},
		{"two bytes full", []byte{0xFF, 0x7F}, 16383, 2},
		{"three bytes", []byte{0x81, 0x80, 0x01}, 1 + 1<<14, 3},
		{"padded zero", []byte{0x80, 0x80, 0x00}, 0, 3},
		{"trailing data ignored", []byte{0x05, 0xFF}, 5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, end := readVInt(tt.data, 0)
			if v != tt.want || end != tt.wantEnd {
				t.Errorf("readVInt(%v) = (%d, %d), want (%d, %d)",
					tt.data, v, end, tt.want, tt.wantEnd)
			}
			if got := skipVInt(tt.data, 0); got != tt.wantEnd {
				t.Errorf("skipVInt(%v) = %d, want %d", tt.data, got, tt.wantEnd)
			}
		})
	}
}

func TestReadLE(t *testing.T) {
	tests := []struct {
		data []byte
		off  int
		n    int
		want int
	}{
		{[]byte{0x12}, 0, 1, 0x12},
		{[]byte{0x34, 0x12}, 0, 2, 0x1234},
		{[]byte{0xFF, 0x78, 0x56, 0x34, 0x12}, 1, 4, 0x12345678},
		{[]byte{0x01, 0x02}, 0, 0, 0},
	}
	for _, tt := range tests {
		if got := readLE(tt.data, tt.off, tt.n); got != tt.want {
			t.Errorf("readLE(%v, %d, %d) = %#x, want %#x",
				tt.data, tt.off, tt.n, got, tt.want)
		}
	}
}
