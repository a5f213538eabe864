package dev

import (
	"fmt"
	"testing"
)

func TestFormatExposure(t *testing.T) {
	tests := []struct {
		us   uint64
		want string
	}{
		{125, "1/8000"},       // 1/8000s, rounds back exactly
		{2000, "1/500"},
		{3333, "1/300"},
		{16667, "1/60"},
		{999_999, "1/1"},
		{1_000_000, "1000ms"}, // one second switches to milliseconds
		{1_500_000, "1500ms"},
		{0, "----"},
	}
	for _, tt := range tests {
		if got := FormatExposure(tt.us); got != tt.want {
			t.Errorf("FormatExposure(%d) = %q, want %q", tt.us, got, tt.want)
		}
	}
}

func TestFormatTravel(t *testing.T) {
	tests := []struct {
		us   uint64
		want string
	}{
		{0, "  0.00"},
		{414, "  0.41"},
		{999, "  0.99"},
		{1000, "  1.00"},
		{2310, "  2.31"},
		{12345, " 12.34"},
		{123456, "123.45"},
		{1_234_567, "1234.56"}, // wider than the field, never truncated
	}
	for _, tt := range tests {
		if got := FormatTravel(tt.us); got != tt.want {
			t.Errorf("FormatTravel(%d) = %q, want %q", tt.us, got, tt.want)
		}
	}
}

type fakeDisplay struct {
	ops []string
}

func (d *fakeDisplay) SetCursor(col, row uint8) error {
	d.ops = append(d.ops, fmt.Sprintf("cur %d,%d", col, row))
	return nil
}

func (d *fakeDisplay) Print(data []byte) error {
	d.ops = append(d.ops, "put "+string(data))
	return nil
}

func TestReadoutShow(t *testing.T) {
	disp := &fakeDisplay{}
	r := NewReadout(disp, 16)

	err := r.Show(Measurement{
		Exposure1US: 2000, Exposure2US: 2000,
		TravelOpenUS: 12340, TravelCloseUS: 12340,
	})
	if err != nil {
		t.Fatalf("Show: %v", err)
	}

	want := []string{
		"cur 0,0", "put                 ", // row blanked first
		"cur 0,0", "put 1/500",
		"cur 11,0", "put 1/500",
		"cur 0,1", "put                 ",
		"cur 0,1", "put  12.34",
		"cur 10,1", "put  12.34",
	}
	if len(disp.ops) != len(want) {
		t.Fatalf("ops = %q, want %q", disp.ops, want)
	}
	for i := range want {
		if disp.ops[i] != want[i] {
			t.Errorf("op %d = %q, want %q", i, disp.ops[i], want[i])
		}
	}
}
