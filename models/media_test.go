package models

import (
	"reflect"
	"testing"
)

func TestClampRating(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-3, 1},
		{0, 1},
		{1, 1},
		{3, 3},
		{5, 5},
		{6, 5},
		{100, 5},
	}
	for _, tt := range tests {
		if got := ClampRating(tt.in); got != tt.want {
			t.Errorf("ClampRating(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTagList(t *testing.T) {
	m := Media{Tags: "history, independence ,, geography"}
	want := []string{"history", "independence", "geography"}
	if got := m.TagList(); !reflect.DeepEqual(got, want) {
		t.Errorf("TagList() = %v, want %v", got, want)
	}

	empty := Media{}
	if got := empty.TagList(); got != nil {
		t.Errorf("TagList() on empty tags = %v, want nil", got)
	}
}
