package editor

import (
	"reflect"
	"testing"
)

func TestCommand(t *testing.T) {
	cases := []struct {
		name   string
		visual string
		editor string
		want   []string
	}{
		{name: "fallback", want: []string{"vi"}},
		{name: "editor", editor: "nano", want: []string{"nano"}},
		{name: "visual wins", visual: "code --wait", editor: "nano", want: []string{"code", "--wait"}},
		{name: "blank visual ignored", visual: "  ", editor: "nano", want: []string{"nano"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("VISUAL", tc.visual)
			t.Setenv("EDITOR", tc.editor)

			if got := Command(); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if got, want := Configured(), tc.visual+tc.editor != ""; got != want {
				t.Fatalf("expected Configured() %v, got %v", want, got)
			}
		})
	}
}
