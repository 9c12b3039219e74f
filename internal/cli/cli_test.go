package cli

import (
	"io"
	"testing"
)

func TestRootCommandStructure(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != "xdot [file]" {
		t.Errorf("Use = %q", root.Use)
	}

	want := map[string]bool{"view": false, "render": false, "serve": false, "completion": false}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"out.svg", "svg", false},
		{"out.PNG", "png", false},
		{"out.xdot", "xdot", false},
		{"out.dot", "xdot", false},
		{"out.pdf", "", true},
		{"out", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := formatForPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if string(got) != tt.want {
				t.Errorf("format = %q, want %q", got, tt.want)
			}
		})
	}
}
