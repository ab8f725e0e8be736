package launcher

import (
	"errors"
	"slices"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
)

var _ domain.URLOpener = (*Launcher)(nil)

type recorder struct {
	name string
	args []string
}

func newTestLauncher(command string, args []string, goos string, inPath bool) (*Launcher, *recorder) {
	rec := &recorder{}
	l := New(command, args, nil)
	l.goos = goos
	l.start = func(name string, args ...string) error {
		rec.name = name
		rec.args = args
		return nil
	}
	l.lookPath = func(file string) (string, error) {
		if inPath {
			return "/usr/bin/" + file, nil
		}
		return "", errors.New("not found")
	}
	return l, rec
}

func TestOpen_SystemDefault(t *testing.T) {
	const link = "https://www.imdb.com/title/tt0468569/"
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
	}{
		{"darwin", "open", []string{link}},
		{"linux", "xdg-open", []string{link}},
		{"freebsd", "xdg-open", []string{link}},
		{"windows", "cmd", []string{"/c", "start", "", link}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			l, rec := newTestLauncher("", nil, tt.goos, true)
			if err := l.Open(link); err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if rec.name != tt.wantName || !slices.Equal(rec.args, tt.wantArgs) {
				t.Errorf("ran %s %v, want %s %v", rec.name, rec.args, tt.wantName, tt.wantArgs)
			}
		})
	}
}

func TestOpen_ConfiguredBrowser(t *testing.T) {
	const link = "https://www.youtube.com/watch?v=EXeTwQWrcwY"

	l, rec := newTestLauncher("firefox", []string{"--new-tab"}, "linux", true)
	if err := l.Open(link); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if rec.name != "firefox" || !slices.Equal(rec.args, []string{"--new-tab", link}) {
		t.Errorf("ran %s %v", rec.name, rec.args)
	}

	// Repeated opens must not accumulate arguments
	l.Open(link)
	if len(rec.args) != 2 {
		t.Errorf("args grew to %v", rec.args)
	}
}

func TestOpen_MacAppBundle(t *testing.T) {
	const link = "https://example.com"

	l, rec := newTestLauncher("Safari", []string{"--private"}, "darwin", false)
	if err := l.Open(link); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	want := []string{"-a", "Safari", "--args", "--private", link}
	if rec.name != "open" || !slices.Equal(rec.args, want) {
		t.Errorf("ran %s %v, want open %v", rec.name, rec.args, want)
	}
}

func TestOpen_RejectsNonWebURLs(t *testing.T) {
	l, rec := newTestLauncher("", nil, "linux", true)
	for _, bad := range []string{"", "file:///etc/passwd", "javascript:alert(1)", "https://"} {
		if err := l.Open(bad); err == nil {
			t.Errorf("Open(%q) should fail", bad)
		}
	}
	if rec.name != "" {
		t.Errorf("nothing should run, ran %s", rec.name)
	}
}
