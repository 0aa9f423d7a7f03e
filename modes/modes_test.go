package modes

import (
	"testing"

	"seebs.net/kaleido/capture"
	"seebs.net/kaleido/errors"
)

func TestEveryModeHasAScene(t *testing.T) {
	st := &Stage{Camera: capture.NewTestCard()}
	for _, m := range All {
		sc, err := NewScene(m, st)
		if err != nil {
			t.Fatalf("NewScene(%v): %v", m, err)
		}
		if sc.Mode() != m {
			t.Errorf("scene for %v reports mode %v", m, sc.Mode())
		}
		if m.Name() == "unknown" || m.Description() == "" {
			t.Errorf("mode %d lacks a name or description", int(m))
		}
	}
	if _, err := NewScene(DisplayMode(len(All)), st); !errors.Is(err, errors.ErrCodeInvalidMode) {
		t.Errorf("NewScene(out of range) error = %v, want INVALID_MODE", err)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range All {
		got, err := ParseMode(m.Name())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.Name(), got, err)
		}
	}
	if _, err := ParseMode("kaleido"); !errors.Is(err, errors.ErrCodeInvalidMode) {
		t.Errorf("ParseMode(kaleido) error = %v", err)
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		list string
		want []DisplayMode
	}{
		{"", All},
		{"-camera", []DisplayMode{TileAll, SingleCell, TextureOnly}},
		{"+tile,single", []DisplayMode{TileAll, SingleCell}},
		{"tile, single, texture, camera, -texture", []DisplayMode{TileAll, SingleCell, LiveCameraFeed}},
	}
	for _, tt := range tests {
		f, err := ParseList(tt.list)
		if err != nil {
			t.Fatalf("ParseList(%q): %v", tt.list, err)
		}
		got := f.Apply()
		if len(got) != len(tt.want) {
			t.Errorf("ParseList(%q).Apply() = %v, want %v", tt.list, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseList(%q).Apply() = %v, want %v", tt.list, got, tt.want)
				break
			}
		}
	}
	if _, err := ParseList("+tile,+mirror"); !errors.Is(err, errors.ErrCodeInvalidMode) {
		t.Errorf("ParseList with unknown mode error = %v", err)
	}
}

func TestCameraSceneOwnsItsStream(t *testing.T) {
	dev := capture.NewTestCard()
	st := &Stage{Camera: dev, CameraW: 32, CameraH: 24}
	sc, _ := NewScene(LiveCameraFeed, st)
	cam := sc.(*cameraScene)

	if err := sc.Hide(); err != nil {
		t.Fatalf("Hide before Display: %v", err)
	}
	if err := sc.Tick(); !errors.Is(err, errors.ErrCodeCaptureStopped) {
		t.Errorf("Tick before Display error = %v", err)
	}
	if err := sc.Display(); err != nil {
		t.Fatalf("Display: %v", err)
	}
	if err := sc.Display(); err != nil {
		t.Fatalf("second Display: %v", err)
	}
	if dev.ActiveTracks() != 1 {
		t.Fatalf("ActiveTracks = %d, want exactly 1", dev.ActiveTracks())
	}
	for i := 0; i < 3; i++ {
		if err := sc.Tick(); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
	if cam.frame == nil {
		t.Fatalf("no frame after ticking")
	}
	if err := sc.Hide(); err != nil {
		t.Fatalf("Hide: %v", err)
	}
	if dev.ActiveTracks() != 0 || cam.stream != nil {
		t.Errorf("camera still held after Hide: %d tracks", dev.ActiveTracks())
	}
}
