package warpfx

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestEncoderArgsMP4(t *testing.T) {
	in, out := encoderArgs(RecorderOptions{Output: "out.mp4", Width: 640, Height: 360, FPS: 30})
	if in["f"] != "rawvideo" || in["pix_fmt"] != "rgba" || in["s"] != "640x360" || in["r"] != "30" {
		t.Errorf("input args = %v", in)
	}
	if out["c:v"] != "libx264" || out["pix_fmt"] != "yuv420p" || out["crf"] != "18" {
		t.Errorf("output args = %v", out)
	}
	if _, ok := out["tag:v"]; ok {
		t.Error("h264 output should not set tag:v")
	}
}

func TestEncoderArgsHEVCTag(t *testing.T) {
	_, out := encoderArgs(RecorderOptions{Output: "clip.MP4", Width: 2, Height: 2, FPS: 60, Codec: "libx265"})
	if out["c:v"] != "libx265" || out["tag:v"] != "hvc1" {
		t.Errorf("output args = %v", out)
	}
}

func TestEncoderArgsGIF(t *testing.T) {
	_, out := encoderArgs(RecorderOptions{Output: "loop.gif", Width: 2, Height: 2, FPS: 25})
	if out["c:v"] != "gif" {
		t.Errorf("codec = %v, want gif", out["c:v"])
	}
	if _, ok := out["pix_fmt"]; ok {
		t.Error("gif output should leave pix_fmt to ffmpeg")
	}
}

func TestRecorderOptionsValidate(t *testing.T) {
	tests := map[string]RecorderOptions{
		"no output": {Width: 2, Height: 2, FPS: 30},
		"no size":   {Output: "a.mp4", FPS: 30},
		"no fps":    {Output: "a.mp4", Width: 2, Height: 2},
	}
	for name, o := range tests {
		if _, err := NewRecorder(o); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestRecorderOptionsFromConfig(t *testing.T) {
	rc := RecordConfig{Output: "a.mp4", FPS: 24, Frames: 120, Codec: "libx265", FFmpegPath: "/opt/ffmpeg"}
	o := RecorderOptionsFromConfig(rc, 320, 200)
	want := RecorderOptions{Output: "a.mp4", Width: 320, Height: 200, FPS: 24, Codec: "libx265", FFmpegPath: "/opt/ffmpeg", MaxFrames: 120}
	if o != want {
		t.Errorf("options = %+v, want %+v", o, want)
	}
}

func TestRecorderMissingFFmpeg(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRecorder(RecorderOptions{
		Output:     filepath.Join(dir, "out.mp4"),
		Width:      4,
		Height:     4,
		FPS:        30,
		FFmpegPath: filepath.Join(dir, "no-such-ffmpeg"),
	})
	if err != nil {
		t.Fatal(err)
	}

	wrong := ebiten.NewImage(8, 8)
	if err := r.Capture(wrong); err == nil || errors.Is(err, ErrRecorderClosed) {
		t.Errorf("size mismatch: err = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Close(ctx); err == nil {
		t.Error("Close should report the failed ffmpeg start")
	}
	if err := r.Close(ctx); !errors.Is(err, ErrRecorderClosed) {
		t.Errorf("second Close = %v, want ErrRecorderClosed", err)
	}
	if err := r.Capture(ebiten.NewImage(4, 4)); !errors.Is(err, ErrRecorderClosed) {
		t.Errorf("Capture after Close = %v, want ErrRecorderClosed", err)
	}
	if r.Frames() != 0 || r.Full() {
		t.Errorf("Frames() = %d, Full() = %v", r.Frames(), r.Full())
	}
}
