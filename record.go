package warpfx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ErrRecorderClosed is returned by Capture after Close.
var ErrRecorderClosed = errors.New("warpfx: recorder closed")

// frameQueue is the number of frames buffered ahead of the encoder.
const frameQueue = 8

// RecorderOptions configures a Recorder.
type RecorderOptions struct {
	Output     string
	Width      int
	Height     int
	FPS        int
	Codec      string // empty picks libx264 (or gif for .gif outputs)
	FFmpegPath string
	MaxFrames  int // 0 means unlimited
}

// RecorderOptionsFromConfig fills options from a RecordConfig for a frame
// size of w x h.
func RecorderOptionsFromConfig(rc RecordConfig, w, h int) RecorderOptions {
	return RecorderOptions{
		Output:     rc.Output,
		Width:      w,
		Height:     h,
		FPS:        rc.FPS,
		Codec:      rc.Codec,
		FFmpegPath: rc.FFmpegPath,
		MaxFrames:  rc.Frames,
	}
}

func (o RecorderOptions) validate() error {
	if o.Output == "" {
		return errors.New("warpfx: recorder: no output path")
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("warpfx: recorder: frame size %dx%d must be positive", o.Width, o.Height)
	}
	if o.FPS <= 0 {
		return fmt.Errorf("warpfx: recorder: fps %d must be positive", o.FPS)
	}
	return nil
}

// encoderArgs builds the ffmpeg input and output arguments. Input is raw
// RGBA on stdin.
func encoderArgs(o RecorderOptions) (inputArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", o.Width, o.Height),
		"r":       strconv.Itoa(o.FPS),
	}

	outputArgs = ffmpeg.KwArgs{}
	codec := o.Codec
	if strings.EqualFold(filepath.Ext(o.Output), ".gif") {
		if codec == "" {
			codec = "gif"
		}
	} else {
		if codec == "" {
			codec = "libx264"
		}
		outputArgs["pix_fmt"] = "yuv420p"
	}
	outputArgs["c:v"] = codec
	switch codec {
	case "libx264", "libx265":
		outputArgs["preset"] = "medium"
		outputArgs["crf"] = "18"
	}
	if codec == "libx265" && strings.EqualFold(filepath.Ext(o.Output), ".mp4") {
		outputArgs["tag:v"] = "hvc1"
	}
	return inputArgs, outputArgs
}

// Recorder streams captured frames into an ffmpeg process. Capture copies
// pixels on the calling goroutine; an encoder goroutine writes them to
// ffmpeg's stdin and never touches scene state.
type Recorder struct {
	opts   RecorderOptions
	frames chan []byte
	done   chan error

	mu     sync.Mutex
	closed bool
	count  int
}

// NewRecorder starts ffmpeg and returns a recorder ready for Capture.
func NewRecorder(opts RecorderOptions) (*Recorder, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	pr, pw := io.Pipe()
	inputArgs, outputArgs := encoderArgs(opts)
	cmd := ffmpeg.Input("pipe:", inputArgs).
		Output(opts.Output, outputArgs).
		OverWriteOutput().WithInput(pr).ErrorToStdOut()
	if opts.FFmpegPath != "" {
		cmd = cmd.SetFfmpegPath(opts.FFmpegPath)
	}

	r := &Recorder{
		opts:   opts,
		frames: make(chan []byte, frameQueue),
		done:   make(chan error, 1),
	}
	go r.run(cmd, pr, pw)
	Logger().Info("recording", "output", opts.Output, "size", fmt.Sprintf("%dx%d", opts.Width, opts.Height), "fps", opts.FPS)
	return r, nil
}

// run is the consumer side. It drains the frame channel even after a write
// failure so Capture never blocks on a dead encoder.
func (r *Recorder) run(cmd *ffmpeg.Stream, pr *io.PipeReader, pw *io.PipeWriter) {
	errc := make(chan error, 1)
	go func() {
		err := cmd.Run()
		if err != nil {
			pr.CloseWithError(err)
		} else {
			pr.Close()
		}
		errc <- err
	}()

	var werr error
	n := 0
	for frame := range r.frames {
		if werr != nil {
			continue
		}
		if _, err := pw.Write(frame); err != nil {
			werr = fmt.Errorf("warpfx: recorder: write frame %d: %w", n, err)
			Logger().Error("recorder write failed", "frame", n, "err", err)
		}
		n++
	}
	pw.Close()
	if err := <-errc; err != nil {
		werr = errors.Join(werr, fmt.Errorf("warpfx: recorder: ffmpeg: %w", err))
	}
	r.done <- werr
}

// Capture copies img into the encoder queue. img must match the recorder's
// frame size. It blocks when the queue is full.
func (r *Recorder) Capture(img *ebiten.Image) error {
	b := img.Bounds()
	if b.Dx() != r.opts.Width || b.Dy() != r.opts.Height {
		return fmt.Errorf("warpfx: recorder: frame %dx%d, want %dx%d", b.Dx(), b.Dy(), r.opts.Width, r.opts.Height)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRecorderClosed
	}
	if r.opts.MaxFrames > 0 && r.count >= r.opts.MaxFrames {
		return nil
	}
	buf := make([]byte, 4*r.opts.Width*r.opts.Height)
	img.ReadPixels(buf)
	r.frames <- buf
	r.count++
	return nil
}

// Frames returns the number of frames captured.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Full reports whether MaxFrames frames have been captured.
func (r *Recorder) Full() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opts.MaxFrames > 0 && r.count >= r.opts.MaxFrames
}

// Close stops accepting frames and waits for ffmpeg to finish, or for ctx
// to end. Calling Close twice returns ErrRecorderClosed.
func (r *Recorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRecorderClosed
	}
	r.closed = true
	close(r.frames)
	frames := r.count
	r.mu.Unlock()

	select {
	case err := <-r.done:
		if err == nil {
			Logger().Info("recording finished", "output", r.opts.Output, "frames", frames)
		}
		return err
	case <-ctx.Done():
		return fmt.Errorf("warpfx: recorder: %w", ctx.Err())
	}
}
