package warpfx

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// CameraConfig places the perspective camera.
type CameraConfig struct {
	Position mgl64.Vec3 `json:"position"`
	Target   mgl64.Vec3 `json:"target"`
	FOV      float64    `json:"fov"`
	Near     float64    `json:"near"`
	Far      float64    `json:"far"`
}

// RecordConfig enables video capture when Output is set.
type RecordConfig struct {
	Output     string `json:"output"`
	FPS        int    `json:"fps"`
	Frames     int    `json:"frames"` // 0 records until the window closes
	Codec      string `json:"codec"`
	FFmpegPath string `json:"ffmpegPath"`
}

// Config is everything the example program and NewApp need. Zero fields in
// a JSON file keep their defaults.
type Config struct {
	Title          string       `json:"title"`
	Width          int          `json:"width"`
	Height         int          `json:"height"`
	Resizable      bool         `json:"resizable"`
	TPS            int          `json:"tps"`
	Images         []string     `json:"images"`
	MaxTextureEdge int          `json:"maxTextureEdge"`
	Params         Params       `json:"params"`
	ClockStep      float64      `json:"clockStep"`
	Camera         CameraConfig `json:"camera"`
	ClearColor     string       `json:"clearColor"`
	RGBShift       float64      `json:"rgbShift"` // 0 disables the pass
	Controls       bool         `json:"controls"`
	ShowHUD        bool         `json:"showHUD"`
	ScreenshotDir  string       `json:"screenshotDir"`
	TestScript     string       `json:"testScript"`
	Record         RecordConfig `json:"record"`
	LogLevel       string       `json:"logLevel"`
	Debug          bool         `json:"debug"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Title:          "warpfx",
		Width:          1280,
		Height:         720,
		Resizable:      true,
		TPS:            60,
		MaxTextureEdge: 1024,
		Params:         DefaultParams,
		ClockStep:      DefaultClockStep,
		Camera: CameraConfig{
			Position: DefaultCameraPosition,
			FOV:      DefaultCameraFOV,
			Near:     DefaultCameraNear,
			Far:      DefaultCameraFar,
		},
		ClearColor:    "#141414",
		Controls:      true,
		ScreenshotDir: "screenshots",
		Record:        RecordConfig{FPS: 60, Codec: "libx264"},
		LogLevel:      "info",
	}
}

// LoadConfig reads a JSON file over DefaultConfig and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("warpfx: read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("warpfx: parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("warpfx: config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks sizes, ranges and formats. All problems are reported.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps %d must be positive", c.TPS))
	}
	if c.ClockStep <= 0 {
		errs = append(errs, fmt.Errorf("clockStep %g must be positive", c.ClockStep))
	}
	if err := c.Params.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %g must be in (0, 180)", c.Camera.FOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera near/far %g/%g invalid", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.Position.Sub(c.Camera.Target).Len() == 0 {
		errs = append(errs, fmt.Errorf("camera position %v coincides with target", c.Camera.Position))
	}
	if _, err := ParseHexColor(c.ClearColor); err != nil {
		errs = append(errs, err)
	}
	if c.RGBShift < 0 {
		errs = append(errs, fmt.Errorf("rgbShift %g must not be negative", c.RGBShift))
	}
	if c.Record.Output != "" && c.Record.FPS <= 0 {
		errs = append(errs, fmt.Errorf("record fps %d must be positive", c.Record.FPS))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseHexColor parses "#rrggbb" or "rrggbb" into an opaque Color.
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("warpfx: color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("warpfx: color %q: %w", s, err)
	}
	return ColorFromHex(uint32(v)), nil
}

// ParseLogLevel maps debug/info/warn/error (case-insensitive) to a slog level.
// An empty string means info.
func ParseLogLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("warpfx: log level %q: %w", s, err)
	}
	return l, nil
}
