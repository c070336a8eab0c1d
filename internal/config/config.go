// Package config loads motion tuning from YAML and the process
// environment. Built-in defaults are embedded; an override file only
// needs the fields it changes.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/olivier-w/folio/internal/breath"
	"github.com/olivier-w/folio/internal/carousel"
	"github.com/olivier-w/folio/internal/jitter"
	"github.com/olivier-w/folio/internal/progress"
	"github.com/olivier-w/folio/internal/settle"
	"github.com/olivier-w/folio/internal/spring"
)

//go:embed default.yaml
var defaultYAML []byte

// FadeRange is an element-relative fade window.
type FadeRange struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// Range binds the window to an element handle.
func (f FadeRange) Range(handle string) progress.ElementRange {
	return progress.ElementRange{Handle: handle, StartFrac: f.Start, EndFrac: f.End}
}

type Fades struct {
	Hero     FadeRange `yaml:"hero"`
	About    FadeRange `yaml:"about"`
	Skills   FadeRange `yaml:"skills"`
	Projects FadeRange `yaml:"projects"`
	Contact  FadeRange `yaml:"contact"`
}

type Springs struct {
	Text         spring.Params `yaml:"text"`
	Illustration spring.Params `yaml:"illustration"`
	Background   spring.Params `yaml:"background"`
	Icon         spring.Params `yaml:"icon"`
	Snappy       spring.Params `yaml:"snappy"`
	Tilt         spring.Params `yaml:"tilt"`
}

type Jitter struct {
	jitter.Config `yaml:",inline"`
	Channels      []jitter.Channel `yaml:"channels"`
}

type Carousel struct {
	Gate     carousel.Gate `yaml:"gate"`
	TiltMode string        `yaml:"tilt_mode"`
}

type Breath struct {
	breath.Cycle `yaml:",inline"`
	OneShot      time.Duration `yaml:"one_shot"`
}

type Nav struct {
	Focus           float64 `yaml:"focus"`
	BottomTolerance float64 `yaml:"bottom_tolerance"`
}

// Tuning is every motion constant the page uses.
type Tuning struct {
	Fades    Fades         `yaml:"fades"`
	Springs  Springs       `yaml:"springs"`
	Jitter   Jitter        `yaml:"jitter"`
	Settle   settle.Config `yaml:"settle"`
	Carousel Carousel      `yaml:"carousel"`
	Breath   Breath        `yaml:"breath"`
	Nav      Nav           `yaml:"nav"`
}

// Default returns the embedded tuning.
func Default() Tuning {
	var t Tuning
	if err := yaml.Unmarshal(defaultYAML, &t); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return t
}

// Parse overlays data on the defaults.
func Parse(data []byte) (Tuning, error) {
	t := Default()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("parse tuning: %w", err)
	}
	return t.normalized(), nil
}

// Load reads an override file. An empty path returns the defaults.
func Load(path string) (Tuning, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read tuning %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return Tuning{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// normalized substitutes defaults for zeroed numeric fields; there is
// no other validation.
func (t Tuning) normalized() Tuning {
	t.Jitter.Config = t.Jitter.Config.Normalized()
	if len(t.Jitter.Channels) == 0 {
		t.Jitter.Channels = jitter.DefaultChannels
	}
	t.Settle = t.Settle.Normalized()
	t.Breath.Cycle = t.Breath.Cycle.Normalized()
	if t.Breath.OneShot <= 0 {
		t.Breath.OneShot = 800 * time.Millisecond
	}
	if t.Nav.Focus <= 0 || t.Nav.Focus > 1 {
		t.Nav.Focus = 0.5
	}
	return t
}

// TiltMode parses the configured carousel tilt mode.
func (t Tuning) TiltMode() carousel.TiltMode {
	return carousel.ParseTiltMode(t.Carousel.TiltMode)
}

// Env is the host process configuration.
type Env struct {
	RelayURL   string
	TuningPath string
	DebugLog   string
}

// DefaultRelayURL is where the contact form posts when RELAY_URL is unset.
const DefaultRelayURL = "http://localhost:5000"

// FromEnv reads RELAY_URL, FOLIO_TUNING and FOLIO_DEBUG.
func FromEnv() Env {
	e := Env{
		RelayURL:   os.Getenv("RELAY_URL"),
		TuningPath: os.Getenv("FOLIO_TUNING"),
		DebugLog:   os.Getenv("FOLIO_DEBUG"),
	}
	if e.RelayURL == "" {
		e.RelayURL = DefaultRelayURL
	}
	return e
}
