/*
Package config loads the sketchbook configuration from a YAML file.

The configuration is read once at startup and treated as immutable for the
duration of a run. Validation is permissive where the original tool was
permissive (out-of-range values are clamped, a missing file yields the
defaults) and strict where rendering would otherwise be undefined (malformed
box rectangle, default expression without a base image).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package config

import (
	"image"
	"os"

	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'sketch.config'.
func tracer() tracing.Trace {
	return tracing.Select("sketch.config")
}

// Config is the complete sketchbook configuration.
type Config struct {
	Hotkey           string   `yaml:"hotkey"`            // trigger hotkey
	AllowedProcesses []string `yaml:"allowed_processes"` // empty = all processes
	SelectAllHotkey  string   `yaml:"select_all_hotkey"`
	CutHotkey        string   `yaml:"cut_hotkey"`
	PasteHotkey      string   `yaml:"paste_hotkey"`
	SendHotkey       string   `yaml:"send_hotkey"`
	BlockHotkey      bool     `yaml:"block_hotkey"` // suppress the original key event
	Delay            float64  `yaml:"delay"`        // settle delay between automation steps, seconds

	FontFile      string  `yaml:"font_file"` // path or system font name
	FontSize      float64 `yaml:"font_size"` // fixed size when auto-fit is off
	MaxTextHeight int     `yaml:"max_text_height"`
	LineSpacing   float64 `yaml:"line_spacing"` // extra leading, fraction of font height
	AutoFitText   bool    `yaml:"auto_fit_text"`

	BaseImageMapping    map[string]string `yaml:"baseimage_mapping"` // expression tag -> image path
	DefaultExpression   string            `yaml:"default_expression"`
	TextBoxTopLeft      [2]int            `yaml:"text_box_topleft"`
	ImageBoxBottomRight [2]int            `yaml:"image_box_bottomright"`
	BaseOverlayFile     string            `yaml:"base_overlay_file"`
	UseBaseOverlay      bool              `yaml:"use_base_overlay"`
	OutputFile          string            `yaml:"output_file"` // optional PNG copy of every render

	AutoPasteImage bool `yaml:"auto_paste_image"`
	AutoSendImage  bool `yaml:"auto_send_image"`

	EmotionSwitchHotkeys map[string]string `yaml:"emotion_switch_hotkeys"` // combo -> expression tag

	TraceLevel string `yaml:"trace_level"`
}

// Default returns the configuration the original tool ships with.
func Default() Config {
	return Config{
		Hotkey:              "enter",
		SelectAllHotkey:     "ctrl+a",
		CutHotkey:           "ctrl+x",
		PasteHotkey:         "ctrl+v",
		SendHotkey:          "enter",
		Delay:               0.1,
		FontFile:            "font.ttf",
		FontSize:            48,
		MaxTextHeight:       64,
		LineSpacing:         0.15,
		AutoFitText:         true,
		BaseImageMapping:    map[string]string{"普通": "BaseImages/base.png"},
		DefaultExpression:   "普通",
		TextBoxTopLeft:      [2]int{119, 450},
		ImageBoxBottomRight: [2]int{398, 625},
		BaseOverlayFile:     "BaseImages/base_overlay.png",
		UseBaseOverlay:      false,
		AutoPasteImage:      true,
		AutoSendImage:       true,
		TraceLevel:          "Info",
	}
}

// Load reads a YAML configuration file. A missing file is not an error:
// the defaults are returned, with a warning trace. A present but malformed
// file is an error with code ECONFIG, as is a semantically invalid
// configuration.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			tracer().Infof("config file %s does not exist, using defaults", path)
			return c, c.validate()
		}
		return c, core.WrapError(err, core.ECONFIG, "config file not readable: %s", path)
	}
	// yaml merges mappings into a pre-filled map, so decode this one fresh;
	// the tag set must be exactly the keys the file names
	c.BaseImageMapping = nil
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, core.WrapError(err, core.ECONFIG, "config file not parsable: %s", path)
	}
	if c.BaseImageMapping == nil {
		c.BaseImageMapping = Default().BaseImageMapping
	}
	return c, c.validate()
}

func (c *Config) validate() error {
	if c.Delay < 0 {
		c.Delay = 0.1
	} else if c.Delay > 5.0 {
		c.Delay = 5.0
	}
	if c.FontSize <= 0 {
		c.FontSize = 48
	}
	if c.MaxTextHeight <= 0 {
		c.MaxTextHeight = 64
	}
	if c.LineSpacing < 0 {
		c.LineSpacing = 0.15
	}
	if len(c.BaseImageMapping) == 0 {
		return core.Error(core.ECONFIG, "baseimage_mapping must not be empty")
	}
	if _, ok := c.BaseImageMapping[c.DefaultExpression]; !ok {
		return core.Error(core.ECONFIG, "default expression %q has no base image",
			c.DefaultExpression)
	}
	// image.Rect would silently swap the corners, so check the raw values
	if c.ImageBoxBottomRight[0] <= c.TextBoxTopLeft[0] ||
		c.ImageBoxBottomRight[1] <= c.TextBoxTopLeft[1] {
		return core.Error(core.ECONFIG, "text box rectangle is malformed: %v..%v",
			c.TextBoxTopLeft, c.ImageBoxBottomRight)
	}
	return nil
}

// TextBox returns the rectangle that text and inset images are composited
// into, in base image pixel coordinates.
func (c Config) TextBox() image.Rectangle {
	return image.Rect(c.TextBoxTopLeft[0], c.TextBoxTopLeft[1],
		c.ImageBoxBottomRight[0], c.ImageBoxBottomRight[1])
}
