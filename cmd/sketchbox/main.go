package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/backend/automation"
	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core"
	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core/config"
	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core/locate/resources"
	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/engine/expression"
	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/engine/render"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'sketch.box'
func tracer() tracing.Trace {
	return tracing.Select("sketch.box")
}

// traceKeys are the tracing domains of the sketchbook.
var traceKeys = []string{
	"sketch.box", "sketch.config", "sketch.fonts", "sketch.resources",
	"sketch.layout", "sketch.expression", "sketch.compose", "sketch.render",
	"sketch.autom",
}

func main() {
	configPath := flag.String("config", "config.yml", "Configuration file")
	tlevel := flag.String("trace", "", "Trace level [Debug|Info|Error], overrides the config")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{"tracing.adapter": "go"}
	for _, key := range traceKeys {
		conf["trace."+key] = "Info"
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Println("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	pterm.Info.Println("Anan's Sketchbook Chat Box")
	cfg, err := config.Load(*configPath)
	if err != nil {
		core.UserError(err)
		os.Exit(1)
	}
	level := cfg.TraceLevel
	if *tlevel != "" {
		level = *tlevel
	}
	setTraceLevels(level)

	sel, err := expression.NewSelector(cfg.BaseImageMapping, cfg.DefaultExpression)
	if err != nil {
		core.UserError(err)
		os.Exit(1)
	}
	// resolve the configured font; a miss is reported, the fallback is used
	promise := resources.ResolveTypeCase(cfg.FontFile, cfg.FontSize)
	if _, err := promise.TypeCase(); err != nil {
		pterm.Warning.Printfln("font %q not usable, rendering with the built-in fallback", cfg.FontFile)
		tracer().Errorf("font resolution: %v", err)
	}
	pipe := render.NewPipeline(cfg, sel, render.RegistryFaces(cfg.FontFile))

	clip, err := automation.SystemClipboard()
	if err != nil {
		core.UserError(err)
		os.Exit(2)
	}
	keys, err := automation.SystemKeystrokes()
	if err != nil {
		core.UserError(err)
		os.Exit(2)
	}
	sess, err := automation.NewSession(cfg, pipe, clip, keys,
		automation.ProcessGate(cfg.AllowedProcesses))
	if err != nil {
		core.UserError(err)
		os.Exit(1)
	}

	// hotkey callbacks funnel into one channel; triggers run strictly
	// serially, and a trigger arriving while one is running is dropped
	events := make(chan func(), 1)
	post := func(fn func()) func() {
		return func() {
			select {
			case events <- fn:
			default:
				tracer().Debugf("trigger dropped, still busy")
			}
		}
	}
	var handles []*automation.HotkeyHandle
	h, err := automation.ListenHotkey(sess.TriggerCombo(), post(func() {
		if err := sess.Trigger(); err != nil {
			core.UserError(err)
		}
	}))
	if err != nil {
		core.UserError(err)
		os.Exit(3)
	}
	handles = append(handles, h)
	for comboText, tag := range cfg.EmotionSwitchHotkeys {
		combo, err := automation.ParseCombo(comboText)
		if err != nil {
			core.UserError(err)
			os.Exit(1)
		}
		tag := tag
		h, err := automation.ListenHotkey(combo, post(func() {
			sel.Commit(tag)
			pterm.Info.Printfln("expression switched to %q", sel.Current())
		}))
		if err != nil {
			core.UserError(err)
			os.Exit(3)
		}
		handles = append(handles, h)
	}

	pterm.Info.Printfln("listening, trigger is %s, quit with <ctrl>C", sess.TriggerCombo())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	for {
		select {
		case <-ctx.Done():
			for _, h := range handles {
				h.Close()
			}
			pterm.Info.Println("Good bye!")
			return
		case fn := <-events:
			fn()
		}
	}
}

func setTraceLevels(level string) {
	var l tracing.TraceLevel
	switch level {
	case "Debug", "debug":
		l = tracing.LevelDebug
	case "Error", "error":
		l = tracing.LevelError
	default:
		l = tracing.LevelInfo
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
}
