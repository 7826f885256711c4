package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/piwi3910/CycloDisc/internal/model"
	"github.com/piwi3910/CycloDisc/internal/project"
)

// Parameter keys. The same names are used for flags, config file keys and
// CYCLODISC_* environment variables ("pin-d" becomes CYCLODISC_PIN_D).
const (
	keyName       = "name"
	keyUnit       = "unit"
	keyPins       = "pins"
	keyPCD        = "pcd"
	keyPinD       = "pin-d"
	keyEcc        = "e"
	keyClearance  = "clearance"
	keyDensity    = "density"
	keyHoles      = "holes"
	keyOutPinD    = "out-pin-d"
	keyOutPCD     = "out-pcd"
	keyHoleExtra  = "hole-extra"
	keyBore       = "bore"
	keyPhase      = "phase"
	keySingle     = "single"
	keyAligned    = "aligned"
	keySameHoles  = "same-holes"
	keyExact      = "exact"
	keyMode       = "mode"
	keyGuard      = "guard"
	keyStrict     = "strict"
	keyToolD      = "tool-d"
	keyThickness  = "thickness"
	keyProfile    = "gcode-profile"
	envPrefix     = "CYCLODISC"
	defaultUnit   = "mm"
	flagUnitUsage = "length unit of the length flags: mm, cm or in"
)

// addParamFlags registers the design parameter flags. Defaults shown in the
// help text are the stock design; only flags that are set override the base.
func addParamFlags(fs *pflag.FlagSet) {
	d := model.NewDesign()

	fs.String(keyName, "", "design name, also the output file stem")
	fs.String(keyUnit, defaultUnit, flagUnitUsage)

	fs.Int(keyPins, d.Params.RingPinCount, "ring pin count N")
	fs.Float64(keyPCD, d.Params.RingPCD, "ring pin pitch circle diameter")
	fs.Float64(keyPinD, d.Params.RingPinDiameter, "ring pin diameter")
	fs.Float64(keyEcc, d.Params.Eccentricity, "eccentricity E")
	fs.Float64(keyClearance, d.Params.RollerClearance, "roller clearance")
	fs.Int(keyDensity, d.Params.SamplesPerLobe, "samples per lobe")

	fs.Int(keyHoles, d.Options.OutputHoleCount, "output hole count")
	fs.Float64(keyOutPinD, d.Options.OutputPinDiameter, "output pin diameter")
	fs.Float64(keyOutPCD, d.Options.OutputPCD, "output hole pitch circle diameter")
	fs.Float64(keyHoleExtra, d.Options.HoleExtraDiameter, "extra output hole diameter")
	fs.Float64(keyBore, d.Options.BoreDiameter, "center bore diameter")
	fs.Float64(keyPhase, 0, "manual phase of disc 2 in degrees (default 180/lobes)")

	fs.Bool(keySingle, false, "generate one disc instead of two")
	fs.Bool(keyAligned, false, "place disc 2 on the same eccentric instead of opposed")
	fs.Bool(keySameHoles, false, "keep output holes at the same world positions on both discs")
	fs.Bool(keyExact, false, "exact geometry: no safe gap")

	fs.String(keyMode, string(d.Engine.Mode), "sampling mode: adaptive or uniform")
	fs.String(keyGuard, string(d.Engine.GuardPolicy), "guard policy: none or iterative-guard")
	fs.Bool(keyStrict, false, "fail when the wanted gap cannot be reached")

	fs.Float64(keyToolD, d.Machining.ToolDiameter, "end mill diameter in mm")
	fs.Float64(keyThickness, d.Machining.CutDepth, "disc thickness in mm")
	fs.String(keyProfile, d.Machining.GCodeProfile, "GCode profile name")
}

// viperFor binds the command's flags, the optional config file and the
// environment into one lookup.
func (o *rootOptions) viperFor(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", o.configFile, err)
		}
	}
	return v, nil
}

// baseDesign is the saved design given by --design, or a new design with
// the desktop app's saved defaults applied.
func (o *rootOptions) baseDesign() (model.Design, error) {
	if o.designFile != "" {
		return project.LoadDesign(o.designFile)
	}
	d := model.NewDesign()
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		o.logger.Warn("ignoring unreadable app config", "err", err)
		return d, nil
	}
	cfg.ApplyToDesign(&d)
	return d, nil
}

// resolveDesign applies every key set by flag, config file or environment
// on top of the base design. Lengths are converted from the chosen unit.
func (o *rootOptions) resolveDesign(v *viper.Viper) (model.Design, error) {
	d, err := o.baseDesign()
	if err != nil {
		return model.Design{}, err
	}

	unit, err := model.ParseUnit(v.GetString(keyUnit))
	if err != nil {
		return model.Design{}, err
	}
	length := func(key string, dst *float64) {
		if v.IsSet(key) {
			*dst = unit.ToMM(v.GetFloat64(key))
		}
	}
	count := func(key string, dst *int) {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}

	if v.IsSet(keyName) {
		d.Name = v.GetString(keyName)
	}

	count(keyPins, &d.Params.RingPinCount)
	length(keyPCD, &d.Params.RingPCD)
	length(keyPinD, &d.Params.RingPinDiameter)
	length(keyEcc, &d.Params.Eccentricity)
	length(keyClearance, &d.Params.RollerClearance)
	count(keyDensity, &d.Params.SamplesPerLobe)

	count(keyHoles, &d.Options.OutputHoleCount)
	length(keyOutPinD, &d.Options.OutputPinDiameter)
	length(keyOutPCD, &d.Options.OutputPCD)
	length(keyHoleExtra, &d.Options.HoleExtraDiameter)
	length(keyBore, &d.Options.BoreDiameter)
	if v.IsSet(keyPhase) {
		d.Options.PhaseDeg = model.ManualPhase(v.GetFloat64(keyPhase))
	}

	if v.IsSet(keySingle) {
		d.Options.Dual = !v.GetBool(keySingle)
	}
	if v.IsSet(keyAligned) {
		d.Options.Opposed = !v.GetBool(keyAligned)
	}
	if v.IsSet(keySameHoles) {
		d.Options.SameHolesWorld = v.GetBool(keySameHoles)
	}
	if v.IsSet(keyExact) {
		d.Options.ExactGeometry = v.GetBool(keyExact)
	}

	if v.IsSet(keyMode) {
		mode := model.SamplingMode(v.GetString(keyMode))
		if mode != model.SamplingAdaptive && mode != model.SamplingUniform {
			return model.Design{}, fmt.Errorf("unknown sampling mode %q", mode)
		}
		d.Engine.Mode = mode
	}
	if v.IsSet(keyGuard) {
		guard := model.GuardPolicy(v.GetString(keyGuard))
		if guard != model.GuardNone && guard != model.GuardIterative {
			return model.Design{}, fmt.Errorf("unknown guard policy %q", guard)
		}
		d.Engine.GuardPolicy = guard
	}
	if v.IsSet(keyStrict) && v.GetBool(keyStrict) {
		d.Engine.Infeasibility = model.InfeasibleStrict
	}

	if v.IsSet(keyToolD) {
		d.Machining.ToolDiameter = v.GetFloat64(keyToolD)
	}
	if v.IsSet(keyThickness) {
		d.Machining.CutDepth = v.GetFloat64(keyThickness)
	}
	if v.IsSet(keyProfile) {
		d.Machining.GCodeProfile = v.GetString(keyProfile)
	}

	o.logger.Debug("resolved design",
		"name", d.Name,
		"pins", d.Params.RingPinCount,
		"pcd_mm", d.Params.RingPCD,
		"e_mm", d.Params.Eccentricity,
		"dual", d.Options.Dual,
		"mode", d.Engine.Mode)
	return d, nil
}
