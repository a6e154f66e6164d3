package config

import "strings"

// Environment variables read by ApplyEnv.
const (
	EnvFile          = "XRAYS_FILE"
	EnvFromStart     = "XRAYS_FROM_START"
	EnvMaxItems      = "XRAYS_MAX_ITEMS"
	EnvLinesPerItem  = "XRAYS_LINES_PER_ITEM"
	EnvLinesExpanded = "XRAYS_LINES_EXPANDED"
	EnvPretty        = "XRAYS_PRETTY"
	EnvPrettyPreview = "XRAYS_PRETTY_PREVIEW"
	EnvPrettyMode    = "XRAYS_PRETTY_MODE"
	EnvKeepANSI      = "XRAYS_KEEP_ANSI"
	EnvJSONPretty    = "XRAYS_JSON_PRETTY"
	EnvExportDir     = "XRAYS_EXPORT_DIR"
	EnvDebugLog      = "XRAYS_DEBUG_LOG"
)

// Flag names whose presence on the command line suppresses the matching
// environment variable.
const (
	FlagFile          = "file"
	FlagFromStart     = "from-start"
	FlagMaxItems      = "max-items"
	FlagLinesPerItem  = "lines-per-item"
	FlagLinesExpanded = "lines-expanded"
	FlagPrettyPreview = "pretty-preview"
	FlagPrettyMode    = "pretty-mode"
	FlagKeepANSI      = "keep-ansi"
	FlagJSONPretty    = "json-pretty"
	FlagExportDir     = "export-dir"
	FlagCharBudget    = "char-budget"
	FlagDebugLog      = "debug-log"
)

// ApplyEnv overlays environment settings on c. getenv looks variables up and
// flagSet reports whether a flag was given explicitly; explicit flags win, so
// their variables are skipped. Boolean variables only ever switch a feature
// on. An unrecognised pretty mode in the environment is ignored.
func (c *Config) ApplyEnv(getenv func(string) string, flagSet func(string) bool) error {
	if flagSet == nil {
		flagSet = func(string) bool { return false }
	}

	if v := strings.TrimSpace(getenv(EnvFile)); v != "" && !flagSet(FlagFile) {
		c.File = ExpandPath(v)
	}
	if Truthy(getenv(EnvFromStart)) && !flagSet(FlagFromStart) {
		c.FromStart = true
	}

	ints := []struct {
		env, flag string
		dst       *int
	}{
		{EnvMaxItems, FlagMaxItems, &c.MaxItems},
		{EnvLinesPerItem, FlagLinesPerItem, &c.LinesPerItem},
		{EnvLinesExpanded, FlagLinesExpanded, &c.LinesExpanded},
	}
	for _, it := range ints {
		v := getenv(it.env)
		if strings.TrimSpace(v) == "" || flagSet(it.flag) {
			continue
		}
		n, err := parseInt(it.env, v)
		if err != nil {
			return err
		}
		*it.dst = n
	}

	if !flagSet(FlagPrettyPreview) {
		flag := getenv(EnvPretty)
		if flag == "" {
			flag = getenv(EnvPrettyPreview)
		}
		if Truthy(flag) {
			c.PrettyPreview = true
		}
	}
	if !flagSet(FlagPrettyMode) {
		switch mode := strings.ToLower(strings.TrimSpace(getenv(EnvPrettyMode))); mode {
		case ModeSummary, ModeHybrid:
			c.PrettyMode = mode
		}
	}
	if Truthy(getenv(EnvKeepANSI)) && !flagSet(FlagKeepANSI) {
		c.StripANSI = false
	}
	if Truthy(getenv(EnvJSONPretty)) && !flagSet(FlagJSONPretty) {
		c.JSONPretty = true
	}
	if v := strings.TrimSpace(getenv(EnvExportDir)); v != "" && !flagSet(FlagExportDir) {
		c.ExportDir = ExpandPath(v)
	}
	if v := strings.TrimSpace(getenv(EnvDebugLog)); v != "" && !flagSet(FlagDebugLog) {
		c.DebugLog = ExpandPath(v)
	}
	return nil
}
