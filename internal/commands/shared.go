package commands

import (
	"encoding/json"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sdpower/ccquota-go/internal/config"
	"github.com/sdpower/ccquota-go/internal/types"
	log "github.com/sirupsen/logrus"
)

// GlobalOptions holds the persistent flags shared by every subcommand.
type GlobalOptions struct {
	ConfigDir string
	Debug     bool
}

// Paths resolves the base directory: --config-dir wins, then
// CLAUDE_CONFIG_DIR, then ~/.claude/ccline.
func (o *GlobalOptions) Paths() config.Paths {
	if o.ConfigDir != "" {
		return config.Paths{Dir: o.ConfigDir}
	}
	return config.DefaultPaths()
}

// ConfigureLogging sends logs to w. Only warnings are shown unless --debug
// is set, since stdout belongs to the statusline.
func (o *GlobalOptions) ConfigureLogging(w io.Writer) {
	log.SetOutput(w)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if o.Debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}
}

// readInput decodes the host statusline payload from r. Interactive stdin
// and malformed payloads yield an empty input; the quota segment does not
// need it.
func readInput(r io.Reader) types.InputData {
	var input types.InputData

	if f, ok := r.(*os.File); ok {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			return input
		}
	}

	if err := json.NewDecoder(r).Decode(&input); err != nil && err != io.EOF {
		log.Debugf("statusline: ignoring host input: %v", err)
	}
	return input
}
