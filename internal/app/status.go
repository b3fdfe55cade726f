package app

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/chazuruo/hui/internal/config"
	"github.com/chazuruo/hui/internal/rank"
)

// StatusOutput describes the resolved setup and the history it yields.
type StatusOutput struct {
	ConfigPath string     `json:"config_path"`
	Shell      string     `json:"shell"`
	Files      []string   `json:"files"`
	Backend    string     `json:"backend"`
	Sink       string     `json:"sink"`
	LogFile    string     `json:"log_file"`
	Entries    int        `json:"entries"`
	Commands   int        `json:"commands"`
	Malformed  int        `json:"malformed"`
	Newest     *time.Time `json:"newest,omitempty"`
}

// Status summarizes what a search would load. configPath is the file the
// config came from, empty when only defaults apply.
func Status(configPath string, cfg *config.Config, m *Master) *StatusOutput {
	out := &StatusOutput{
		ConfigPath: configPath,
		Shell:      m.Shell.String(),
		Files:      m.Files,
		Backend:    cfg.UI.Backend,
		Sink:       cfg.Output.Sink,
		LogFile:    cfg.Log.File,
		Entries:    m.Stats.Entries,
		Commands:   len(m.Commands),
		Malformed:  m.Stats.Malformed,
	}
	if s := rank.Stats(m.Commands); s.Newest != nil {
		t := time.Unix(*s.Newest, 0)
		out.Newest = &t
	}
	return out
}

// PrintStatus writes the status in plain text.
func PrintStatus(w io.Writer, s *StatusOutput, now time.Time) {
	configPath := s.ConfigPath
	if configPath == "" {
		configPath = "(defaults)"
	}
	logFile := s.LogFile
	if logFile == "" {
		logFile = "(disabled)"
	}

	fmt.Fprintf(w, "Config:   %s\n", configPath)
	fmt.Fprintf(w, "Shell:    %s\n", s.Shell)
	for i, f := range s.Files {
		label := "History:"
		if i > 0 {
			label = ""
		}
		fmt.Fprintf(w, "%-9s %s\n", label, f)
	}
	fmt.Fprintf(w, "Backend:  %s\n", s.Backend)
	fmt.Fprintf(w, "Output:   %s\n", s.Sink)
	fmt.Fprintf(w, "Log:      %s\n", logFile)
	fmt.Fprintf(w, "Entries:  %s (%s unique, %s malformed)\n",
		humanize.Comma(int64(s.Entries)), humanize.Comma(int64(s.Commands)), humanize.Comma(int64(s.Malformed)))
	if s.Newest != nil {
		fmt.Fprintf(w, "Newest:   %s\n", humanize.RelTime(*s.Newest, now, "ago", "from now"))
	}
}

// PrintStatusJSON writes the status as indented JSON.
func PrintStatusJSON(w io.Writer, s *StatusOutput) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
