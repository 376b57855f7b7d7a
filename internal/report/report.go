// Package report renders registration results and client status for the CLI.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/thoreinstein/workspace/internal/backup"
	"github.com/thoreinstein/workspace/internal/doctor"
	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/internal/platform"
	"github.com/thoreinstein/workspace/internal/registration"
)

// Format specifies the output format for reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Reporter formats and writes results.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

type resultJSON struct {
	Client     string `json:"client"`
	Action     string `json:"action"`
	Success    bool   `json:"success"`
	Changed    bool   `json:"changed"`
	Message    string `json:"message"`
	ConfigPath string `json:"config_path,omitempty"`
	BackupID   string `json:"backup_id,omitempty"`
	AgentPath  string `json:"agent_path,omitempty"`
}

// Result writes one registration outcome.
func (r *Reporter) Result(res *registration.Result) error {
	if res == nil {
		return nil
	}

	if r.format == FormatJSON {
		return r.encode(resultJSON{
			Client:     string(res.Client),
			Action:     string(res.Action),
			Success:    res.Success,
			Changed:    res.Changed,
			Message:    res.Message,
			ConfigPath: res.ConfigPath,
			BackupID:   res.BackupID,
			AgentPath:  res.AgentPath,
		})
	}

	switch {
	case !res.Success:
		fmt.Fprintln(r.out, color.RedString("✗ %s", res.Message))
		return nil
	case res.Changed:
		fmt.Fprintln(r.out, color.GreenString("✓ %s", res.Message))
	default:
		fmt.Fprintln(r.out, color.YellowString("• %s", res.Message))
	}

	dim := color.New(color.FgHiBlack)
	if res.ConfigPath != "" {
		fmt.Fprintln(r.out, dim.Sprintf("  config: %s", res.ConfigPath))
	}
	if res.BackupID != "" {
		fmt.Fprintln(r.out, dim.Sprintf("  backup: %s", res.BackupID))
	}
	if res.AgentPath != "" {
		fmt.Fprintln(r.out, dim.Sprintf("  agent:  %s", res.AgentPath))
	}
	return nil
}

type detectionJSON struct {
	Client     string `json:"client"`
	Name       string `json:"name"`
	Installed  bool   `json:"installed"`
	Registered bool   `json:"registered"`
	ConfigPath string `json:"config_path,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Status writes one line per client detection.
func (r *Reporter) Status(detections []*platform.Detection) error {
	if r.format == FormatJSON {
		out := make([]detectionJSON, 0, len(detections))
		for _, d := range detections {
			j := detectionJSON{
				Client:     string(d.Kind),
				Name:       d.DisplayName,
				Installed:  d.Status == platform.StatusInstalled,
				Registered: d.Registered,
				ConfigPath: d.ConfigPath,
			}
			if d.Err != nil {
				j.Error = d.Err.Error()
			}
			out = append(out, j)
		}
		return r.encode(out)
	}

	for _, d := range detections {
		var mark string
		switch {
		case d.Err != nil:
			mark = color.RedString("error")
		case d.Registered:
			mark = color.GreenString("registered")
		case d.Status == platform.StatusInstalled:
			mark = color.YellowString("not registered")
		default:
			mark = color.New(color.FgHiBlack).Sprint("not installed")
		}

		fmt.Fprintf(r.out, "%-12s %-14s %s\n", d.Kind, mark, d.ConfigPath)
		if d.Err != nil {
			fmt.Fprintln(r.out, color.New(color.FgHiBlack).Sprintf("  %v", d.Err))
		}
	}
	return nil
}

// BackupSet is the backup history of one client, newest first.
type BackupSet struct {
	Client  platform.Kind
	Backups []*backup.Manifest
}

type backupJSON struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Files       []string  `json:"files"`
	ToolVersion string    `json:"tool_version,omitempty"`
}

type backupSetJSON struct {
	Client  string       `json:"client"`
	Backups []backupJSON `json:"backups"`
}

// Backups writes the backup history of each client.
func (r *Reporter) Backups(sets []BackupSet) error {
	if r.format == FormatJSON {
		out := make([]backupSetJSON, 0, len(sets))
		for _, s := range sets {
			j := backupSetJSON{Client: string(s.Client), Backups: make([]backupJSON, 0, len(s.Backups))}
			for _, m := range s.Backups {
				b := backupJSON{ID: m.ID, CreatedAt: m.CreatedAt, ToolVersion: m.ToolVersion}
				for _, f := range m.Files {
					b.Files = append(b.Files, f.OriginalPath)
				}
				j.Backups = append(j.Backups, b)
			}
			out = append(out, j)
		}
		return r.encode(out)
	}

	dim := color.New(color.FgHiBlack)
	for i, s := range sets {
		if i > 0 {
			fmt.Fprintln(r.out)
		}
		fmt.Fprintln(r.out, color.New(color.Bold).Sprint(s.Client))
		if len(s.Backups) == 0 {
			fmt.Fprintln(r.out, dim.Sprint("  (no backups)"))
			continue
		}

		tw := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
		for _, m := range s.Backups {
			var files []string
			for _, f := range m.Files {
				files = append(files, f.OriginalPath)
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", m.ID, m.CreatedAt.Local().Format("2006-01-02 15:04:05"), strings.Join(files, ", "))
		}
		if err := tw.Flush(); err != nil {
			return errors.Wrap(err, "writing backup list")
		}
	}
	return nil
}

// Doctor writes a diagnostic report.
func (r *Reporter) Doctor(rep *doctor.Report) error {
	if r.format == FormatJSON {
		return r.encode(rep)
	}

	dim := color.New(color.FgHiBlack)
	for _, res := range rep.Results {
		label := res.Name
		if res.Client != "" {
			label = res.Client + " " + res.Name
		}
		fmt.Fprintf(r.out, "%s %-24s %s\n", severityMark(res.Status), label, res.Message)
		if res.Status >= doctor.SeverityWarning && res.FixHint != "" {
			fmt.Fprintln(r.out, dim.Sprintf("  hint: %s", res.FixHint))
		}
	}
	for _, f := range rep.Fixes {
		fmt.Fprintln(r.out, color.GreenString("fixed: %s (%s)", f.Path, f.Description))
	}

	s := rep.Summary
	fmt.Fprintf(r.out, "\n%d passed, %d info, %d warnings, %d errors\n", s.Passed, s.Info, s.Warnings, s.Errors)
	return nil
}

func severityMark(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return color.GreenString("✓")
	case doctor.SeverityWarning:
		return color.YellowString("!")
	case doctor.SeverityError:
		return color.RedString("✗")
	default:
		return color.New(color.FgHiBlack).Sprint("•")
	}
}

func (r *Reporter) encode(v any) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(v), "encoding JSON report")
}
