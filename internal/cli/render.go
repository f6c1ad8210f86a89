package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mgreco/tempus/internal/domain"
)

var (
	styleHeader  = lipgloss.NewStyle().Bold(true)
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleFlag    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

// activityJSON is the scripting-friendly projection of a unified activity.
type activityJSON struct {
	ID         int64    `json:"id"`
	SourceType string   `json:"sourceType"`
	Type       string   `json:"type"`
	Title      string   `json:"title"`
	StartTime  string   `json:"startTime"`
	EndTime    string   `json:"endTime"`
	Duration   int64    `json:"duration"`
	CategoryID *int64   `json:"categoryId,omitempty"`
	Category   string   `json:"category,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	IsEditable bool     `json:"isEditable"`
	Editable   []string `json:"editableFields"`
	Conflicted bool     `json:"conflicted,omitempty"`
}

func toActivityJSON(a *domain.UnifiedActivity, conflicted bool) activityJSON {
	tags := make([]string, 0, len(a.Tags))
	for _, t := range a.Tags {
		tags = append(tags, t.Name)
	}
	editable := make([]string, 0, len(a.EditableFields))
	for _, f := range a.EditableFields {
		editable = append(editable, string(f))
	}
	return activityJSON{
		ID:         a.ID,
		SourceType: string(a.SourceType),
		Type:       string(a.Type),
		Title:      a.Title,
		StartTime:  a.StartTime.Format(time.RFC3339),
		EndTime:    a.EndTime.Format(time.RFC3339),
		Duration:   a.DurationSec,
		CategoryID: a.CategoryID,
		Category:   a.CategoryName,
		Tags:       tags,
		IsEditable: a.IsEditable,
		Editable:   editable,
		Conflicted: conflicted,
	}
}

func writeActivitiesJSON(w io.Writer, activities []*domain.UnifiedActivity, conflicted map[domain.ActivityKey]bool) error {
	out := make([]activityJSON, 0, len(activities))
	for _, a := range activities {
		out = append(out, toActivityJSON(a, conflicted[a.Key()]))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// renderActivityTable writes a plain aligned listing. Conflicted rows get
// a leading marker.
func renderActivityTable(w io.Writer, activities []*domain.UnifiedActivity, conflicted map[domain.ActivityKey]bool) {
	if len(activities) == 0 {
		fmt.Fprintln(w, styleMuted.Render("No activities in window."))
		return
	}
	fmt.Fprintln(w, styleHeader.Render(fmt.Sprintf("  %-12s %-5s %-15s %-11s %-11s %-9s %s",
		"SOURCE", "ID", "TYPE", "START", "END", "DURATION", "TITLE")))
	for _, a := range activities {
		marker := " "
		if conflicted[a.Key()] {
			marker = styleFlag.Render("!")
		}
		title := a.Title
		if len(a.Tags) > 0 {
			names := make([]string, 0, len(a.Tags))
			for _, t := range a.Tags {
				names = append(names, "#"+t.Name)
			}
			title += " " + styleMuted.Render(strings.Join(names, " "))
		}
		fmt.Fprintf(w, "%s %-12s %-5d %-15s %-11s %-11s %-9s %s\n",
			marker,
			a.SourceType,
			a.ID,
			a.Type,
			a.StartTime.Local().Format("15:04 Jan 02"),
			a.EndTime.Local().Format("15:04 Jan 02"),
			formatDuration(a.DurationSec),
			title,
		)
	}
}

func renderActivityDetail(w io.Writer, a *domain.UnifiedActivity) {
	fmt.Fprintln(w, styleHeader.Render(fmt.Sprintf("%s (%s/%d)", a.Title, a.SourceType, a.ID)))
	fmt.Fprintf(w, "  type:      %s\n", a.Type)
	fmt.Fprintf(w, "  start:     %s\n", a.StartTime.Format(time.RFC3339))
	fmt.Fprintf(w, "  end:       %s\n", a.EndTime.Format(time.RFC3339))
	fmt.Fprintf(w, "  duration:  %s\n", formatDuration(a.DurationSec))
	if a.CategoryName != "" {
		fmt.Fprintf(w, "  category:  %s\n", a.CategoryName)
	}
	if len(a.Tags) > 0 {
		names := make([]string, 0, len(a.Tags))
		for _, t := range a.Tags {
			names = append(names, t.Name)
		}
		fmt.Fprintf(w, "  tags:      %s\n", strings.Join(names, ", "))
	}
	editable := make([]string, 0, len(a.EditableFields))
	for _, f := range a.EditableFields {
		editable = append(editable, string(f))
	}
	fmt.Fprintf(w, "  editable:  %s\n", strings.Join(editable, ", "))
	if a.Metadata.AppName != "" {
		fmt.Fprintf(w, "  app:       %s\n", a.Metadata.AppName)
	}
	if a.Metadata.Domain != "" {
		fmt.Fprintf(w, "  domain:    %s\n", a.Metadata.Domain)
	}
	if a.Metadata.SessionType != "" {
		fmt.Fprintf(w, "  session:   %s (completed=%t interrupted=%t)\n",
			a.Metadata.SessionType, a.Metadata.Completed, a.Metadata.Interrupted)
	}
}

func renderConflicts(w io.Writer, conflicts []domain.ActivityConflict) {
	if len(conflicts) == 0 {
		fmt.Fprintln(w, styleMuted.Render("No conflicts in window."))
		return
	}
	for _, c := range conflicts {
		fmt.Fprintln(w, styleWarning.Render(fmt.Sprintf("conflict [%s]: %s", c.A.SourceType, c.Message)))
		fmt.Fprintf(w, "  %s/%d  %s — %s\n", c.A.SourceType, c.A.ID,
			c.A.StartTime.Format(time.RFC3339), c.A.EndTime.Format(time.RFC3339))
		fmt.Fprintf(w, "  %s/%d  %s — %s\n", c.B.SourceType, c.B.ID,
			c.B.StartTime.Format(time.RFC3339), c.B.EndTime.Format(time.RFC3339))
		fmt.Fprintf(w, "  suggested: %s\n", c.SuggestedResolution)
	}
}

func renderStats(w io.Writer, stats *domain.ActivityStats) {
	fmt.Fprintln(w, styleHeader.Render("Activity summary"))
	fmt.Fprintf(w, "  activities: %d (editable: %d, conflicts: %d)\n",
		stats.TotalActivities, stats.EditableCount, stats.ConflictCount)
	fmt.Fprintf(w, "  total time: %s\n", formatDuration(stats.TotalDurationSec))
	for _, st := range domain.AllSourceTypes {
		if n := stats.CountBySource[st]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", st+":", n)
		}
	}
	if len(stats.CategoryBreakdown) > 0 {
		fmt.Fprintln(w, styleHeader.Render("By category"))
		for _, c := range stats.CategoryBreakdown {
			fmt.Fprintf(w, "  %-20s %-9s %5.1f%%  (%d)\n",
				c.Name, formatDuration(c.DurationSec), c.Percentage, c.Count)
		}
	}
}
