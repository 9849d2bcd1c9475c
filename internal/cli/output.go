package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/cards10e/laquiniela247/internal/services/account"
	"github.com/cards10e/laquiniela247/internal/services/maintenance"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case []account.DirectoryEntry:
		o.printDirectory(v)
	case *maintenance.GamePurgeResult:
		o.printGamePurge(v)
	case *maintenance.WeekPurgeResult:
		o.printWeekPurge(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printDirectory(entries []account.DirectoryEntry) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tCREATED")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.DisplayName, e.Email, e.Role, e.CreatedAt.Format(time.RFC3339))
	}
	_ = w.Flush()
	fmt.Printf("%d user(s)\n", len(entries))
}

func (o *Output) printGamePurge(r *maintenance.GamePurgeResult) {
	if len(r.Matched) == 0 {
		fmt.Println("No games matched; nothing deleted")
		return
	}
	fmt.Printf("Matched %d game(s):\n", len(r.Matched))
	for _, g := range r.Matched {
		fmt.Printf("  - %s week=%d %s vs %s created=%s\n",
			g.ID, g.WeekNumber, g.HomeTeam, g.AwayTeam, g.CreatedAt.Format(time.RFC3339))
	}
	fmt.Printf("Deleted %d bet(s) and %d game(s)\n", r.BetsDeleted, r.GamesDeleted)
}

func (o *Output) printWeekPurge(r *maintenance.WeekPurgeResult) {
	if !r.Found {
		fmt.Printf("Week %d not found; nothing to do\n", r.WeekNumber)
		return
	}
	fmt.Printf("Purged week %d:\n", r.WeekNumber)
	fmt.Printf("  Bets deleted:  %d\n", r.BetsDeleted)
	fmt.Printf("  Games deleted: %d\n", r.GamesDeleted)
	fmt.Printf("  Weeks deleted: %d\n", r.WeeksDeleted)
}
