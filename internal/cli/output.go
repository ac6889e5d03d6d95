package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcoot/protocasual/internal/api/response"
	"github.com/mcoot/protocasual/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// stdout is where command output goes; tests swap it
var stdout io.Writer = os.Stdout

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format, w: stdout}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Health:
		fmt.Fprintf(o.w, "%s (save schema v%d)\n", v.Status, v.SchemaVersion)
	case response.Wallet:
		o.printWallet(v)
	case response.Inventory:
		o.printInventory(v)
	case response.Equipment:
		o.printEquipment(v)
	case response.Catalog:
		o.printCatalog(v)
	case response.Purchase:
		fmt.Fprintf(o.w, "Bought %s (now own %d)\n", v.ItemID, v.Quantity)
		o.printWallet(v.Wallet)
	case response.DailyReward:
		o.printDaily(v)
	case response.Tutorial:
		o.printTutorial(v)
	case response.Achievements:
		o.printAchievements(v)
	case response.Leaderboard:
		o.printLeaderboard(v)
	case response.Progress:
		fmt.Fprintf(o.w, "Level: %d\n", v.CurrentLevel)
	case response.Game:
		o.printGame(v)
	case response.Save:
		o.printSave(v)
	default:
		o.printJSON(data)
	}
}

func (o *Output) printWallet(w response.Wallet) {
	fmt.Fprintf(o.w, "Soft: %d\n", w.Soft)
	fmt.Fprintf(o.w, "Hard: %d\n", w.Hard)
}

func (o *Output) printInventory(inv response.Inventory) {
	if len(inv.Items) == 0 {
		fmt.Fprintln(o.w, "Inventory is empty")
		return
	}
	fmt.Fprintf(o.w, "Items (%d):\n", len(inv.Items))
	for _, it := range inv.Items {
		fmt.Fprintf(o.w, "  - %s x%d\n", it.ItemID, it.Quantity)
	}
}

func (o *Output) printEquipment(e response.Equipment) {
	if len(e.Slots) == 0 {
		fmt.Fprintln(o.w, "Nothing equipped")
		return
	}
	for _, s := range e.Slots {
		fmt.Fprintf(o.w, "%s: %s\n", s.SlotName, s.ItemID)
	}
}

func (o *Output) printCatalog(c response.Catalog) {
	for _, it := range c.Items {
		fmt.Fprintf(o.w, "%-12s %-10s %-10s %s\n", it.ID, it.Type, it.Category, formatPrice(it))
	}
}

func formatPrice(it model.Item) string {
	var parts []string
	if it.SoftPrice > 0 {
		parts = append(parts, fmt.Sprintf("%d soft", it.SoftPrice))
	}
	if it.HardPrice > 0 {
		parts = append(parts, fmt.Sprintf("%d hard", it.HardPrice))
	}
	if len(parts) == 0 {
		return "not for sale"
	}
	return strings.Join(parts, " / ")
}

func (o *Output) printDaily(d response.DailyReward) {
	fmt.Fprintf(o.w, "Streak: %d\n", d.Streak)
	if d.LastClaimTime != nil {
		fmt.Fprintf(o.w, "Last Claim: %s\n", d.LastClaimTime.Format("2006-01-02 15:04:05 MST"))
	}
	claim := "no"
	if d.CanClaimToday {
		claim = "yes"
	}
	fmt.Fprintf(o.w, "Claimable: %s\n", claim)
	for _, r := range d.TodayReward {
		fmt.Fprintf(o.w, "  - %s\n", formatReward(r))
	}
}

func formatReward(r model.RewardEntry) string {
	if r.RewardID != "" {
		return fmt.Sprintf("%s %s x%d", r.Type, r.RewardID, r.Amount)
	}
	return fmt.Sprintf("%s x%d", r.Type, r.Amount)
}

func (o *Output) printTutorial(t response.Tutorial) {
	fmt.Fprintf(o.w, "State: %s\n", t.State)
	fmt.Fprintf(o.w, "Step: %d\n", t.CurrentStep)
	if t.Step != nil {
		fmt.Fprintf(o.w, "%s: %s\n", t.Step.Title, t.Step.Message)
	}
}

func (o *Output) printAchievements(a response.Achievements) {
	for _, s := range a.Achievements {
		mark := " "
		if s.Unlocked {
			mark = "x"
		}
		fmt.Fprintf(o.w, "[%s] %s %d/%d\n", mark, s.DisplayName, s.Progress, s.Required)
	}
}

func (o *Output) printLeaderboard(l response.Leaderboard) {
	fmt.Fprintf(o.w, "Leaderboard: %s\n", l.ID)
	for _, e := range l.Entries {
		fmt.Fprintf(o.w, "%3d. %-20s %d\n", e.Rank, e.DisplayName, e.Score)
	}
	if l.PlayerBest != nil {
		fmt.Fprintf(o.w, "Your best: %d (rank %d)\n", l.PlayerBest.Score, l.PlayerBest.Rank)
	}
}

func (o *Output) printGame(g response.Game) {
	fmt.Fprintf(o.w, "State: %s\n", g.State)
	if g.Mode != "" {
		fmt.Fprintf(o.w, "Mode: %s\n", g.Mode)
	}
	fmt.Fprintf(o.w, "Elapsed: %s\n", g.Elapsed)
	fmt.Fprintf(o.w, "Time Scale: %.2f\n", g.TimeScale)
	fmt.Fprintf(o.w, "Modes: %s\n", strings.Join(g.Modes, ", "))
}

func (o *Output) printSave(s response.Save) {
	fmt.Fprintf(o.w, "Key: %s\n", s.Key)
	if s.ReadOnly {
		fmt.Fprintln(o.w, "Read-only: changes are not being persisted")
	}
	if cfg != nil && cfg.Verbose {
		fmt.Fprintln(o.w, string(s.Data))
	}
}
