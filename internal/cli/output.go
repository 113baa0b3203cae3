package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lmehner/blockworld/internal/model"
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
	case model.Overview:
		o.printOverview(v)
	case model.ListSet:
		o.printLists(v)
	case []model.LogEntry:
		o.printLogs(v)
	case model.PlayerView:
		o.printPlayer(v)
	case []model.PlayerView:
		o.printPlayers(v)
	case []string:
		o.printNames(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printOverview(v model.Overview) {
	fmt.Printf("Server:      %s\n", v.Name)
	fmt.Printf("Owner:       %s\n", v.Owner)
	fmt.Printf("Max players: %d\n", v.MaxPlayers)
	fmt.Printf("Online:      %d\n", len(v.Online))
	for _, name := range v.Online {
		fmt.Printf("  %s\n", name)
	}
}

func (o *Output) printLists(v model.ListSet) {
	printList := func(label string, names []string) {
		fmt.Printf("%s (%d):\n", label, len(names))
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
	}
	printList("Adminlist", v.Adminlist)
	printList("Modlist", v.Modlist)
	printList("Whitelist", v.Whitelist)
	printList("Blacklist", v.Blacklist)
}

func (o *Output) printLogs(entries []model.LogEntry) {
	for _, e := range entries {
		fmt.Printf("%s  %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Text)
	}
}

func (o *Output) printPlayer(v model.PlayerView) {
	if v.Name == "" {
		fmt.Println("Player has never joined")
		return
	}
	fmt.Printf("Name:       %s\n", v.Name)
	fmt.Printf("Joins:      %d\n", v.JoinCount)
	fmt.Printf("Address:    %s\n", v.LastAddress)
	if len(v.AddressHistory) > 1 {
		fmt.Printf("Previously: %s\n", strings.Join(v.AddressHistory, ", "))
	}
	fmt.Printf("Roles:      %s\n", strings.Join(playerRoles(v), ", "))
}

func (o *Output) printPlayers(views []model.PlayerView) {
	fmt.Printf("%d known players:\n", len(views))
	for _, v := range views {
		fmt.Printf("  %-20s joins=%-4d %s\n", v.Name, v.JoinCount, strings.Join(playerRoles(v), ","))
	}
}

func (o *Output) printNames(names []string) {
	fmt.Printf("%d online:\n", len(names))
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}
}

func (o *Output) printHealthResult(v HealthResult) {
	fmt.Printf("Status: %s\n", v.Status)
}

func playerRoles(v model.PlayerView) []string {
	var roles []string
	if v.IsOwner {
		roles = append(roles, "owner")
	}
	if v.IsAdmin {
		roles = append(roles, "admin")
	}
	if v.IsMod {
		roles = append(roles, "mod")
	}
	if v.IsWhitelisted {
		roles = append(roles, "whitelisted")
	}
	if v.IsBlacklisted {
		roles = append(roles, "blacklisted")
	}
	if len(roles) == 0 {
		roles = append(roles, "player")
	}
	return roles
}

// HealthResult is the health endpoint response
type HealthResult struct {
	Status string `json:"status"`
}
