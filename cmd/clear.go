package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"

	"github.com/zoomgrab-cli/zoomgrab/filesystem"
	"github.com/zoomgrab-cli/zoomgrab/icon"
	"github.com/zoomgrab-cli/zoomgrab/session"
	"github.com/zoomgrab-cli/zoomgrab/util"
	"github.com/zoomgrab-cli/zoomgrab/where"
)

// clearTarget defines a filesystem resource eligible for automated cleanup.
type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
}

// clearTargets registry of all application artifacts that can be selectively cleared.
var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), where.Cache},
	{"history file", "history", mo.Some("s"), where.History},
	{"browser profile", "profile", mo.Some("p"), where.UserData},
	{"queries history", "queries", mo.Some("q"), where.Queries},
	{"log files", "logs", mo.Some("l"), where.Logs},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}

	clearCmd.Flags().Bool("session", false, "clear the saved login session and its keyring entry")
}

// clearCmd manages the cleanup of temporary and cached application artifacts.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear temporary and cached application artifacts",
	Run: func(cmd *cobra.Command, args []string) {
		var anyCleared bool

		doClear := func(what string) bool {
			return lo.Must(cmd.Flags().GetBool(what))
		}

		for _, target := range clearTargets {
			if doClear(target.argLong) {
				anyCleared = true
				e := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), util.Capitalize(target.name)))
				_ = util.Delete(target.location())
				e()
				fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
				handleErr(filesystem.API().RemoveAll(target.location()))
			}
		}

		if doClear("session") {
			anyCleared = true
			handleErr(session.Clear())
			fmt.Printf("%s Session cleared\n", icon.Get(icon.Success))
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
