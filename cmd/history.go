package cmd

import (
	"os"
	"sort"

	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/zoomgrab-cli/zoomgrab/color"
	"github.com/zoomgrab-cli/zoomgrab/history"
	"github.com/zoomgrab-cli/zoomgrab/style"
	"github.com/zoomgrab-cli/zoomgrab/util"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().String("remove", "", "Remove the history entry for the given recording URL")

	historyCmd.SetOut(os.Stdout)
}

// historyCmd lists previously downloaded recordings.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously downloaded recordings",
	Run: func(cmd *cobra.Command, args []string) {
		saved, err := history.Get()
		handleErr(err)

		if remove := lo.Must(cmd.Flags().GetString("remove")); remove != "" {
			record, ok := saved[remove]
			if !ok {
				cmd.Printf("no history entry for %s\n", remove)
				return
			}
			handleErr(history.Remove(record))
			cmd.Printf("removed %s\n", record.Title)
			return
		}

		if len(saved) == 0 {
			cmd.Println(style.Faint("history is empty"))
			return
		}

		records := lo.Values(saved)
		sort.Slice(records, func(i, j int) bool {
			return records[i].DownloadedAt.After(records[j].DownloadedAt)
		})

		width, _, err := util.TerminalSize()
		if err != nil || width <= 0 {
			width = 80
		}

		headerStyle := style.New().Bold(true).Foreground(color.HiPurple).Render
		for i, record := range records {
			cmd.Println(headerStyle(record.String()))
			if record.Topic != "" && record.Topic != record.Title {
				cmd.Println(wordwrap.String(style.Faint(record.Topic), width))
			}
			cmd.Println(record.URL)
			cmd.Println(style.Faint(record.Directory))

			if i < len(records)-1 {
				cmd.Println()
			}
		}
	},
}
