package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/zoomgrab-cli/zoomgrab/color"
	"github.com/zoomgrab-cli/zoomgrab/icon"
	"github.com/zoomgrab-cli/zoomgrab/scraper"
	"github.com/zoomgrab-cli/zoomgrab/style"
)

func init() {
	rootCmd.AddCommand(probeCmd)

	probeCmd.Flags().BoolP("json", "j", false, "Format the extraction report as a JSON string")
	probeCmd.Flags().Bool("json-schema", false, "Generate the JSON Schema for extraction reports and exit")
	probeCmd.MarkFlagsMutuallyExclusive("json", "json-schema")

	probeCmd.SetOut(os.Stdout)
}

// probeCmd performs extraction only, reporting what a download would fetch
// without transferring any media.
var probeCmd = &cobra.Command{
	Use:     "probe [url]",
	Short:   "Inspect a recording page and report its downloadable assets",
	Args:    cobra.MaximumNArgs(1),
	Example: "  zoomgrab probe --json https://zoom.us/rec/share/...",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("json-schema")) {
			reflector := new(jsonschema.Reflector)
			reflector.Anonymous = true
			schema := reflector.Reflect(&scraper.Report{})
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(schema))
			return
		}

		if len(args) == 0 {
			handleErr(fmt.Errorf("a recording URL is required"))
		}

		result, _, err := extract(args[0])
		handleErr(err)

		report := result.Report()

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(report))
			return
		}

		label := style.New().Bold(true).Foreground(color.HiPurple).Render
		printURL := func(name string, url *string) {
			if url != nil {
				cmd.Printf("%s %s\n  %s\n", icon.Get(icon.Success), label(name), *url)
			} else {
				cmd.Printf("%s %s %s\n", icon.Get(icon.Fail), label(name), style.Faint("not found"))
			}
		}

		cmd.Printf("%s %s\n\n", label("Title"), report.Title)
		printURL("Video", report.VideoURL)
		printURL("Transcript", report.TranscriptURL)

		if report.Topic != nil {
			cmd.Printf("\n%s %s\n", label("Topic"), *report.Topic)
		}
		if report.StartTime != nil {
			cmd.Printf("%s %s\n", label("Start time"), *report.StartTime)
		}
	},
}
