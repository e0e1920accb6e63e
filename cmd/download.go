package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zoomgrab-cli/zoomgrab/filesystem"
	"github.com/zoomgrab-cli/zoomgrab/history"
	"github.com/zoomgrab-cli/zoomgrab/icon"
	"github.com/zoomgrab-cli/zoomgrab/internal/ui"
	"github.com/zoomgrab-cli/zoomgrab/key"
	"github.com/zoomgrab-cli/zoomgrab/log"
	"github.com/zoomgrab-cli/zoomgrab/network"
	"github.com/zoomgrab-cli/zoomgrab/query"
	"github.com/zoomgrab-cli/zoomgrab/scraper"
	"github.com/zoomgrab-cli/zoomgrab/session"
	"github.com/zoomgrab-cli/zoomgrab/style"
	"github.com/zoomgrab-cli/zoomgrab/transcript"
)

const (
	targetVideo      = "video"
	targetTranscript = "transcript"
	targetBoth       = "both"

	styleParagraph   = "paragraph"
	styleTimestamped = "timestamped"

	formatTxt = "txt"
	formatVtt = "vtt"
)

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringP("target", "t", "", "What to download: video, transcript or both")
	lo.Must0(downloadCmd.RegisterFlagCompletionFunc("target", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{targetVideo, targetTranscript, targetBoth}, cobra.ShellCompDirectiveNoFileComp
	}))

	downloadCmd.Flags().String("transcript-style", "", "Transcript text layout: paragraph or timestamped")
	downloadCmd.Flags().String("transcript-format", "", "Transcript file format: txt or vtt")
	downloadCmd.Flags().StringP("output", "o", "", "Directory to place the recording folder in")
}

// downloadCmd runs the end-to-end flow: extract the media URLs from the
// recording page, then fetch the selected assets.
var downloadCmd = &cobra.Command{
	Use:     "download [url]",
	Short:   "Download a Zoom cloud recording and/or its transcript",
	Args:    cobra.MaximumNArgs(1),
	Aliases: []string{"dl"},
	Example: "  zoomgrab download https://zoom.us/rec/share/...",
	Run: func(cmd *cobra.Command, args []string) {
		var url string
		if len(args) > 0 {
			url = args[0]
		} else {
			handleErr(survey.AskOne(&survey.Input{
				Message: "Recording URL:",
				Suggest: func(toComplete string) []string {
					return query.SuggestMany(toComplete)
				},
			}, &url, survey.WithValidator(survey.Required)))
		}

		result, cookies, err := extract(url)
		handleErr(err)

		target := lo.Must(cmd.Flags().GetString("target"))
		if target == "" {
			target = askTarget(result)
		}

		wantVideo := target == targetVideo || target == targetBoth
		wantTranscript := target == targetTranscript || target == targetBoth

		if wantVideo && result.VideoURL().IsAbsent() {
			handleErr(errors.New("no video URL was discovered on the recording page"))
		}
		if wantTranscript && result.TranscriptURL().IsAbsent() {
			if wantVideo {
				fmt.Printf("%s No transcript available, downloading video only\n", icon.Get(icon.Warn))
				wantTranscript = false
			} else {
				handleErr(errors.New("no transcript URL was discovered on the recording page"))
			}
		}

		output := lo.Must(cmd.Flags().GetString("output"))
		if output == "" {
			handleErr(survey.AskOne(&survey.Input{
				Message: "Output directory:",
				Default: ".",
			}, &output))
		}

		dir := filepath.Join(output, result.Title())
		handleErr(filesystem.API().MkdirAll(dir, 0o755))

		jar := session.Jar(cookies)

		if wantVideo {
			downloadVideo(result, dir, jar)
		}

		if wantTranscript {
			downloadTranscript(cmd, result, dir, jar)
		}

		if err := query.Remember(url, result.Title(), 1); err != nil {
			log.Warnf("remember url: %v", err)
		}

		if viper.GetBool(key.HistorySaveOnDownload) {
			if err := history.Save(url, dir, result); err != nil {
				log.Warnf("save history: %v", err)
			}
		}

		fmt.Printf("%s Saved to %s\n", icon.Get(icon.Success), style.Bold(dir))
	},
}

// askTarget prompts for what to fetch, constrained to what extraction found.
func askTarget(result *scraper.MediaResult) string {
	var options []string
	if result.VideoURL().IsPresent() {
		options = append(options, targetVideo)
	}
	if result.TranscriptURL().IsPresent() {
		options = append(options, targetTranscript)
	}
	if len(options) == 2 {
		options = append(options, targetBoth)
	}

	if len(options) == 0 {
		handleErr(errors.New("no downloadable assets were discovered on the recording page"))
	}
	if len(options) == 1 {
		return options[0]
	}

	var target string
	handleErr(survey.AskOne(&survey.Select{
		Message: "What should be downloaded?",
		Options: options,
		Default: targetBoth,
	}, &target))
	return target
}

func downloadVideo(result *scraper.MediaResult, dir string, jar map[string]string) {
	dest := filepath.Join(dir, result.Title()+".mp4")

	display := ui.StartDownload(result.Title() + ".mp4")
	err := network.DownloadFile(result.VideoURL().MustGet(), dest, jar, display.Report)
	display.Finish(err)
	handleErr(err)
}

func downloadTranscript(cmd *cobra.Command, result *scraper.MediaResult, dir string, jar map[string]string) {
	format := lo.Must(cmd.Flags().GetString("transcript-format"))
	if format == "" {
		handleErr(survey.AskOne(&survey.Select{
			Message: "Transcript format:",
			Options: []string{formatTxt, formatVtt},
			Default: formatTxt,
		}, &format))
	}

	fmt.Printf("%s Fetching transcript...\n", icon.Get(icon.Transcript))
	raw, err := network.FetchText(result.TranscriptURL().MustGet(), jar)
	handleErr(err)

	var content string
	switch format {
	case formatVtt:
		content = raw
	case formatTxt:
		layout := lo.Must(cmd.Flags().GetString("transcript-style"))
		if layout == "" {
			handleErr(survey.AskOne(&survey.Select{
				Message: "Transcript layout:",
				Options: []string{styleParagraph, styleTimestamped},
				Default: styleParagraph,
			}, &layout))
		}

		cues := transcript.Parse(raw)
		if layout == styleTimestamped {
			content = transcript.ToTimestampedText(cues)
		} else {
			content = transcript.ToParagraph(cues)
		}
	default:
		handleErr(fmt.Errorf("unknown transcript format: %s", format))
	}

	dest := filepath.Join(dir, result.Title()+"."+format)
	handleErr(filesystem.API().WriteFile(dest, []byte(content), 0o644))
	fmt.Printf("%s Transcript saved as %s\n", icon.Get(icon.Success), filepath.Base(dest))
}
