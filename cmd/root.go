// Package cmd implements the command-line interface for zoomgrab.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zoomgrab-cli/zoomgrab/color"
	"github.com/zoomgrab-cli/zoomgrab/constant"
	"github.com/zoomgrab-cli/zoomgrab/icon"
	"github.com/zoomgrab-cli/zoomgrab/key"
	"github.com/zoomgrab-cli/zoomgrab/log"
	"github.com/zoomgrab-cli/zoomgrab/style"
	"github.com/zoomgrab-cli/zoomgrab/util"
	"github.com/zoomgrab-cli/zoomgrab/version"
	"github.com/zoomgrab-cli/zoomgrab/where"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, square)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Persist completed downloads to the localized history")
	lo.Must0(viper.BindPFlag(key.HistorySaveOnDownload, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.PersistentFlags().Bool("headless", false, "Run the automated browser without a visible window")
	lo.Must0(viper.BindPFlag(key.BrowserHeadless, rootCmd.PersistentFlags().Lookup("headless")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the zoomgrab application.
var rootCmd = &cobra.Command{
	Use:   constant.Zoomgrab,
	Short: "A command-line downloader for Zoom cloud recordings and transcripts",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiBlue).Render("    - A command-line downloader for Zoom cloud recordings and transcripts"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		// Bare invocation drops into the interactive download flow.
		downloadCmd.Run(downloadCmd, args)
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
