package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zoomgrab-cli/zoomgrab/browser"
	"github.com/zoomgrab-cli/zoomgrab/constant"
	"github.com/zoomgrab-cli/zoomgrab/icon"
	"github.com/zoomgrab-cli/zoomgrab/key"
	"github.com/zoomgrab-cli/zoomgrab/log"
	"github.com/zoomgrab-cli/zoomgrab/session"
	"github.com/zoomgrab-cli/zoomgrab/style"
	"github.com/zoomgrab-cli/zoomgrab/util"
)

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().BoolP("force", "f", false, "Discard any saved session and log in from scratch")
}

// loginCmd opens a visible browser for interactive Zoom authentication and
// persists the resulting session for later downloads.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with Zoom in a browser and save the session",
	Long: `Open a visible browser window on the Zoom profile page and wait for you to
complete the login, including any SSO or two-factor steps. Once the session
is established its cookies are saved for subsequent downloads.`,
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")

		if force {
			handleErr(session.Clear())
		} else {
			saved, err := session.Load()
			handleErr(err)
			if session.IsLoggedIn(saved) {
				fmt.Printf("%s Already logged in. Use %s to start over.\n",
					icon.Get(icon.Success), style.Bold("login --force"))
				return
			}
		}

		handleErr(performLogin())
	},
}

// performLogin runs the interactive authentication flow: a visible browser
// on the Zoom profile page, polled until an authenticated session appears,
// which is then snapshotted. Also invoked from the download flow when no
// saved session exists.
func performLogin() error {
	// Login always needs a window the user can interact with.
	b, err := browser.Launch(false)
	if err != nil {
		return err
	}
	defer util.Ignore(b.Close)

	page, err := b.NewPage()
	if err != nil {
		return err
	}

	navTimeout := time.Duration(viper.GetInt(key.ScraperNavigationTimeout)) * time.Second
	if err := page.Navigate(constant.ZoomProfileURL, navTimeout); err != nil {
		log.Warnf("profile navigation: %v", err)
	}

	fmt.Printf("%s Complete the login in the browser window. Waiting...\n", icon.Get(icon.Lock))

	maxWait := time.Duration(viper.GetInt(key.ScraperMaxWait)) * time.Second
	deadline := time.Now().Add(maxWait)

	for {
		cookies, err := b.Cookies()
		if err == nil && session.IsLoggedIn(cookies) {
			if err := session.Save(cookies); err != nil {
				return err
			}
			fmt.Printf("%s Logged in, session saved (%s)\n",
				icon.Get(icon.Success), util.Quantify(len(cookies), "cookie", "cookies"))
			return nil
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("no login detected within %s", maxWait)
		}

		time.Sleep(3 * time.Second)
	}
}
