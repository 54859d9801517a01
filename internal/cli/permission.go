// filepath: internal/cli/permission.go
package cli

import (
	"context"
	"fmt"

	"voicejournal/internal/audio"
	"voicejournal/internal/audit"
	"voicejournal/internal/media"

	"github.com/spf13/cobra"
)

var permissionCmd = &cobra.Command{
	Use:   "permission",
	Short: "Inspect or change the microphone permission",
}

func permissionStore() *audio.FilePermissionStore {
	return audio.NewFilePermissionStore(cfg.Audio.PermissionFile)
}

var permissionStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored microphone decision",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(stdout, "Microphone permission: %s\n", permissionStore().Status())
		return nil
	},
}

func setPermission(granted bool) error {
	if err := permissionStore().Set(granted); err != nil {
		return err
	}
	audit.NewLoggerAuditor(cfg.Logging.AuditEnabled).Log(context.Background(), audit.ActionPermission, currentUser(), "microphone",
		map[string]interface{}{"granted": granted})
	fmt.Fprintf(stdout, "Microphone permission: %s\n", permissionStore().Status())
	return nil
}

var permissionGrantCmd = &cobra.Command{
	Use:   "grant",
	Short: "Allow recording from the microphone",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPermission(true)
	},
}

var permissionRevokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Deny recording from the microphone",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPermission(false)
	},
}

var permissionResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the decision so the next recording asks again",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := permissionStore().Reset(); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Microphone permission reset.")
		return nil
	},
}

var permissionRequestCmd = &cobra.Command{
	Use:   "request",
	Short: "Ask for microphone access if no decision was made yet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tools := media.Discover(cfg.Audio.FFmpegPath, cfg.Audio.PlayerPath)
		controller := audio.NewController(audio.NewExecBackend(tools, cfg.Audio), permissionStore())
		if _, err := controller.RequestPermission(context.Background(), audio.NewTerminalPrompter()); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Microphone permission: %s\n", controller.PermissionStatus())
		return nil
	},
}

func init() {
	permissionCmd.AddCommand(permissionStatusCmd)
	permissionCmd.AddCommand(permissionGrantCmd)
	permissionCmd.AddCommand(permissionRevokeCmd)
	permissionCmd.AddCommand(permissionResetCmd)
	permissionCmd.AddCommand(permissionRequestCmd)
	RootCmd.AddCommand(permissionCmd)
}
