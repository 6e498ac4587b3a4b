package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/saloxy/sal-server/pkg/audit"
	"github.com/saloxy/sal-server/pkg/config"
	"github.com/saloxy/sal-server/pkg/notice"
)

// noticeCmd represents the notice command
var noticeCmd = &cobra.Command{
	Use:   "notice",
	Short: "Push notifications",
	Long:  `Push notifications to a phone through PushPlus.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'notice' requires a subcommand (send)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// noticeSendCmd represents the notice send command
var noticeSendCmd = &cobra.Command{
	Use:   "send <content>",
	Short: "Push a message through PushPlus",
	Long: `Push a message to a phone through PushPlus. Requires
SAL_PUSHPLUS_TOKEN (or pushplus_token in the config file).

Example:
  salctl notice send "scan finished"
  salctl notice send --title backup --template markdown "indexed **3** files"
  salctl notice send --channel mail --render-markdown "# done"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := sendNotice(cmd, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to send notice: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(noticeCmd)
	noticeCmd.AddCommand(noticeSendCmd)
	noticeSendCmd.Flags().StringP("title", "t", "sal", "Message title")
	noticeSendCmd.Flags().String("template", "txt", "Content template (html, txt, json, markdown)")
	noticeSendCmd.Flags().String("channel", "wechat", "Delivery channel (wechat, mail)")
	noticeSendCmd.Flags().Bool("render-markdown", false, "Render the content from markdown to HTML before sending")
}

func sendNotice(cmd *cobra.Command, content string) error {
	cfg := config.Get()
	if cfg.PushPlusToken == "" {
		return fmt.Errorf("SAL_PUSHPLUS_TOKEN is not set")
	}

	title, _ := cmd.Flags().GetString("title")
	templateName, _ := cmd.Flags().GetString("template")
	channelName, _ := cmd.Flags().GetString("channel")
	renderMarkdown, _ := cmd.Flags().GetBool("render-markdown")

	template, err := notice.TemplateString(templateName)
	if err != nil {
		return err
	}
	channel, err := notice.ChannelString(channelName)
	if err != nil {
		return err
	}

	if renderMarkdown {
		rendered, err := notice.RenderMarkdown(content)
		if err != nil {
			return err
		}
		content = rendered
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sender := notice.New(cfg.PushPlusToken, template, channel)
	reply, err := sender.Send(ctx, title, content)
	if err != nil {
		audit.Log(audit.NoticeEvent{
			Title:    title,
			Template: template.String(),
			Channel:  channel.String(),
			Success:  false,
		})
		return err
	}

	audit.Log(audit.NoticeEvent{
		Title:    title,
		Template: template.String(),
		Channel:  channel.String(),
		Code:     reply.Code,
		Success:  reply.OK(),
	})

	if !reply.OK() {
		return fmt.Errorf("push service replied %d: %s", reply.Code, reply.Msg)
	}

	fmt.Println("Notice sent")
	return nil
}
