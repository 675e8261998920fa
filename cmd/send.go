package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Meshotron2/monitor/internal/progress"
)

type sendFlags struct {
	percent     float32
	sendTime    float32
	receiveTime float32
	delayPass   float32
	scatterPass float32
}

// newSendCmd creates the 'send' subcommand, which reports one progress record.
func newSendCmd() *cobra.Command {
	flags := &sendFlags{}
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Sends one progress record",
		Long: `Sends a single progress record carrying the given percentage and
optional timing fields (seconds). Unset timings are sent as zero.`,
		RunE: withApp(func(cmd *cobra.Command, appInstance *app) error {
			rec := progress.Record{
				WorkerID:    appInstance.workerID(),
				Percentage:  flags.percent,
				SendTime:    flags.sendTime,
				ReceiveTime: flags.receiveTime,
				DelayPass:   flags.delayPass,
				ScatterPass: flags.scatterPass,
			}
			return report(cmd, appInstance, rec)
		}),
	}
	f := cmd.Flags()
	f.Float32Var(&flags.percent, "percent", 0, "progress percentage, 0-100")
	f.Float32Var(&flags.sendTime, "send-time", 0, "send phase duration in seconds")
	f.Float32Var(&flags.receiveTime, "receive-time", 0, "receive phase duration in seconds")
	f.Float32Var(&flags.delayPass, "delay-pass", 0, "delay pass duration in seconds")
	f.Float32Var(&flags.scatterPass, "scatter-pass", 0, "scatter pass duration in seconds")
	_ = cmd.MarkFlagRequired("percent")
	return cmd
}

// newFinishCmd creates the 'finish' subcommand, which tells the monitor the worker is done.
func newFinishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "finish",
		Short: "Sends the end-of-run record",
		RunE: withApp(func(cmd *cobra.Command, appInstance *app) error {
			return report(cmd, appInstance, progress.Finished(appInstance.workerID()))
		}),
	}
}

func report(cmd *cobra.Command, appInstance *app, rec progress.Record) error {
	mon := appInstance.cfg.Monitor
	client := appInstance.newClient()
	if err := client.Report(cmd.Context(), mon.Host, mon.Port, rec); err != nil {
		return fmt.Errorf("report progress: %w", err)
	}
	appInstance.logger.Info("progress reported",
		zap.String("host", mon.Host),
		zap.Int("port", mon.Port),
		zap.Int32("worker_id", rec.WorkerID),
		zap.Float32("percentage", rec.Percentage),
	)
	return nil
}
