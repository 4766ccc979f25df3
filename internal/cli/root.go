package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/sysu-ecnc-dev/shift-planner/internal/logging"
	"github.com/sysu-ecnc-dev/shift-planner/internal/scheduler"
)

var (
	flagLogLevel    string
	flagLogFormat   string
	flagMaxDays     int
	flagMaxPerShift int
	flagMinPerShift int

	logger *slog.Logger
)

// NewRootCmd 创建 planner 命令
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "planner",
		Short: "每周排班工具",
		Long: `planner 根据员工名册以及每个员工每天的班次偏好，生成一周 7 天、每天 3 个班次的排班表。

示例:
  # 输出示例名册
  planner example > roster.yaml

  # 生成并打印本周排班
  planner generate roster.yaml --seed 42
`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewLoggerWithWriter(logging.ParseLevel(flagLogLevel), flagLogFormat, cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "日志级别 (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "日志格式 (text, json)")
	root.PersistentFlags().IntVar(&flagMaxDays, "max-days", scheduler.DefaultMaxDaysPerWorker, "每个员工每周最多上班的天数")
	root.PersistentFlags().IntVar(&flagMaxPerShift, "max-per-shift", scheduler.DefaultMaxPerShift, "每个班次最多的人数")
	root.PersistentFlags().IntVar(&flagMinPerShift, "min-per-shift", scheduler.DefaultMinPerShift, "每个班次最少的人数，少于该人数时给出警告")

	root.AddCommand(
		newGenerateCmd(),
		newExampleCmd(),
	)

	return root
}

func parameters() *scheduler.Parameters {
	return &scheduler.Parameters{
		MaxDaysPerWorker: flagMaxDays,
		MaxPerShift:      flagMaxPerShift,
		MinPerShift:      flagMinPerShift,
	}
}
