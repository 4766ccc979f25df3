package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/sysu-ecnc-dev/shift-planner/internal/render"
	"github.com/sysu-ecnc-dev/shift-planner/internal/roster"
	"github.com/sysu-ecnc-dev/shift-planner/internal/scheduler"
)

func newGenerateCmd() *cobra.Command {
	var (
		seed     int64
		jsonMode bool
	)

	cmd := &cobra.Command{
		Use:   "generate <roster.yaml>",
		Short: "为名册生成本周排班",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workers, err := roster.LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("无法读取名册: %w", err)
			}
			if len(workers) == 0 {
				return errors.New("名册中没有员工，无法排班")
			}

			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			logger.Debug("开始排班", "roster", args[0], "workers", len(workers), "seed", seed)

			s, err := scheduler.New(parameters(), scheduler.NewRandomSource(seed), logger)
			if err != nil {
				return err
			}

			ws, err := s.Schedule(workers)
			if err != nil {
				return err
			}

			if jsonMode {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(ws)
			}
			return render.Write(cmd.OutOrStdout(), ws)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "随机种子（默认使用当前时间）")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "以 JSON 格式输出排班结果")

	return cmd
}
