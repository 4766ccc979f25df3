package cli

import (
	"github.com/spf13/cobra"
	"github.com/sysu-ecnc-dev/shift-planner/internal/domain"
	"github.com/sysu-ecnc-dev/shift-planner/internal/roster"
	"github.com/sysu-ecnc-dev/shift-planner/internal/seed"
	"github.com/sysu-ecnc-dev/shift-planner/internal/utils"
)

func newExampleCmd() *cobra.Command {
	var random int

	cmd := &cobra.Command{
		Use:   "example",
		Short: "输出示例名册",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workers := seed.DemoRoster()
			if random > 0 {
				workers = randomWorkers(random)
			}
			return roster.Write(cmd.OutOrStdout(), workers)
		},
	}

	cmd.Flags().IntVar(&random, "random", 0, "生成指定数量的随机员工，代替示例名册")

	return cmd
}

// randomWorkers 生成 n 个名字互不相同的随机员工
func randomWorkers(n int) []*domain.Worker {
	workers := make([]*domain.Worker, 0, n)
	seen := make(map[string]struct{}, n)
	for len(workers) < n {
		w := utils.GenerateRandomWorker()
		if _, exists := seen[w.Name]; exists {
			continue
		}
		seen[w.Name] = struct{}{}
		workers = append(workers, w)
	}
	return workers
}
