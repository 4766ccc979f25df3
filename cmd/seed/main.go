package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sysu-ecnc-dev/shift-planner/internal/config"
	"github.com/sysu-ecnc-dev/shift-planner/internal/logging"
	"github.com/sysu-ecnc-dev/shift-planner/internal/repository"
	"github.com/sysu-ecnc-dev/shift-planner/internal/seed"
	"github.com/sysu-ecnc-dev/shift-planner/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var file string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机员工, 2: 插入示例名册, 3: 从 CSV 文件导入名册)")
	flag.IntVar(&n, "n", 5, "要插入的随机员工数量")
	flag.StringVar(&file, "file", "", "要导入的 CSV 文件路径")
	flag.Parse()

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format)
	slog.SetDefault(logger)

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的员工数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				worker := utils.GenerateRandomWorker()
				if err := repo.CreateWorker(worker); err != nil {
					slog.Error("无法插入员工", slog.String("name", worker.Name), slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入员工成功", slog.Int("count", n-cnt))
		}
	case 2:
		cnt := seed.SeedWorkers(repo, seed.DemoRoster())
		slog.Info("插入示例名册成功", slog.Int("count", cnt))
	case 3:
		if file == "" {
			slog.Error("请通过 -file 指定 CSV 文件")
			return
		}

		cnt, err := seed.SeedFromCSV(repo, file)
		if err != nil {
			slog.Error("无法导入名册", slog.String("error", err.Error()))
			return
		}

		slog.Info("导入名册成功", slog.Int("count", cnt))
	default:
		slog.Error("指定的操作非法")
	}
}
