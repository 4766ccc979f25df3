package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/sysu-ecnc-dev/shift-planner/internal/scheduler"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Log         struct {
		Level  string `env:"LEVEL" envDefault:"info"`
		Format string `env:"FORMAT" envDefault:"text"`
	} `envPrefix:"LOG_"`
	Server struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN                string `env:"DSN,required"`
		ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout       int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		TransactionTimeout int    `env:"TRANSACTION_TIMEOUT" envDefault:"20"`
		MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime        int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	Manager struct {
		Username string `env:"USERNAME" envDefault:"manager"`
		Password string `env:"PASSWORD,required"`
		FullName string `env:"FULL_NAME" envDefault:"排班管理员"`
		Email    string `env:"EMAIL,required"`
	} `envPrefix:"MANAGER_"`
	JWT struct {
		Expiration int    `env:"EXPIRATION" envDefault:"336"` // 14 天，单位为小时
		Secret     string `env:"SECRET,required"`
	} `envPrefix:"JWT_"`
	Scheduling struct {
		MaxDaysPerWorker int `env:"MAX_DAYS_PER_WORKER" envDefault:"5"`
		MaxPerShift      int `env:"MAX_PER_SHIFT" envDefault:"2"`
		MinPerShift      int `env:"MIN_PER_SHIFT" envDefault:"2"`
	} `envPrefix:"SCHEDULING_"`
	Email struct {
		SMTP struct {
			Username    string `env:"USERNAME,required"`
			Password    string `env:"PASSWORD,required"`
			Host        string `env:"HOST,required"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
		TemplateDir string `env:"TEMPLATE_DIR" envDefault:"./templates"`
	} `envPrefix:"EMAIL_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		Queue          string `env:"QUEUE" envDefault:"email_queue"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host           string `env:"HOST" envDefault:"localhost"`
		Port           int    `env:"PORT" envDefault:"6379"`
		Password       string `env:"PASSWORD,required"`
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		LockKey        string `env:"LOCK_KEY" envDefault:"shift-planner:roster-lock"`
		LockExpiration int    `env:"LOCK_EXPIRATION" envDefault:"30"` // 秒
	} `envPrefix:"REDIS_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	if err := cfg.SchedulingParameters().Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) SchedulingParameters() *scheduler.Parameters {
	return &scheduler.Parameters{
		MaxDaysPerWorker: c.Scheduling.MaxDaysPerWorker,
		MaxPerShift:      c.Scheduling.MaxPerShift,
		MinPerShift:      c.Scheduling.MinPerShift,
	}
}
