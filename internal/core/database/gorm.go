package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
)

var ErrUnsupportedDriver = errors.New("database: unsupported driver")

type Opts struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
}

func NewGorm(o Opts) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch o.Driver {
	case "postgres":
		dial = postgres.Open(o.DSN)
	case "mysql":
		dial = mysql.Open(mysqlDSN(o))
	default:
		return nil, ErrUnsupportedDriver
	}

	lvl := logger.Warn
	switch o.LogLevel {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(lvl),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)

	db = db.Session(&gorm.Session{
		PrepareStmt:            true, // 预编译缓存
		SkipDefaultTransaction: true, // 只在投票路径手动开 Tx
	})
	return db, nil
}

// mysqlDSN 支持 host:port/db 简写，user/pass 从配置注入；
// 已是 go-sql-driver 完整 DSN 时原样返回
func mysqlDSN(o Opts) string {
	in := strings.TrimSpace(o.DSN)
	if strings.Contains(in, "@tcp(") || o.Username == "" {
		return in
	}
	hostport, dbname := in, ""
	if i := strings.IndexByte(in, '/'); i > 0 {
		hostport, dbname = in[:i], in[i+1:]
	}
	cred := o.Username
	if o.Password != "" {
		cred += ":" + o.Password
	}
	return fmt.Sprintf("%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4", cred, hostport, dbname)
}
