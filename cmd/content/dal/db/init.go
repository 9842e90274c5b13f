package db

import (
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormopentracing "gorm.io/plugin/opentracing"
)

var DB *gorm.DB

// Init init DB
func Init() {
	var err error
	DB, err = Open(mysql.Open(utils.GetMysqlDsn()))
	if err != nil {
		panic(err)
	}
	if err = DB.Use(gormopentracing.New()); err != nil {
		panic(err)
	}
}

// Open opens dialector with the service gorm settings and migrates every table.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector,
		&gorm.Config{
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
			TranslateError:         true,
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if err = migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func migrate(db *gorm.DB) error {
	hlog.Info("Starting content tables migration...")
	if err := db.AutoMigrate(model.Models()...); err != nil {
		hlog.Errorf("Failed to migrate content tables: %v", err)
		return errors.Wrap(err, "auto migrate")
	}
	hlog.Info("Content tables migration completed successfully")
	return nil
}
