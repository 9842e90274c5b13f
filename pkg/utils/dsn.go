package utils

import (
	"strings"

	"VidTube.com/config"
)

// GetMysqlDsn builds the gorm mysql dsn from config.ConfigInfo.Mysql.
func GetMysqlDsn() string {
	m := config.ConfigInfo.Mysql
	charset := m.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	dsn := strings.Join([]string{m.Username, ":", m.Password, "@tcp(", m.Addr, ")/",
		m.Database, "?charset=" + charset + "&parseTime=True&loc=Local"}, "") //nolint:lll
	if m.Params != "" {
		dsn += "&" + m.Params
	}
	return dsn
}
