package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	setDefaults()
	load()

	assert.Equal(t, "0.0.0.0:8888", ConfigInfo.Server.Addr)
	assert.Equal(t, "minio", ConfigInfo.Media.Backend)
	assert.Equal(t, int64(200), ConfigInfo.Redis.HistoryCap)
	assert.Equal(t, 500.0, ConfigInfo.Flow.QPS)
	assert.False(t, ConfigInfo.Elastic.Enabled)
}

func TestRabbitMqURL(t *testing.T) {
	ConfigInfo.RabbitMq.Addr = "mq:5672"
	ConfigInfo.RabbitMq.Username = ""
	assert.Equal(t, "amqp://mq:5672/", RabbitMqURL())

	ConfigInfo.RabbitMq.Username = "guest"
	ConfigInfo.RabbitMq.Password = "pw"
	assert.Equal(t, "amqp://guest:pw@mq:5672/", RabbitMqURL())
}
