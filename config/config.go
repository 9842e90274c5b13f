package config

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var ConfigInfo config

// Init reads config.yml with viper. Keys are case-insensitive and can be
// overridden through VIDTUBE_* environment variables.
func Init() {
	wd, _ := os.Getwd()
	logrus.Infof("Current working directory: %s", wd)

	viper.SetConfigType("yaml")
	viper.SetConfigName("config.yml")
	viper.SetEnvPrefix("vidtube")
	viper.AutomaticEnv()
	setDefaults()

	configPaths := []string{
		"../../config",
		"./config",
		"../config",
		".",
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
		absPath, _ := filepath.Abs(path)
		logrus.Debugf("Added config path: %s (absolute: %s)", path, absPath)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logrus.Warnf("config file not found, falling back to defaults: %v", err)
		} else {
			logrus.Errorf("config error: %v", err)
			return
		}
	} else {
		logrus.Infof("Successfully read config file: %s", viper.ConfigFileUsed())
	}

	load()

	logrus.Infof("Config loaded - MySQL: %s:%s@%s/%s",
		ConfigInfo.Mysql.Username, "***", ConfigInfo.Mysql.Addr, ConfigInfo.Mysql.Database)
	logrus.Infof("Media backend: %s, search enabled: %v, events enabled: %v",
		ConfigInfo.Media.Backend, ConfigInfo.Elastic.Enabled, ConfigInfo.RabbitMq.Enabled)
}

func setDefaults() {
	viper.SetDefault("server.addr", "0.0.0.0:8888")
	viper.SetDefault("server.allow_origins", []string{"http://localhost:8870", "http://localhost:8888"})
	viper.SetDefault("server.upload_dir", "./public/temp")
	viper.SetDefault("mysql.charset", "utf8mb4")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.history_cap", 200)
	viper.SetDefault("media.backend", "minio")
	viper.SetDefault("media.image_bucket", "picture")
	viper.SetDefault("media.video_bucket", "video")
	viper.SetDefault("media.local_dir", "./public/media")
	viper.SetDefault("minio.endpoint", "localhost:9002")
	viper.SetDefault("minio.region", "us-east-1")
	viper.SetDefault("elastic.index", "videos")
	viper.SetDefault("jaeger.service_name", "vidtube-api")
	viper.SetDefault("jwt.timeout", "24h")
	viper.SetDefault("flow.resource", "vidtube-api")
	viper.SetDefault("flow.qps", 500)
}

func load() {
	ConfigInfo.Server.Addr = viper.GetString("server.addr")
	ConfigInfo.Server.AllowOrigins = viper.GetStringSlice("server.allow_origins")
	ConfigInfo.Server.PprofAddr = viper.GetString("server.pprof_addr")
	ConfigInfo.Server.UploadDir = viper.GetString("server.upload_dir")

	ConfigInfo.Mysql.Addr = viper.GetString("mysql.addr")
	ConfigInfo.Mysql.Database = viper.GetString("mysql.database")
	ConfigInfo.Mysql.Username = viper.GetString("mysql.username")
	ConfigInfo.Mysql.Password = viper.GetString("mysql.password")
	ConfigInfo.Mysql.Charset = viper.GetString("mysql.charset")
	ConfigInfo.Mysql.Params = viper.GetString("mysql.params")

	ConfigInfo.Redis.Addr = viper.GetString("redis.addr")
	ConfigInfo.Redis.Password = viper.GetString("redis.password")
	ConfigInfo.Redis.DB = viper.GetInt("redis.db")
	ConfigInfo.Redis.HistoryCap = viper.GetInt64("redis.history_cap")

	ConfigInfo.Media.Backend = viper.GetString("media.backend")
	ConfigInfo.Media.ImageBucket = viper.GetString("media.image_bucket")
	ConfigInfo.Media.VideoBucket = viper.GetString("media.video_bucket")
	ConfigInfo.Media.LocalDir = viper.GetString("media.local_dir")
	ConfigInfo.Media.PublicBase = viper.GetString("media.public_base")

	ConfigInfo.Minio.Endpoint = viper.GetString("minio.endpoint")
	ConfigInfo.Minio.AccessKey = viper.GetString("minio.access_key")
	ConfigInfo.Minio.SecretKey = viper.GetString("minio.secret_key")
	ConfigInfo.Minio.UseSSL = viper.GetBool("minio.use_ssl")
	ConfigInfo.Minio.Region = viper.GetString("minio.region")

	ConfigInfo.S3.Region = viper.GetString("s3.region")
	ConfigInfo.S3.Endpoint = viper.GetString("s3.endpoint")
	ConfigInfo.S3.UsePathStyle = viper.GetBool("s3.use_path_style")

	ConfigInfo.Elastic.Enabled = viper.GetBool("elastic.enabled")
	ConfigInfo.Elastic.Urls = viper.GetStringSlice("elastic.urls")
	ConfigInfo.Elastic.Index = viper.GetString("elastic.index")

	ConfigInfo.RabbitMq.Enabled = viper.GetBool("rabbitmq.enabled")
	ConfigInfo.RabbitMq.Addr = viper.GetString("rabbitmq.addr")
	ConfigInfo.RabbitMq.Username = viper.GetString("rabbitmq.username")
	ConfigInfo.RabbitMq.Password = viper.GetString("rabbitmq.password")

	ConfigInfo.Jaeger.Enabled = viper.GetBool("jaeger.enabled")
	ConfigInfo.Jaeger.ServiceName = viper.GetString("jaeger.service_name")
	ConfigInfo.Jaeger.AgentAddr = viper.GetString("jaeger.agent_addr")

	ConfigInfo.Jwt.Key = viper.GetString("jwt.key")
	ConfigInfo.Jwt.Timeout = viper.GetString("jwt.timeout")

	ConfigInfo.Flow.Resource = viper.GetString("flow.resource")
	ConfigInfo.Flow.QPS = viper.GetFloat64("flow.qps")
}

// RabbitMqURL assembles the amqp url from the rabbitmq section.
func RabbitMqURL() string {
	r := ConfigInfo.RabbitMq
	if r.Username == "" {
		return "amqp://" + r.Addr + "/"
	}
	return "amqp://" + r.Username + ":" + r.Password + "@" + r.Addr + "/"
}
