package config

type config struct {
	Server   server   `yaml:"server" mapstructure:"server"`
	Mysql    mysql    `yaml:"mysql" mapstructure:"mysql"`
	Redis    redis    `yaml:"redis" mapstructure:"redis"`
	Media    media    `yaml:"media" mapstructure:"media"`
	Minio    minio    `yaml:"minio" mapstructure:"minio"`
	S3       s3       `yaml:"s3" mapstructure:"s3"`
	Elastic  elastic  `yaml:"elastic" mapstructure:"elastic"`
	RabbitMq rabbitmq `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Jaeger   jaeger   `yaml:"jaeger" mapstructure:"jaeger"`
	Jwt      jwt      `yaml:"jwt" mapstructure:"jwt"`
	Flow     flow     `yaml:"flow" mapstructure:"flow"`
}

type server struct {
	Addr         string   `yaml:"addr"`
	AllowOrigins []string `yaml:"allow_origins" mapstructure:"allow_origins"`
	PprofAddr    string   `yaml:"pprof_addr" mapstructure:"pprof_addr"`
	UploadDir    string   `yaml:"upload_dir" mapstructure:"upload_dir"`
}

type mysql struct {
	Addr     string `yaml:"addr"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Charset  string `yaml:"charset"`
	Params   string `yaml:"params"`
}

type redis struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	HistoryCap int64  `yaml:"history_cap" mapstructure:"history_cap"`
}

// media.backend selects minio, s3 or local.
type media struct {
	Backend     string `yaml:"backend"`
	ImageBucket string `yaml:"image_bucket" mapstructure:"image_bucket"`
	VideoBucket string `yaml:"video_bucket" mapstructure:"video_bucket"`
	LocalDir    string `yaml:"local_dir" mapstructure:"local_dir"`
	PublicBase  string `yaml:"public_base" mapstructure:"public_base"`
}

type minio struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl" mapstructure:"use_ssl"`
	Region    string `yaml:"region"`
}

type s3 struct {
	Region       string `yaml:"region"`
	Endpoint     string `yaml:"endpoint"`
	UsePathStyle bool   `yaml:"use_path_style" mapstructure:"use_path_style"`
}

type elastic struct {
	Enabled bool     `yaml:"enabled"`
	Urls    []string `yaml:"urls"`
	Index   string   `yaml:"index"`
}

type rabbitmq struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type jaeger struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	AgentAddr   string `yaml:"agent_addr" mapstructure:"agent_addr"`
}

type jwt struct {
	Key     string `yaml:"key"`
	Timeout string `yaml:"timeout"`
}

type flow struct {
	Resource string  `yaml:"resource"`
	QPS      float64 `yaml:"qps"`
}
