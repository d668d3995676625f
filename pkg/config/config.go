package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root application configuration.
type Config struct {
	Server          ServerConfig          `mapstructure:"server"`
	Database        DatabaseConfig        `mapstructure:"database"`
	Redis           RedisConfig           `mapstructure:"redis"`
	Kafka           KafkaConfig           `mapstructure:"kafka"`
	JWT             JWTConfig             `mapstructure:"jwt"`
	Log             LogConfig             `mapstructure:"log"`
	Minio           MinioConfig           `mapstructure:"minio"`
	Media           MediaConfig           `mapstructure:"media"`
	Transcode       TranscodeConfig       `mapstructure:"transcode"`
	Worker          WorkerConfig          `mapstructure:"worker"`
	ServiceRegistry ServiceRegistryConfig `mapstructure:"service_registry"`
}

// ServerConfig HTTP server settings.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig MySQL settings for the video record store.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	Charset         string        `mapstructure:"charset"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig settings for the job claim-lock store.
type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	EnableTLS    bool          `mapstructure:"enable_tls"`
}

// KafkaConfig job queue settings.
type KafkaConfig struct {
	BootstrapServers []string          `mapstructure:"bootstrap_servers"`
	ClientID         string            `mapstructure:"client_id"`
	GroupID          string            `mapstructure:"group_id"`
	Enabled          bool              `mapstructure:"enabled"`
	Topics           KafkaTopicsConfig `mapstructure:"topics"`
}

type KafkaTopicsConfig struct {
	MediaJobs string `mapstructure:"media_jobs"`
}

// JWTConfig bearer-credential settings shared with the rest of the API.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Issuer     string        `mapstructure:"issuer"`
	ExpireTime time.Duration `mapstructure:"expire_time"`
}

// LogConfig logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MinioConfig optional artifact mirror settings.
type MinioConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKey       string `mapstructure:"access_key"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	SecretKey       string `mapstructure:"secret_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"`
}

// MediaConfig describes the local media root and the public serving surface.
type MediaConfig struct {
	// Root is the directory containing the videos/{title}_{uuid} trees.
	Root string `mapstructure:"root"`
	// PublicBase is the absolute base URL clients fetch playlists and
	// segments from, e.g. "https://media.videoflix.example".
	PublicBase string `mapstructure:"public_base"`
	// AllowedOrigin is the single origin the player runs on.
	AllowedOrigin string `mapstructure:"allowed_origin"`
}

// TranscodeConfig pipeline encoder settings.
type TranscodeConfig struct {
	FFmpeg FFmpegConfig `mapstructure:"ffmpeg"`
}

// FFmpegConfig external encoder/prober settings.
type FFmpegConfig struct {
	BinaryPath  string `mapstructure:"binary_path"`
	ProbePath   string `mapstructure:"probe_path"`
	VideoPreset string `mapstructure:"video_preset"`
	Threads     int    `mapstructure:"threads"`
	// Timeout bounds a single encoder invocation; a hung ffmpeg must not
	// block a worker forever.
	Timeout time.Duration `mapstructure:"timeout"`
}

// WorkerConfig settings for the in-process job worker pool.
type WorkerConfig struct {
	Enabled             bool          `mapstructure:"enabled"`
	MaxConcurrentTasks  int           `mapstructure:"max_concurrent_tasks"`
	QueueCapacity       int           `mapstructure:"queue_capacity"`
	ClaimTTL            time.Duration `mapstructure:"claim_ttl"`
	ShutdownGracePeriod time.Duration `mapstructure:"shutdown_grace_period"`
}

// ServiceRegistryConfig etcd registration settings.
type ServiceRegistryConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Endpoints       []string      `mapstructure:"endpoints"`
	ServiceName     string        `mapstructure:"service_name"`
	ServiceID       string        `mapstructure:"service_id"`
	RegisterHost    string        `mapstructure:"register_host"`
	DialTimeout     time.Duration `mapstructure:"dial_timeout"`
	TTL             time.Duration `mapstructure:"ttl"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

// Load reads and normalizes the configuration file at configPath.
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.SetDefault("service_registry.enabled", false)
	viper.SetDefault("kafka.enabled", true)
	viper.SetDefault("kafka.client_id", "videoflix-service")
	viper.SetDefault("kafka.group_id", "videoflix-service-group")
	viper.SetDefault("kafka.bootstrap_servers", []string{"localhost:29092"})
	viper.SetDefault("kafka.topics.media_jobs", "media.jobs")

	viper.SetEnvPrefix("VIDEOFLIX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.normalize()

	return &config, nil
}

// normalize fills in defaults for settings the file leaves out.
func (c *Config) normalize() {
	if c.Minio.AccessKeyID == "" {
		c.Minio.AccessKeyID = c.Minio.AccessKey
	}
	if c.Minio.SecretAccessKey == "" {
		c.Minio.SecretAccessKey = c.Minio.SecretKey
	}

	if c.Media.Root == "" {
		c.Media.Root = "media"
	}
	c.Media.PublicBase = strings.TrimRight(strings.TrimSpace(c.Media.PublicBase), "/")

	if c.Worker.MaxConcurrentTasks <= 0 {
		c.Worker.MaxConcurrentTasks = 2
	}
	if c.Worker.QueueCapacity <= 0 {
		c.Worker.QueueCapacity = c.Worker.MaxConcurrentTasks * 10
	}
	if c.Worker.ClaimTTL <= 0 {
		c.Worker.ClaimTTL = 2 * time.Hour
	}
	if c.Worker.ShutdownGracePeriod == 0 {
		c.Worker.ShutdownGracePeriod = 10 * time.Second
	}

	if c.Transcode.FFmpeg.BinaryPath == "" {
		c.Transcode.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.Transcode.FFmpeg.ProbePath == "" {
		c.Transcode.FFmpeg.ProbePath = "ffprobe"
	}
	if c.Transcode.FFmpeg.VideoPreset == "" {
		c.Transcode.FFmpeg.VideoPreset = "medium"
	}
	if c.Transcode.FFmpeg.Threads < 0 {
		c.Transcode.FFmpeg.Threads = 0
	}
	if c.Transcode.FFmpeg.Timeout == 0 {
		c.Transcode.FFmpeg.Timeout = time.Hour
	}

	if c.ServiceRegistry.ServiceName == "" {
		c.ServiceRegistry.ServiceName = "videoflix-service"
	}
	if c.ServiceRegistry.DialTimeout == 0 {
		c.ServiceRegistry.DialTimeout = 5 * time.Second
	}
	if c.ServiceRegistry.TTL == 0 {
		c.ServiceRegistry.TTL = 30 * time.Second
	}
	if c.ServiceRegistry.RefreshInterval == 0 {
		c.ServiceRegistry.RefreshInterval = 10 * time.Second
	}

	if len(c.Kafka.BootstrapServers) == 0 {
		c.Kafka.BootstrapServers = []string{"localhost:29092"}
	}
	if c.Kafka.ClientID == "" {
		c.Kafka.ClientID = "videoflix-service"
	}
	if c.Kafka.Topics.MediaJobs == "" {
		c.Kafka.Topics.MediaJobs = "media.jobs"
	}
}

// GetDSN builds the MySQL connection string.
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database, c.Charset)
}

// GetRedisAddr builds the Redis address.
func (c *RedisConfig) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
